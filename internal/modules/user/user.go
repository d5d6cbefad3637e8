package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// User is a live handle on one account row. Getters return the values cached
// at load time; setters write through to storage first and refresh the cache
// only on success.
type User struct {
	table *storage.Table
	id    int64

	pseudo      string
	password    string
	description string
	picture     []byte
}

func (u *User) ID() int64           { return u.id }
func (u *User) Pseudo() string      { return u.pseudo }
func (u *User) Password() string    { return u.password }
func (u *User) Description() string { return u.description }
func (u *User) Picture() []byte     { return u.picture }

// SetPseudo renames the account. Renaming to the current pseudo is a no-op;
// a pseudo held by another account fails with errs.ErrDuplicate.
func (u *User) SetPseudo(ctx context.Context, pseudo string) error {
	if pseudo == "" {
		return fmt.Errorf("%w: pseudo is empty", errs.ErrInvalidArgument)
	}
	owner, err := u.table.UniqueToID(ctx, "pseudo", pseudo)
	switch {
	case err == nil && owner == u.id:
		return nil
	case err == nil:
		return fmt.Errorf("%w: pseudo %q", errs.ErrDuplicate, pseudo)
	case !errs.IsNotFound(err):
		return err
	}
	if err := u.table.Update(ctx, u.id, "pseudo", pseudo); err != nil {
		return err
	}
	u.pseudo = pseudo
	return nil
}

// SetPassword replaces the stored password.
func (u *User) SetPassword(ctx context.Context, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is empty", errs.ErrInvalidArgument)
	}
	if err := u.table.Update(ctx, u.id, "password", password); err != nil {
		return err
	}
	u.password = password
	return nil
}

// SetDescription replaces the profile text.
func (u *User) SetDescription(ctx context.Context, description string) error {
	if err := u.table.Update(ctx, u.id, "description", description); err != nil {
		return err
	}
	u.description = description
	return nil
}

// SetPicture replaces the profile image bytes; nil clears them.
func (u *User) SetPicture(ctx context.Context, data []byte) error {
	if err := u.table.Update(ctx, u.id, "picture", data); err != nil {
		return err
	}
	u.picture = data
	return nil
}

// Delete removes the account row and, through the schema cascade, its basket
// entries. The handle must not be used afterwards.
func (u *User) Delete(ctx context.Context) error {
	return u.table.Delete(ctx, u.id)
}

// MarshalJSON renders the cached state. The password never leaves the
// module; the picture is summarized as a presence flag.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int64  `json:"id"`
		Pseudo      string `json:"pseudo"`
		Description string `json:"description,omitempty"`
		HasPicture  bool   `json:"has_picture"`
	}{
		ID:          u.id,
		Pseudo:      u.pseudo,
		Description: u.description,
		HasPicture:  u.picture != nil,
	})
}
