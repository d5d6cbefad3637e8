package user

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// UserParams carries the caller-supplied fields for registering an account.
type UserParams struct {
	Pseudo      string `json:"pseudo" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Description string `json:"description"`
	Picture     []byte `json:"picture,omitempty"`
}

// Service owns the users table and hands out User entities bound to it.
type Service struct {
	users    *storage.Table
	validate *validator.Validate
}

func NewService(db *storage.DataBase) *Service {
	return &Service{users: db.Table("users"), validate: validator.New()}
}

// CreateUser validates params, enforces pseudo uniqueness and inserts the
// row, returning a handle carrying the storage-assigned id.
func (s *Service) CreateUser(ctx context.Context, params UserParams) (*User, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
	}
	if _, err := s.users.UniqueToID(ctx, "pseudo", params.Pseudo); err == nil {
		return nil, fmt.Errorf("%w: pseudo %q", errs.ErrDuplicate, params.Pseudo)
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	fields := map[string]any{
		"pseudo":      params.Pseudo,
		"password":    params.Password,
		"description": params.Description,
	}
	if params.Picture != nil {
		fields["picture"] = params.Picture
	}
	id, err := s.users.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}
	// reload so the handle carries exactly what storage holds
	return s.GetUser(ctx, id)
}

// GetUser loads the account with the given id.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	row, err := s.users.SelectByKey(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.fromRow(row), nil
}

// GetUserByPseudo resolves an account through its unique pseudo.
func (s *Service) GetUserByPseudo(ctx context.Context, pseudo string) (*User, error) {
	id, err := s.users.UniqueToID(ctx, "pseudo", pseudo)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// VerifyPassword checks a pseudo/password pair. It returns the matching
// account on success and (nil, nil) when the pseudo is unknown or the
// password does not match; only storage failures surface as errors.
func (s *Service) VerifyPassword(ctx context.Context, pseudo, password string) (*User, error) {
	u, err := s.GetUserByPseudo(ctx, pseudo)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if u.password != password {
		return nil, nil
	}
	return u, nil
}

func (s *Service) fromRow(row storage.Row) *User {
	return &User{
		table:       s.users,
		id:          row.Int64("id"),
		pseudo:      row.String("pseudo"),
		password:    row.String("password"),
		description: row.String("description"),
		picture:     row.Bytes("picture"),
	}
}
