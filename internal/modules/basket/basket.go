package basket

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/user"
)

// Basket is one user's loaded basket. The command list mirrors the rows read
// at load time and is kept in step by Add, Remove and Clear.
type Basket struct {
	svc      *Service
	user     *user.User
	commands []*Command
}

// Selector designates one command for removal. Exactly one field must be
// set: the product it carries, its position in Commands, or the command
// handle itself.
type Selector struct {
	Product *catalog.Product
	Index   *int
	Command *Command
}

func (b *Basket) User() *user.User     { return b.user }
func (b *Basket) Commands() []*Command { return b.commands }
func (b *Basket) Len() int             { return len(b.commands) }

// Total sums the line totals of every command.
func (b *Basket) Total() float64 {
	var total float64
	for _, c := range b.commands {
		total += c.LineTotal()
	}
	return total
}

// Add puts quantity units of the product in the basket. If the product is
// already there the quantities merge into the existing command; insert and
// merge are a single atomic statement. The affected command is returned.
func (b *Basket) Add(ctx context.Context, p *catalog.Product, quantity int) (*Command, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: product is nil", errs.ErrInvalidArgument)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", errs.ErrInvalidArgument)
	}
	_, err := b.svc.db.Exec(ctx,
		`INSERT INTO basket (user_id, product_id, quantity) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		b.user.ID(), p.ID(), quantity)
	if err != nil {
		return nil, err
	}
	row, err := b.svc.basket.SelectWhere(ctx, map[string]any{"user_id": b.user.ID(), "product_id": p.ID()})
	if err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("%w: basket row vanished after add", errs.ErrStorage)
	}
	merged := row[0].Int("quantity")

	for _, c := range b.commands {
		if c.product.ID() == p.ID() {
			c.quantity = merged
			return c, nil
		}
	}
	c := &Command{svc: b.svc, userID: b.user.ID(), product: p, quantity: merged}
	b.commands = append(b.commands, c)
	return c, nil
}

// Remove drops the selected command from the basket, errs.ErrNotFound when
// the product is not in it.
func (b *Basket) Remove(ctx context.Context, sel Selector) error {
	productID, err := b.resolve(sel)
	if err != nil {
		return err
	}
	err = b.svc.basket.DeleteWhere(ctx, map[string]any{"user_id": b.user.ID(), "product_id": productID})
	if err != nil {
		return err
	}
	b.commands = slices.DeleteFunc(b.commands, func(c *Command) bool {
		return c.product.ID() == productID
	})
	return nil
}

// Clear empties the basket. Clearing an empty basket succeeds.
func (b *Basket) Clear(ctx context.Context) error {
	err := b.svc.basket.DeleteWhere(ctx, map[string]any{"user_id": b.user.ID()})
	if err != nil && !errs.IsNotFound(err) {
		return err
	}
	b.commands = nil
	return nil
}

func (b *Basket) resolve(sel Selector) (int64, error) {
	set := 0
	if sel.Product != nil {
		set++
	}
	if sel.Index != nil {
		set++
	}
	if sel.Command != nil {
		set++
	}
	if set != 1 {
		return 0, fmt.Errorf("%w: exactly one selector field must be set, got %d", errs.ErrInvalidArgument, set)
	}
	switch {
	case sel.Product != nil:
		return sel.Product.ID(), nil
	case sel.Command != nil:
		return sel.Command.product.ID(), nil
	default:
		i := *sel.Index
		if i < 0 || i >= len(b.commands) {
			return 0, fmt.Errorf("%w: command index %d out of range", errs.ErrInvalidArgument, i)
		}
		return b.commands[i].product.ID(), nil
	}
}

func (b *Basket) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserID   int64      `json:"user_id"`
		Commands []*Command `json:"commands"`
		Total    float64    `json:"total"`
	}{UserID: b.user.ID(), Commands: b.commands, Total: b.Total()})
}
