package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// Product is a live handle on one catalog row. Getters return the values
// cached at load time; setters write through to storage first and refresh
// the cache only on success, so a rejected write leaves the handle unchanged.
type Product struct {
	table *storage.Table
	id    int64

	name         string
	description  string
	price        float64
	quantity     int
	illustration []byte
}

func (p *Product) ID() int64            { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() float64       { return p.price }
func (p *Product) Quantity() int        { return p.quantity }
func (p *Product) Illustration() []byte { return p.illustration }

// SetName renames the product. Renaming to the current name is a no-op; a
// name held by another product fails with errs.ErrDuplicate.
func (p *Product) SetName(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: product name is empty", errs.ErrInvalidArgument)
	}
	owner, err := p.table.UniqueToID(ctx, "name", name)
	switch {
	case err == nil && owner == p.id:
		return nil
	case err == nil:
		return fmt.Errorf("%w: product name %q", errs.ErrDuplicate, name)
	case !errs.IsNotFound(err):
		return err
	}
	if err := p.table.Update(ctx, p.id, "name", name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// SetDescription replaces the free-text description.
func (p *Product) SetDescription(ctx context.Context, description string) error {
	if err := p.table.Update(ctx, p.id, "description", description); err != nil {
		return err
	}
	p.description = description
	return nil
}

// SetPrice replaces the unit price.
func (p *Product) SetPrice(ctx context.Context, price float64) error {
	if err := p.table.Update(ctx, p.id, "price", price); err != nil {
		return err
	}
	p.price = price
	return nil
}

// SetQuantity replaces the stock count.
func (p *Product) SetQuantity(ctx context.Context, quantity int) error {
	if err := p.table.Update(ctx, p.id, "quantity", quantity); err != nil {
		return err
	}
	p.quantity = quantity
	return nil
}

// SetIllustration replaces the stored image bytes; nil clears them.
func (p *Product) SetIllustration(ctx context.Context, data []byte) error {
	if err := p.table.Update(ctx, p.id, "illustration", data); err != nil {
		return err
	}
	p.illustration = data
	return nil
}

// Delete removes the product row. The handle must not be used afterwards;
// any later write through it fails with errs.ErrNotFound.
func (p *Product) Delete(ctx context.Context) error {
	return p.table.Delete(ctx, p.id)
}

// MarshalJSON renders the cached state. Illustration bytes are summarized as
// a presence flag; the raw image travels over its own endpoint.
func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              int64   `json:"id"`
		Name            string  `json:"name"`
		Description     string  `json:"description,omitempty"`
		Price           float64 `json:"price"`
		Quantity        int     `json:"quantity"`
		HasIllustration bool    `json:"has_illustration"`
	}{
		ID:              p.id,
		Name:            p.name,
		Description:     p.description,
		Price:           p.price,
		Quantity:        p.quantity,
		HasIllustration: p.illustration != nil,
	})
}
