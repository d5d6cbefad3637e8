package basket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
)

// Command is one basket line: a product and how many of it the user wants.
// It is identified by the (user, product) pair, not by its own id.
type Command struct {
	svc      *Service
	userID   int64
	product  *catalog.Product
	quantity int
}

func (c *Command) Product() *catalog.Product { return c.product }
func (c *Command) Quantity() int             { return c.quantity }

// LineTotal is the product price times the ordered quantity.
func (c *Command) LineTotal() float64 {
	return c.product.Price() * float64(c.quantity)
}

// SetQuantity replaces the ordered quantity as one atomic insert-or-update
// statement. Quantities below one are rejected; removal is explicit through
// Basket.Remove.
func (c *Command) SetQuantity(ctx context.Context, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", errs.ErrInvalidArgument)
	}
	err := c.svc.basket.Upsert(ctx, []string{"user_id", "product_id"}, map[string]any{
		"user_id":    c.userID,
		"product_id": c.product.ID(),
		"quantity":   quantity,
	})
	if err != nil {
		return err
	}
	c.quantity = quantity
	return nil
}

func (c *Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Product   *catalog.Product `json:"product"`
		Quantity  int              `json:"quantity"`
		LineTotal float64          `json:"line_total"`
	}{Product: c.product, Quantity: c.quantity, LineTotal: c.LineTotal()})
}
