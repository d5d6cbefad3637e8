package basket

import (
	"context"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/user"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// Service loads per-user baskets. Products inside commands come from the
// catalog service so their handles stay write-through.
type Service struct {
	db      *storage.DataBase
	basket  *storage.Table
	catalog *catalog.Service
}

func NewService(db *storage.DataBase, catalogSvc *catalog.Service) *Service {
	return &Service{db: db, basket: db.Table("basket"), catalog: catalogSvc}
}

// GetBasket loads the user's basket rows into a Basket. A user without rows
// gets an empty basket, not an error.
func (s *Service) GetBasket(ctx context.Context, u *user.User) (*Basket, error) {
	rows, err := s.basket.SelectWhere(ctx, map[string]any{"user_id": u.ID()})
	if err != nil {
		return nil, err
	}
	b := &Basket{svc: s, user: u, commands: make([]*Command, 0, len(rows))}
	for _, r := range rows {
		p, err := s.catalog.GetProduct(ctx, r.Int64("product_id"))
		if err != nil {
			// the product vanished between the row query and the load
			if errs.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		b.commands = append(b.commands, &Command{
			svc:      s,
			userID:   u.ID(),
			product:  p,
			quantity: r.Int("quantity"),
		})
	}
	return b, nil
}
