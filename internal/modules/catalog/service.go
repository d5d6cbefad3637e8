package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// Service owns the products table and hands out Product entities bound to it.
type Service struct {
	products *storage.Table
	validate *validator.Validate
}

func NewService(db *storage.DataBase) *Service {
	return &Service{products: db.Table("products"), validate: validator.New()}
}

// CreateProduct validates params, enforces name uniqueness and inserts the
// row, returning a handle carrying the storage-assigned id.
func (s *Service) CreateProduct(ctx context.Context, params ProductParams) (*Product, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
	}
	if _, err := s.products.UniqueToID(ctx, "name", params.Name); err == nil {
		return nil, fmt.Errorf("%w: product name %q", errs.ErrDuplicate, params.Name)
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	fields := map[string]any{
		"name":        params.Name,
		"description": params.Description,
		"price":       params.Price,
		"quantity":    params.Quantity,
	}
	if params.Illustration != nil {
		fields["illustration"] = params.Illustration
	}
	id, err := s.products.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}
	// reload so the handle carries exactly what storage holds
	return s.GetProduct(ctx, id)
}

// GetProduct loads the product with the given id.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	row, err := s.products.SelectByKey(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.fromRow(row), nil
}

// GetProductByName resolves a product through its unique name.
func (s *Service) GetProductByName(ctx context.Context, name string) (*Product, error) {
	id, err := s.products.UniqueToID(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// Search matches needle against both name and description.
func (s *Service) Search(ctx context.Context, needle string, opts SearchOptions) (Products, error) {
	return s.search(ctx, needle, []string{"name", "description"}, opts)
}

// SearchByName matches needle against names only.
func (s *Service) SearchByName(ctx context.Context, needle string, opts SearchOptions) (Products, error) {
	return s.search(ctx, needle, []string{"name"}, opts)
}

// SearchByDescription matches needle against descriptions only.
func (s *Service) SearchByDescription(ctx context.Context, needle string, opts SearchOptions) (Products, error) {
	return s.search(ctx, needle, []string{"description"}, opts)
}

func (s *Service) search(ctx context.Context, needle string, columns []string, opts SearchOptions) (Products, error) {
	ids, err := s.products.SearchSubstring(ctx, needle, columns, opts.SortBy, opts.Desc)
	if err != nil {
		return nil, err
	}
	list := make(Products, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProduct(ctx, id)
		if err != nil {
			// row deleted between the id query and the load
			if errs.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		list = append(list, p)
	}
	return list.FilterByPrice(opts.MinPrice, opts.MaxPrice), nil
}

func (s *Service) fromRow(row storage.Row) *Product {
	return &Product{
		table:        s.products,
		id:           row.Int64("id"),
		name:         row.String("name"),
		description:  row.String("description"),
		price:        row.Float64("price"),
		quantity:     row.Int("quantity"),
		illustration: row.Bytes("illustration"),
	}
}
