package category

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
)

// CategoryParams carries the fields for creating a category.
type CategoryParams struct {
	Name string `json:"name" validate:"required"`
}

// TagParams carries the fields for creating a tag under a category.
type TagParams struct {
	Name     string `json:"name" validate:"required"`
	Category int64  `json:"category" validate:"required"`
}

// Service owns the categories, tags and tagged tables.
type Service struct {
	categories *storage.Table
	tags       *storage.Table
	tagged     *storage.Table
	validate   *validator.Validate
}

func NewService(db *storage.DataBase) *Service {
	return &Service{
		categories: db.Table("categories"),
		tags:       db.Table("tags"),
		tagged:     db.Table("tagged"),
		validate:   validator.New(),
	}
}

// CreateCategory inserts a category and returns its handle.
func (s *Service) CreateCategory(ctx context.Context, params CategoryParams) (*Category, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
	}
	id, err := s.categories.Insert(ctx, map[string]any{"name": params.Name})
	if err != nil {
		return nil, err
	}
	return &Category{svc: s, id: id, name: params.Name}, nil
}

// GetCategory loads the category with the given id.
func (s *Service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	row, err := s.categories.SelectByKey(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Category{svc: s, id: row.Int64("id"), name: row.String("name")}, nil
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := s.categories.SelectWhere(ctx, nil)
	if err != nil {
		return nil, err
	}
	categories := make([]*Category, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, &Category{svc: s, id: r.Int64("id"), name: r.String("name")})
	}
	return categories, nil
}

// CreateTag inserts a tag under an existing category.
func (s *Service) CreateTag(ctx context.Context, params TagParams) (*Tag, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
	}
	found, err := s.categories.Exists(ctx, map[string]any{"id": params.Category})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: category id %d", errs.ErrNotFound, params.Category)
	}
	id, err := s.tags.Insert(ctx, map[string]any{"name": params.Name, "category": params.Category})
	if err != nil {
		return nil, err
	}
	return &Tag{svc: s, id: id, name: params.Name, category: params.Category}, nil
}

// GetTag loads the tag with the given id.
func (s *Service) GetTag(ctx context.Context, id int64) (*Tag, error) {
	row, err := s.tags.SelectByKey(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Tag{svc: s, id: row.Int64("id"), name: row.String("name"), category: row.Int64("category")}, nil
}

// ProductTags lists the tags attached to a product.
func (s *Service) ProductTags(ctx context.Context, productID int64) ([]*Tag, error) {
	rows, err := s.tagged.SelectWhere(ctx, map[string]any{"product_id": productID})
	if err != nil {
		return nil, err
	}
	tags := make([]*Tag, 0, len(rows))
	for _, r := range rows {
		tag, err := s.GetTag(ctx, r.Int64("tag_id"))
		if err != nil {
			if errs.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
