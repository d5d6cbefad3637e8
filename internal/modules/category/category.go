package category

import (
	"context"
	"encoding/json"
)

// Category groups related tags. Deleting a category removes its tags and
// every product/tag association under them.
type Category struct {
	svc  *Service
	id   int64
	name string
}

func (c *Category) ID() int64    { return c.id }
func (c *Category) Name() string { return c.name }

// SetName renames the category. Category names are not unique.
func (c *Category) SetName(ctx context.Context, name string) error {
	if err := c.svc.categories.Update(ctx, c.id, "name", name); err != nil {
		return err
	}
	c.name = name
	return nil
}

// Tags lists the tags declared under this category.
func (c *Category) Tags(ctx context.Context) ([]*Tag, error) {
	rows, err := c.svc.tags.SelectWhere(ctx, map[string]any{"category": c.id})
	if err != nil {
		return nil, err
	}
	tags := make([]*Tag, 0, len(rows))
	for _, r := range rows {
		tags = append(tags, &Tag{
			svc:      c.svc,
			id:       r.Int64("id"),
			name:     r.String("name"),
			category: r.Int64("category"),
		})
	}
	return tags, nil
}

// Delete removes the category and, through the schema cascade, its tags.
func (c *Category) Delete(ctx context.Context) error {
	return c.svc.categories.Delete(ctx, c.id)
}

func (c *Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}{ID: c.id, Name: c.name})
}
