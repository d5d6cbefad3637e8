package category

import (
	"context"
	"encoding/json"
)

// Tag is a label under one category that can be attached to products.
type Tag struct {
	svc      *Service
	id       int64
	name     string
	category int64
}

func (t *Tag) ID() int64         { return t.id }
func (t *Tag) Name() string      { return t.name }
func (t *Tag) CategoryID() int64 { return t.category }

// SetName renames the tag.
func (t *Tag) SetName(ctx context.Context, name string) error {
	if err := t.svc.tags.Update(ctx, t.id, "name", name); err != nil {
		return err
	}
	t.name = name
	return nil
}

// Attach labels a product with this tag. Attaching twice is a no-op.
func (t *Tag) Attach(ctx context.Context, productID int64) error {
	return t.svc.tagged.Upsert(ctx, []string{"product_id", "tag_id"},
		map[string]any{"product_id": productID, "tag_id": t.id})
}

// Detach removes the label from a product, errs.ErrNotFound when the
// product does not carry it.
func (t *Tag) Detach(ctx context.Context, productID int64) error {
	return t.svc.tagged.DeleteWhere(ctx, map[string]any{"product_id": productID, "tag_id": t.id})
}

// Products returns the ids of the products carrying this tag.
func (t *Tag) Products(ctx context.Context) ([]int64, error) {
	rows, err := t.svc.tagged.SelectWhere(ctx, map[string]any{"tag_id": t.id})
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.Int64("product_id"))
	}
	return ids, nil
}

// Delete removes the tag and, through the schema cascade, its product links.
func (t *Tag) Delete(ctx context.Context) error {
	return t.svc.tags.Delete(ctx, t.id)
}

func (t *Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Category int64  `json:"category"`
	}{ID: t.id, Name: t.name, Category: t.category})
}
