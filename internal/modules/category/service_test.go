package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/category"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage/storagetest"
)

func newServices(t *testing.T) (*category.Service, *catalog.Service, *storage.DataBase) {
	t.Helper()
	db := storagetest.Open(t)
	return category.NewService(db), catalog.NewService(db), db
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _, _ := newServices(t)
	ctx := context.Background()

	furniture, err := svc.CreateCategory(ctx, category.CategoryParams{Name: "furniture"})
	require.NoError(t, err)
	lighting, err := svc.CreateCategory(ctx, category.CategoryParams{Name: "lighting"})
	require.NoError(t, err)

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, category.CategoryParams{})
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("lists every category", func(t *testing.T) {
		all, err := svc.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("loads by id", func(t *testing.T) {
		got, err := svc.GetCategory(ctx, lighting.ID())
		require.NoError(t, err)
		require.Equal(t, "lighting", got.Name())
	})

	t.Run("renames", func(t *testing.T) {
		require.NoError(t, furniture.SetName(ctx, "home furniture"))
		got, err := svc.GetCategory(ctx, furniture.ID())
		require.NoError(t, err)
		require.Equal(t, "home furniture", got.Name())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, lighting.Delete(ctx))
		_, err := svc.GetCategory(ctx, lighting.ID())
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestTags(t *testing.T) {
	svc, products, _ := newServices(t)
	ctx := context.Background()

	wood, err := svc.CreateCategory(ctx, category.CategoryParams{Name: "material"})
	require.NoError(t, err)

	t.Run("creating under a missing category fails", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, category.TagParams{Name: "oak", Category: wood.ID() + 50})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	oak, err := svc.CreateTag(ctx, category.TagParams{Name: "oak", Category: wood.ID()})
	require.NoError(t, err)
	pine, err := svc.CreateTag(ctx, category.TagParams{Name: "pine", Category: wood.ID()})
	require.NoError(t, err)

	t.Run("category lists its tags", func(t *testing.T) {
		tags, err := wood.Tags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
	})

	chair, err := products.CreateProduct(ctx, catalog.ProductParams{Name: "chair"})
	require.NoError(t, err)
	table, err := products.CreateProduct(ctx, catalog.ProductParams{Name: "table"})
	require.NoError(t, err)

	t.Run("attach and list", func(t *testing.T) {
		require.NoError(t, oak.Attach(ctx, chair.ID()))
		require.NoError(t, oak.Attach(ctx, table.ID()))
		require.NoError(t, pine.Attach(ctx, chair.ID()))
		// repeat attach is a no-op
		require.NoError(t, oak.Attach(ctx, chair.ID()))

		ids, err := oak.Products(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []int64{chair.ID(), table.ID()}, ids)

		tags, err := svc.ProductTags(ctx, chair.ID())
		require.NoError(t, err)
		require.Len(t, tags, 2)
	})

	t.Run("attach to a missing product fails", func(t *testing.T) {
		err := oak.Attach(ctx, table.ID()+50)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("detach", func(t *testing.T) {
		require.NoError(t, pine.Detach(ctx, chair.ID()))
		require.ErrorIs(t, pine.Detach(ctx, chair.ID()), errs.ErrNotFound)
	})

	t.Run("deleting the product drops its labels", func(t *testing.T) {
		require.NoError(t, table.Delete(ctx))
		ids, err := oak.Products(ctx)
		require.NoError(t, err)
		require.Equal(t, []int64{chair.ID()}, ids)
	})

	t.Run("deleting the category drops tags and labels", func(t *testing.T) {
		require.NoError(t, wood.Delete(ctx))

		_, err := svc.GetTag(ctx, oak.ID())
		require.ErrorIs(t, err, errs.ErrNotFound)

		tags, err := svc.ProductTags(ctx, chair.ID())
		require.NoError(t, err)
		require.Empty(t, tags)
	})
}
