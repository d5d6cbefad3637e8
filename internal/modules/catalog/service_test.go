package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage/storagetest"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	return catalog.NewService(storagetest.Open(t))
}

func ptr[T any](v T) *T { return &v }

func TestCreateProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	t.Run("assigns increasing ids", func(t *testing.T) {
		first, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: "chair", Price: 49.9})
		require.NoError(t, err)
		second, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: "table", Price: 120})
		require.NoError(t, err)

		require.Greater(t, second.ID(), first.ID())
		require.Equal(t, "chair", first.Name())
		require.Equal(t, 0, first.Quantity())
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: "chair"})
		require.ErrorIs(t, err, errs.ErrDuplicate)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, catalog.ProductParams{Price: 10})
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func TestGetProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, catalog.ProductParams{
		Name:        "lamp",
		Description: "bedside lamp",
		Price:       15.5,
		Quantity:    3,
	})
	require.NoError(t, err)

	loaded, err := svc.GetProduct(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, "lamp", loaded.Name())
	require.Equal(t, "bedside lamp", loaded.Description())
	require.InDelta(t, 15.5, loaded.Price(), 1e-9)
	require.Equal(t, 3, loaded.Quantity())

	byName, err := svc.GetProductByName(ctx, "lamp")
	require.NoError(t, err)
	require.Equal(t, created.ID(), byName.ID())

	_, err = svc.GetProduct(ctx, created.ID()+100)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProductSetters(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: "stool", Price: 20})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, catalog.ProductParams{Name: "bench"})
	require.NoError(t, err)

	t.Run("writes reach storage before the cache", func(t *testing.T) {
		require.NoError(t, p.SetPrice(ctx, 25))
		require.NoError(t, p.SetQuantity(ctx, 8))
		require.NoError(t, p.SetDescription(ctx, "three legs"))

		fresh, err := svc.GetProduct(ctx, p.ID())
		require.NoError(t, err)
		require.InDelta(t, 25, fresh.Price(), 1e-9)
		require.Equal(t, 8, fresh.Quantity())
		require.Equal(t, "three legs", fresh.Description())
	})

	t.Run("rename to own name is a no-op", func(t *testing.T) {
		require.NoError(t, p.SetName(ctx, "stool"))
		require.Equal(t, "stool", p.Name())
	})

	t.Run("rename to a taken name keeps the cache", func(t *testing.T) {
		err := p.SetName(ctx, "bench")
		require.ErrorIs(t, err, errs.ErrDuplicate)
		require.Equal(t, "stool", p.Name())

		fresh, err := svc.GetProduct(ctx, p.ID())
		require.NoError(t, err)
		require.Equal(t, "stool", fresh.Name())
	})

	t.Run("rename to a free name persists", func(t *testing.T) {
		require.NoError(t, p.SetName(ctx, "bar stool"))
		require.Equal(t, "bar stool", p.Name())

		fresh, err := svc.GetProductByName(ctx, "bar stool")
		require.NoError(t, err)
		require.Equal(t, p.ID(), fresh.ID())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		err := p.SetName(ctx, "")
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
		require.Equal(t, "bar stool", p.Name())
	})
}

func TestIllustrationLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: "poster"})
	require.NoError(t, err)
	require.Nil(t, p.Illustration())

	img := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01}
	require.NoError(t, p.SetIllustration(ctx, img))

	fresh, err := svc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	require.Equal(t, img, fresh.Illustration())

	require.NoError(t, p.SetIllustration(ctx, nil))
	fresh, err = svc.GetProduct(ctx, p.ID())
	require.NoError(t, err)
	require.Nil(t, fresh.Illustration())
}

func TestDeleteProduct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: "crate"})
	require.NoError(t, err)
	require.NoError(t, p.Delete(ctx))

	_, err = svc.GetProduct(ctx, p.ID())
	require.ErrorIs(t, err, errs.ErrNotFound)

	// the stale handle fails loudly on any further write
	require.ErrorIs(t, p.SetPrice(ctx, 1), errs.ErrNotFound)
	require.ErrorIs(t, p.Delete(ctx), errs.ErrNotFound)
}

func TestSearch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seed := func(name, description string, price float64) {
		t.Helper()
		_, err := svc.CreateProduct(ctx, catalog.ProductParams{Name: name, Description: description, Price: price})
		require.NoError(t, err)
	}
	seed("oak chair", "a chair of oak", 80)
	seed("stool", "small chair without back", 25)
	seed("oak table", "large dining table", 150)

	names := func(ps catalog.Products) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name()
		}
		return out
	}

	t.Run("matches name or description", func(t *testing.T) {
		ps, err := svc.Search(ctx, "chair", catalog.SearchOptions{})
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"oak chair", "stool"}, names(ps))
	})

	t.Run("by name only", func(t *testing.T) {
		ps, err := svc.SearchByName(ctx, "chair", catalog.SearchOptions{})
		require.NoError(t, err)
		require.Equal(t, []string{"oak chair"}, names(ps))
	})

	t.Run("by description only", func(t *testing.T) {
		ps, err := svc.SearchByDescription(ctx, "chair", catalog.SearchOptions{})
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"oak chair", "stool"}, names(ps))
	})

	t.Run("sorts by price", func(t *testing.T) {
		ps, err := svc.Search(ctx, "oak", catalog.SearchOptions{SortBy: "price", Desc: true})
		require.NoError(t, err)
		require.Equal(t, []string{"oak table", "oak chair"}, names(ps))
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		ps, err := svc.Search(ctx, "", catalog.SearchOptions{MinPrice: ptr(25.0), MaxPrice: ptr(80.0)})
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"oak chair", "stool"}, names(ps))
	})

	t.Run("rejects an unknown sort column", func(t *testing.T) {
		_, err := svc.Search(ctx, "oak", catalog.SearchOptions{SortBy: "price; DROP TABLE products"})
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func TestFilterByPrice(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, p := range []catalog.ProductParams{
		{Name: "a", Price: 10},
		{Name: "b", Price: 20},
		{Name: "c", Price: 30},
	} {
		_, err := svc.CreateProduct(ctx, p)
		require.NoError(t, err)
	}
	all, err := svc.Search(ctx, "", catalog.SearchOptions{SortBy: "price"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.Len(t, all.FilterByPrice(nil, nil), 3)
	require.Equal(t, []int64{all[1].ID(), all[2].ID()}, all.FilterByPrice(ptr(20.0), nil).IDs())
	require.Equal(t, []int64{all[0].ID()}, all.FilterByPrice(nil, ptr(15.0)).IDs())
	require.Empty(t, all.FilterByPrice(ptr(21.0), ptr(29.0)))
}
