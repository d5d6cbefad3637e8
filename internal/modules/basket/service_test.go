package basket_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/basket"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/catalog"
	"github.com/redsthan/Group-project---Goods-DB/internal/modules/user"
	"github.com/redsthan/Group-project---Goods-DB/internal/storage/storagetest"
)

type fixture struct {
	baskets  *basket.Service
	products *catalog.Service
	users    *user.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storagetest.Open(t)
	products := catalog.NewService(db)
	return &fixture{
		baskets:  basket.NewService(db, products),
		products: products,
		users:    user.NewService(db),
	}
}

func (f *fixture) user(t *testing.T, pseudo string) *user.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), user.UserParams{Pseudo: pseudo, Password: "pw"})
	require.NoError(t, err)
	return u
}

func (f *fixture) product(t *testing.T, name string, price float64) *catalog.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), catalog.ProductParams{Name: name, Price: price})
	require.NoError(t, err)
	return p
}

func TestGetBasketEmpty(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice")

	b, err := f.baskets.GetBasket(context.Background(), u)
	require.NoError(t, err)
	require.Zero(t, b.Len())
	require.Zero(t, b.Total())
	require.Equal(t, u.ID(), b.User().ID())
}

func TestAdd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")
	chair := f.product(t, "chair", 50)
	lamp := f.product(t, "lamp", 20)

	b, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)

	t.Run("first add creates one command", func(t *testing.T) {
		cmd, err := b.Add(ctx, chair, 2)
		require.NoError(t, err)
		require.Equal(t, 2, cmd.Quantity())
		require.Equal(t, 1, b.Len())
	})

	t.Run("adding the same product merges quantities", func(t *testing.T) {
		cmd, err := b.Add(ctx, chair, 3)
		require.NoError(t, err)
		require.Equal(t, 5, cmd.Quantity())
		require.Equal(t, 1, b.Len(), "same product stays one command")
	})

	t.Run("a second product gets its own command", func(t *testing.T) {
		_, err := b.Add(ctx, lamp, 1)
		require.NoError(t, err)
		require.Equal(t, 2, b.Len())
		require.InDelta(t, 5*50+20, b.Total(), 1e-9)
	})

	t.Run("the merge survives a reload", func(t *testing.T) {
		fresh, err := f.baskets.GetBasket(ctx, u)
		require.NoError(t, err)
		require.Equal(t, 2, fresh.Len())
		for _, cmd := range fresh.Commands() {
			if cmd.Product().ID() == chair.ID() {
				require.Equal(t, 5, cmd.Quantity())
			}
		}
	})

	t.Run("non-positive quantities are rejected", func(t *testing.T) {
		_, err := b.Add(ctx, lamp, 0)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
		_, err = b.Add(ctx, lamp, -2)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("adding a deleted product fails", func(t *testing.T) {
		ghost := f.product(t, "ghost", 5)
		require.NoError(t, ghost.Delete(ctx))
		_, err := b.Add(ctx, ghost, 1)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("nil product is rejected", func(t *testing.T) {
		_, err := b.Add(ctx, nil, 1)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func TestBasketsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	chair := f.product(t, "chair", 50)

	aliceBasket, err := f.baskets.GetBasket(ctx, alice)
	require.NoError(t, err)
	_, err = aliceBasket.Add(ctx, chair, 1)
	require.NoError(t, err)

	bobBasket, err := f.baskets.GetBasket(ctx, bob)
	require.NoError(t, err)
	require.Zero(t, bobBasket.Len())
}

func TestSetQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")
	chair := f.product(t, "chair", 50)

	b, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)
	cmd, err := b.Add(ctx, chair, 1)
	require.NoError(t, err)

	require.NoError(t, cmd.SetQuantity(ctx, 7))
	require.Equal(t, 7, cmd.Quantity())

	fresh, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)
	require.Equal(t, 7, fresh.Commands()[0].Quantity())

	t.Run("rejects quantities below one", func(t *testing.T) {
		require.ErrorIs(t, cmd.SetQuantity(ctx, 0), errs.ErrInvalidArgument)
		require.ErrorIs(t, cmd.SetQuantity(ctx, -2), errs.ErrInvalidArgument)
		require.Equal(t, 7, cmd.Quantity())
	})
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")
	chair := f.product(t, "chair", 50)
	lamp := f.product(t, "lamp", 20)
	desk := f.product(t, "desk", 90)

	b, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)
	for _, p := range []*catalog.Product{chair, lamp, desk} {
		_, err := b.Add(ctx, p, 1)
		require.NoError(t, err)
	}

	t.Run("by product", func(t *testing.T) {
		require.NoError(t, b.Remove(ctx, basket.Selector{Product: chair}))
		require.Equal(t, 2, b.Len())
	})

	t.Run("by index", func(t *testing.T) {
		zero := 0
		require.NoError(t, b.Remove(ctx, basket.Selector{Index: &zero}))
		require.Equal(t, 1, b.Len())
	})

	t.Run("by command", func(t *testing.T) {
		require.NoError(t, b.Remove(ctx, basket.Selector{Command: b.Commands()[0]}))
		require.Zero(t, b.Len())
	})

	t.Run("all removals reached storage", func(t *testing.T) {
		fresh, err := f.baskets.GetBasket(ctx, u)
		require.NoError(t, err)
		require.Zero(t, fresh.Len())
	})

	t.Run("selector rules", func(t *testing.T) {
		i := 0
		require.ErrorIs(t, b.Remove(ctx, basket.Selector{}), errs.ErrInvalidArgument)
		require.ErrorIs(t, b.Remove(ctx, basket.Selector{Product: chair, Index: &i}), errs.ErrInvalidArgument)

		out := 5
		require.ErrorIs(t, b.Remove(ctx, basket.Selector{Index: &out}), errs.ErrInvalidArgument)
	})

	t.Run("absent product", func(t *testing.T) {
		require.ErrorIs(t, b.Remove(ctx, basket.Selector{Product: chair}), errs.ErrNotFound)
	})
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")

	b, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)

	// clearing an empty basket is fine
	require.NoError(t, b.Clear(ctx))

	_, err = b.Add(ctx, f.product(t, "chair", 50), 1)
	require.NoError(t, err)
	_, err = b.Add(ctx, f.product(t, "lamp", 20), 1)
	require.NoError(t, err)

	require.NoError(t, b.Clear(ctx))
	require.Zero(t, b.Len())

	fresh, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)
	require.Zero(t, fresh.Len())
}

func TestDeletedUserLosesBasketRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice")
	chair := f.product(t, "chair", 50)

	b, err := f.baskets.GetBasket(ctx, u)
	require.NoError(t, err)
	_, err = b.Add(ctx, chair, 1)
	require.NoError(t, err)

	require.NoError(t, u.Delete(ctx))

	// the cascade removed the rows, so a re-add through the stale handle
	// trips the user foreign key
	_, err = b.Add(ctx, chair, 1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}
