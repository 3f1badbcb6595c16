// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/logging"
	"github.com/taibuivan/shopfront/internal/storage"
	"github.com/taibuivan/shopfront/internal/storefront/cart"
)

func product(id int64, stock int, price string) cart.Product {
	return cart.Product{
		ID:    id,
		Name:  "Product",
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func newCart(t *testing.T) (*cart.Controller, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return cart.NewController(context.Background(), store, logging.Discard()), store
}

/*
TestAdd_ClampsToStock caps a request above stock without failing.
*/
func TestAdd_ClampsToStock(t *testing.T) {
	ctx := context.Background()
	controller, _ := newCart(t)

	quantity := controller.Add(ctx, product(5, 2, "100"), 3)

	assert.Equal(t, 2, quantity)
	require.Len(t, controller.Items(), 1)
	assert.Equal(t, 2, controller.Items()[0].Quantity)
	assert.True(t, controller.IsOpen())
}

/*
TestAdd_MergesExistingEntry grows an entry and keeps ids unique.
*/
func TestAdd_MergesExistingEntry(t *testing.T) {
	ctx := context.Background()
	controller, _ := newCart(t)

	controller.Add(ctx, product(1, 10, "5"), 2)
	controller.Add(ctx, product(1, 10, "5"), 3)
	controller.Add(ctx, product(1, 10, "5"), 20)

	items := controller.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity)
}

/*
TestAdd_Edges covers zero quantity and missing stock.
*/
func TestAdd_Edges(t *testing.T) {
	ctx := context.Background()
	controller, _ := newCart(t)

	assert.Equal(t, 1, controller.Add(ctx, product(1, 3, "5"), 0))
	assert.Equal(t, 0, controller.Add(ctx, product(2, 0, "5"), 1))
	assert.False(t, controller.Contains(2))
}

/*
TestAdd_DerivesSlug fills a missing slug from the product name.
*/
func TestAdd_DerivesSlug(t *testing.T) {
	controller, _ := newCart(t)
	p := product(1, 3, "5")
	p.Name = "Green Tea 100g"

	controller.Add(context.Background(), p, 1)
	assert.Equal(t, "green-tea-100g", controller.Items()[0].Product.Slug)

	// Names without an ASCII form fall back to the id.
	other := product(2, 3, "5")
	other.Name = "চা"
	controller.Add(context.Background(), other, 1)
	assert.Equal(t, "product-2", controller.Items()[1].Product.Slug)
}

/*
TestUpdateQuantity_ZeroRemoves matches Remove for non-positive quantities.
*/
func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	ctx := context.Background()

	for _, quantity := range []int{0, -3} {
		updated, _ := newCart(t)
		removed, _ := newCart(t)

		for _, c := range []*cart.Controller{updated, removed} {
			c.Add(ctx, product(1, 5, "10"), 2)
			c.Add(ctx, product(2, 5, "20"), 1)
		}

		updated.UpdateQuantity(ctx, 1, quantity)
		removed.Remove(ctx, 1)

		assert.Equal(t, removed.Items(), updated.Items())
	}
}

/*
TestUpdateQuantity_Clamps bounds a new quantity to stock and ignores
unknown products.
*/
func TestUpdateQuantity_Clamps(t *testing.T) {
	ctx := context.Background()
	controller, _ := newCart(t)
	controller.Add(ctx, product(1, 4, "10"), 1)

	controller.UpdateQuantity(ctx, 1, 99)
	assert.Equal(t, 4, controller.Items()[0].Quantity)

	controller.UpdateQuantity(ctx, 42, 2)
	assert.Len(t, controller.Items(), 1)
}

/*
TestTotals computes decimal totals idempotently.
*/
func TestTotals(t *testing.T) {
	ctx := context.Background()
	controller, _ := newCart(t)

	controller.Add(ctx, product(1, 10, "19.99"), 3)
	controller.Add(ctx, product(2, 10, "0.01"), 1)

	assert.True(t, decimal.RequireFromString("59.98").Equal(controller.Total()))
	assert.True(t, controller.Total().Equal(controller.Total()))
	assert.Equal(t, 4, controller.Count())

	controller.Clear(ctx)
	assert.True(t, controller.Total().IsZero())
	assert.Zero(t, controller.Count())
}

/*
TestInvariant_RandomSequences checks 1 <= quantity <= stock after arbitrary
operation sequences.
*/
func TestInvariant_RandomSequences(t *testing.T) {
	ctx := context.Background()
	random := rand.New(rand.NewPCG(7, 11))

	catalog := []cart.Product{
		product(1, 1, "1"),
		product(2, 3, "2.5"),
		product(3, 7, "10"),
		product(4, 0, "4"),
	}

	for run := 0; run < 50; run++ {
		controller, _ := newCart(t)

		for step := 0; step < 40; step++ {
			p := catalog[random.IntN(len(catalog))]
			quantity := random.IntN(12) - 3

			switch random.IntN(3) {
			case 0:
				controller.Add(ctx, p, quantity)
			case 1:
				controller.UpdateQuantity(ctx, p.ID, quantity)
			default:
				controller.Remove(ctx, p.ID)
			}

			seen := map[int64]bool{}
			for _, item := range controller.Items() {
				require.False(t, seen[item.Product.ID], "duplicate entry")
				seen[item.Product.ID] = true
				require.GreaterOrEqual(t, item.Quantity, 1)
				require.LessOrEqual(t, item.Quantity, item.Product.Stock)
			}
		}
	}
}

/*
TestPersistence_Rehydrates restores the cart from storage.
*/
func TestPersistence_Rehydrates(t *testing.T) {
	ctx := context.Background()
	controller, store := newCart(t)
	controller.Add(ctx, product(1, 5, "12.50"), 2)

	restored := cart.NewController(ctx, store, logging.Discard())

	require.Len(t, restored.Items(), 1)
	assert.Equal(t, 2, restored.Items()[0].Quantity)
	assert.True(t, decimal.RequireFromString("25").Equal(restored.Total()))
	assert.False(t, restored.IsOpen())
}

/*
TestPersistence_Corrupt reverts to an empty cart.
*/
func TestPersistence_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeyCart, `[{"product":`))

	controller := cart.NewController(ctx, store, logging.Discard())

	assert.Empty(t, controller.Items())
	_, ok, err := store.Get(ctx, constants.StorageKeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
}

/*
TestPersistence_RepairsInvalidEntries caps or drops loaded lines that break the stock rule.
*/
func TestPersistence_RepairsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, constants.StorageKeyCart, `[
		{"product":{"id":1,"price":"10","stock":2},"quantity":9},
		{"product":{"id":2,"price":"10","stock":0},"quantity":1},
		{"product":{"id":3,"price":"10","stock":4},"quantity":0},
		{"product":{"id":1,"price":"10","stock":2},"quantity":1}
	]`))

	controller := cart.NewController(ctx, store, logging.Discard())
	items := controller.Items()

	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(3), items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

/*
TestVisibility toggles the UI flag and notifies subscribers.
*/
func TestVisibility(t *testing.T) {
	controller, _ := newCart(t)

	var last cart.Snapshot
	cancel := controller.Subscribe(func(snapshot cart.Snapshot) { last = snapshot })
	defer cancel()

	controller.Toggle()
	assert.True(t, controller.IsOpen())
	assert.True(t, last.IsOpen)

	controller.Toggle()
	assert.False(t, controller.IsOpen())

	controller.Open()
	controller.Close()
	assert.False(t, last.IsOpen)
}
