// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cart owns the shopping cart of the storefront.

The cart is a list of (product, quantity) entries keyed by product id and
mirrored to storage after every mutation. It is purely local: nothing here
talks to the store API.

Invariant: every entry satisfies 1 <= quantity <= product.Stock. Requests
above stock are capped silently. Products without stock are never added.
*/
package cart

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/storage"
	"github.com/taibuivan/shopfront/pkg/slice"
	"github.com/taibuivan/shopfront/pkg/slug"
)

// Product is the catalog data the cart keeps for an entry.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Slug  string          `json:"slug"`
	Image string          `json:"image,omitempty"`
}

// Item is one cart entry.
type Item struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity.
func (item Item) Subtotal() decimal.Decimal {
	return item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Snapshot is the observable cart state.
type Snapshot struct {
	Items  []Item
	IsOpen bool
	Total  decimal.Decimal
	Count  int
}

// Controller is the Cart State Controller.
//
// # Concurrency
//
// Safe for concurrent use. Listeners run without the lock held.
type Controller struct {
	slot   *storage.Slot[[]Item]
	logger *slog.Logger

	mu        sync.Mutex
	items     []Item
	open      bool
	listeners map[int]func(Snapshot)
	nextID    int
}

// NewController rehydrates the cart from store. Stored entries that break
// the 1..stock quantity rule are repaired or dropped.
func NewController(ctx context.Context, store storage.Store, logger *slog.Logger) *Controller {
	controller := &Controller{
		slot:      storage.NewSlot[[]Item](store, constants.StorageKeyCart, logger),
		logger:    logger,
		listeners: make(map[int]func(Snapshot)),
	}

	if stored, ok := controller.slot.Load(ctx); ok {
		controller.items = revalidate(stored)
		if len(controller.items) != len(stored) {
			logger.Warn("cart_entries_dropped", slog.Int("stored", len(stored)), slog.Int("kept", len(controller.items)))
		}
	}

	return controller
}

// # Mutations

// Add puts quantity units of product in the cart and opens it.
//
// An existing entry grows by quantity. The result is capped at stock.
// A quantity below 1 counts as 1. It returns the entry's resulting quantity,
// or 0 when the product has no stock.
func (controller *Controller) Add(ctx context.Context, product Product, quantity int) int {
	if product.Stock <= 0 {
		controller.logger.Info("cart_add_out_of_stock", slog.Int64("product_id", product.ID))
		return 0
	}
	if quantity < 1 {
		quantity = 1
	}
	if product.Slug == "" {
		product.Slug = slug.From(product.Name)
	}
	if product.Slug == "" {
		product.Slug = "product-" + strconv.FormatInt(product.ID, 10)
	}

	var result int
	controller.mutate(ctx, func() {
		controller.open = true

		if index := controller.indexOf(product.ID); index >= 0 {
			item := &controller.items[index]
			item.Product = product
			item.Quantity = clamp(item.Quantity+quantity, product.Stock)
			result = item.Quantity
			return
		}

		result = clamp(quantity, product.Stock)
		controller.items = append(controller.items, Item{Product: product, Quantity: result})
	})
	return result
}

// Remove deletes the entry of productID.
func (controller *Controller) Remove(ctx context.Context, productID int64) {
	controller.mutate(ctx, func() {
		controller.items = slices.DeleteFunc(controller.items, func(item Item) bool {
			return item.Product.ID == productID
		})
	})
}

// UpdateQuantity sets the quantity of productID, capped at stock.
// A quantity of 0 or less removes the entry.
func (controller *Controller) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	if quantity <= 0 {
		controller.Remove(ctx, productID)
		return
	}

	controller.mutate(ctx, func() {
		if index := controller.indexOf(productID); index >= 0 {
			item := &controller.items[index]
			item.Quantity = clamp(quantity, item.Product.Stock)
		}
	})
}

// Clear empties the cart.
func (controller *Controller) Clear(ctx context.Context) {
	controller.mutate(ctx, func() {
		controller.items = nil
	})
}

// # Queries

// Contains reports whether productID has an entry.
func (controller *Controller) Contains(productID int64) bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.indexOf(productID) >= 0
}

// Items returns a copy of the entries in insertion order.
func (controller *Controller) Items() []Item {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return slices.Clone(controller.items)
}

// Total is the sum of price times quantity.
func (controller *Controller) Total() decimal.Decimal {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return total(controller.items)
}

// Count is the sum of quantities.
func (controller *Controller) Count() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return count(controller.items)
}

// Snapshot returns the full observable state.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshot()
}

// # Visibility

// Open shows the cart.
func (controller *Controller) Open() { controller.setOpen(func(bool) bool { return true }) }

// Close hides the cart.
func (controller *Controller) Close() { controller.setOpen(func(bool) bool { return false }) }

// Toggle flips the cart visibility.
func (controller *Controller) Toggle() { controller.setOpen(func(open bool) bool { return !open }) }

// IsOpen reports whether the cart is shown.
func (controller *Controller) IsOpen() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.open
}

// Subscribe registers fn for every change and returns its cancel func.
func (controller *Controller) Subscribe(fn func(Snapshot)) func() {
	controller.mu.Lock()
	id := controller.nextID
	controller.nextID++
	controller.listeners[id] = fn
	controller.mu.Unlock()

	return func() {
		controller.mu.Lock()
		delete(controller.listeners, id)
		controller.mu.Unlock()
	}
}

// # Internals

// mutate applies change, persists the entries and notifies listeners.
func (controller *Controller) mutate(ctx context.Context, change func()) {
	controller.mu.Lock()
	change()
	items := slices.Clone(controller.items)
	snapshot, listeners := controller.snapshot(), controller.listenersLocked()
	controller.mu.Unlock()

	if items == nil {
		items = []Item{}
	}
	if err := controller.slot.Save(ctx, items); err != nil {
		controller.logger.Warn("cart_persist_failed", slog.Any("error", err))
	}

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (controller *Controller) setOpen(next func(open bool) bool) {
	controller.mu.Lock()
	controller.open = next(controller.open)
	snapshot, listeners := controller.snapshot(), controller.listenersLocked()
	controller.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (controller *Controller) snapshot() Snapshot {
	return Snapshot{
		Items:  slices.Clone(controller.items),
		IsOpen: controller.open,
		Total:  total(controller.items),
		Count:  count(controller.items),
	}
}

func (controller *Controller) listenersLocked() []func(Snapshot) {
	listeners := make([]func(Snapshot), 0, len(controller.listeners))
	for _, fn := range controller.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func (controller *Controller) indexOf(productID int64) int {
	return slices.IndexFunc(controller.items, func(item Item) bool {
		return item.Product.ID == productID
	})
}

func total(items []Item) decimal.Decimal {
	return slice.Reduce(items, decimal.Zero, func(sum decimal.Decimal, item Item) decimal.Decimal {
		return sum.Add(item.Subtotal())
	})
}

func count(items []Item) int {
	return slice.Reduce(items, 0, func(sum int, item Item) int {
		return sum + item.Quantity
	})
}

// clamp bounds quantity to [1, stock]. Callers guarantee stock >= 1.
func clamp(quantity, stock int) int {
	return max(1, min(quantity, stock))
}

// revalidate repairs loaded entries: unknown or out-of-stock products and
// duplicate ids are dropped, quantities are bounded to [1, stock].
func revalidate(stored []Item) []Item {
	valid := slice.Filter(stored, func(item Item) bool {
		return item.Product.ID != 0 && item.Product.Stock > 0
	})
	valid = slice.UniqueBy(valid, func(item Item) int64 { return item.Product.ID })

	return slice.Map(valid, func(item Item) Item {
		item.Quantity = clamp(item.Quantity, item.Product.Stock)
		return item
	})
}
