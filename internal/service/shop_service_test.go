package service

import (
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"go-farm-store/internal/model"
	"go-farm-store/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shopIDs(items []ShopItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// bulkCatalog builds n Feed products with strictly falling sales counts.
func bulkCatalog(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{
			ID:         fmt.Sprintf("p%02d", i),
			Name:       fmt.Sprintf("Product %02d", i),
			Price:      decimal.NewFromInt(1),
			Category:   model.CategoryFeed,
			SalesCount: n - i,
		}
	}
	return products
}

func TestBrowseDefaults(t *testing.T) {
	shop := NewShopService(newTestStore(t, nil))

	page := shop.Browse(BrowseQuery{})
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPerPage, page.PerPage)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []int{}, page.PageNumbers)
	assert.Equal(t, ViewGrid, page.View)
	assert.Equal(t, model.CategoryAll, page.Category)
	assert.Equal(t, []model.Category{model.CategoryFeed}, page.Categories)

	assert.Equal(t,
		[]string{"cattle-mix", "chicken-feed", "goat-mix", "pig-pellets", "sheep-feed", "horse-oats"},
		shopIDs(page.Products))
	for _, item := range page.Products {
		assert.True(t, item.IsPopular, item.ID)
	}
}

func TestBrowseSearchThenCategory(t *testing.T) {
	store := newTestStore(t, nil)
	_, err := store.AddProduct(&model.ProductInput{
		Name:        "Oat Treats",
		Price:       decimal.RequireFromString("5"),
		Description: "Crunchy horse treats",
		Category:    model.CategoryTreats,
	})
	require.NoError(t, err)
	shop := NewShopService(store)

	page := shop.Browse(BrowseQuery{Query: "oat"})
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, "oat", page.Query)

	page = shop.Browse(BrowseQuery{Query: "oat", Category: "Treats"})
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Oat Treats", page.Products[0].Name)
	assert.False(t, page.Products[0].IsPopular)
	assert.Equal(t, []model.Category{model.CategoryFeed, model.CategoryTreats}, page.Categories)

	page = shop.Browse(BrowseQuery{Category: "Equipment"})
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Products)
}

func TestBrowsePagination(t *testing.T) {
	kv := repository.NewMemoryKV()
	seedProducts(t, kv, bulkCatalog(45))
	shop := NewShopService(newTestStore(t, kv))

	first := shop.Browse(BrowseQuery{})
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Products, 20)
	assert.Equal(t, "p00", first.Products[0].ID)
	assert.Equal(t, []int{1, 2, 3}, first.PageNumbers)

	last := shop.Browse(BrowseQuery{Page: 3})
	assert.Len(t, last.Products, 5)
	assert.Equal(t, "p40", last.Products[0].ID)

	beyond := shop.Browse(BrowseQuery{Page: 9})
	assert.Empty(t, beyond.Products)
	assert.Equal(t, 45, beyond.Total)

	small := shop.Browse(BrowseQuery{Page: 2, PerPage: 10, View: "list"})
	assert.Equal(t, 5, small.TotalPages)
	assert.Equal(t, "p10", small.Products[0].ID)
	assert.Equal(t, ViewList, small.View)

	negative := shop.Browse(BrowseQuery{Page: -2})
	assert.Equal(t, 1, negative.Page)
}

func TestBrowseExtremePaging(t *testing.T) {
	shop := NewShopService(newTestStore(t, nil))

	farPage := shop.Browse(BrowseQuery{Page: math.MaxInt64})
	assert.Empty(t, farPage.Products)
	assert.Equal(t, 6, farPage.Total)
	assert.Equal(t, 1, farPage.TotalPages)

	huge := shop.Browse(BrowseQuery{Page: 1, PerPage: math.MaxInt64})
	assert.Len(t, huge.Products, 6)
	assert.Equal(t, 1, huge.TotalPages)

	hugeSecond := shop.Browse(BrowseQuery{Page: 2, PerPage: math.MaxInt64})
	assert.Empty(t, hugeSecond.Products)

	both := shop.Browse(BrowseQuery{Page: math.MaxInt64, PerPage: math.MaxInt64})
	assert.Empty(t, both.Products)
	assert.Equal(t, []int{}, both.PageNumbers)
}

func TestBrowseExtremePageNumbers(t *testing.T) {
	kv := repository.NewMemoryKV()
	seedProducts(t, kv, bulkCatalog(45))
	shop := NewShopService(newTestStore(t, kv))

	page := shop.Browse(BrowseQuery{Page: math.MaxInt64})
	assert.Empty(t, page.Products)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, page.PageNumbers)
}

// shiftingStore serves a bigger catalog on every Products call.
type shiftingStore struct {
	StoreService
	calls atomic.Int32
}

func (s *shiftingStore) Products() []model.Product {
	n := s.calls.Add(1)
	products := model.DefaultCatalog()
	if n > 1 {
		products = append(products, model.Product{ID: "oat-treat", Name: "Oat Treat", Category: model.CategoryTreats})
	}
	return products
}

func TestBrowseReadsOneSnapshot(t *testing.T) {
	store := &shiftingStore{}
	shop := NewShopService(store)

	page := shop.Browse(BrowseQuery{Query: "oat"})
	assert.Equal(t, int32(1), store.calls.Load())
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []model.Category{model.CategoryFeed}, page.Categories)
}

func TestPageNumbers(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 0, []int{}},
		{1, 1, []int{}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{7, 10, []int{5, 6, 7, 8, 9}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{9, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pageNumbers(tc.current, tc.total), "page %d of %d", tc.current, tc.total)
	}
}

func TestShopGetProduct(t *testing.T) {
	shop := NewShopService(newTestStore(t, nil))

	item, err := shop.GetProduct("horse-oats")
	require.NoError(t, err)
	assert.Equal(t, "Horse Oats", item.Name)
	assert.True(t, item.IsPopular)

	_, err = shop.GetProduct("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
