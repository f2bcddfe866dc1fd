package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"go-farm-store/internal/model"
	"go-farm-store/internal/repository"
	"go-farm-store/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Error definitions
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

const (
	topSellingLimit  = 5
	recentSalesLimit = 10
)

// Broadcaster receives store events for live dashboards.
type Broadcaster interface {
	Publish(payload interface{})
}

// SaleRecorder is the capability the cart needs from the store.
type SaleRecorder interface {
	RecordSale(productID string, quantity int, customerEmail string) (*model.SaleRecord, error)
}

// StoreService owns the catalog and the sales history. Id-keyed mutations
// return ErrProductNotFound for unknown ids and leave state untouched.
type StoreService interface {
	SaleRecorder
	Products() []model.Product
	SalesHistory() []model.SaleRecord
	GetProduct(id string) (*model.Product, error)
	AddProduct(input *model.ProductInput) (*model.Product, error)
	UpdateProduct(id string, patch *model.ProductPatch) (*model.Product, error)
	DeleteProduct(id string) error
	SearchProducts(query string) []model.Product
	FilterProductsByCategory(category string) []model.Product
	GetPopularProducts() []model.Product
	ToggleManualPopular(id string) (*model.Product, error)
	GetSalesAnalytics() *model.SalesAnalytics
	// Close writes pending changes and stops the persistence watchers.
	Close() error
}

type storeService struct {
	mu       sync.RWMutex
	products []model.Product
	sales    []model.SaleRecord

	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	hub         Broadcaster
	now         func() time.Time

	productWatcher *watcher
	saleWatcher    *watcher
	closeOnce      sync.Once
}

// NewStoreService restores both collections and starts one persistence
// watcher per collection. hub may be nil.
func NewStoreService(ctx context.Context, pRepo repository.ProductRepository, sRepo repository.SaleRepository, hub Broadcaster) (StoreService, error) {
	return newStoreService(ctx, pRepo, sRepo, hub, time.Now)
}

func newStoreService(ctx context.Context, pRepo repository.ProductRepository, sRepo repository.SaleRepository, hub Broadcaster, now func() time.Time) (*storeService, error) {
	s := &storeService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		hub:         hub,
		now:         now,
	}

	seededProducts, err := s.restoreProducts(ctx)
	if err != nil {
		return nil, err
	}
	seededSales, err := s.restoreSales(ctx)
	if err != nil {
		return nil, err
	}

	s.productWatcher = newWatcher("products", s.saveProducts)
	s.saleWatcher = newWatcher("sales", s.saveSales)
	if seededProducts {
		s.productWatcher.touch()
	}
	if seededSales {
		s.saleWatcher.touch()
	}
	return s, nil
}

func (s *storeService) restoreProducts(ctx context.Context) (bool, error) {
	products, err := s.productRepo.Load(ctx)
	switch {
	case err == nil:
		s.products = products
		return false, nil
	case errors.Is(err, repository.ErrKeyNotFound):
		s.products = model.DefaultCatalog()
		return true, nil
	case errors.Is(err, repository.ErrCorruptDocument):
		zap.S().Warnw("saved catalog unreadable, falling back to default catalog", "error", err)
		s.products = model.DefaultCatalog()
		return true, nil
	}
	return false, fmt.Errorf("load products: %w", err)
}

func (s *storeService) restoreSales(ctx context.Context) (bool, error) {
	sales, err := s.saleRepo.Load(ctx)
	switch {
	case err == nil:
		s.sales = sales
		return false, nil
	case errors.Is(err, repository.ErrKeyNotFound):
		s.sales = []model.SaleRecord{}
		return true, nil
	case errors.Is(err, repository.ErrCorruptDocument):
		zap.S().Warnw("saved sales history unreadable, starting empty", "error", err)
		s.sales = []model.SaleRecord{}
		return true, nil
	}
	return false, fmt.Errorf("load sales: %w", err)
}

func (s *storeService) saveProducts(ctx context.Context) error {
	s.mu.RLock()
	snapshot := cloneProducts(s.products)
	s.mu.RUnlock()
	return s.productRepo.Save(ctx, snapshot)
}

func (s *storeService) saveSales(ctx context.Context) error {
	s.mu.RLock()
	snapshot := slices.Clone(s.sales)
	s.mu.RUnlock()
	return s.saleRepo.Save(ctx, snapshot)
}

func (s *storeService) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

func (s *storeService) SalesHistory() []model.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sales)
}

func (s *storeService) GetProduct(id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	p := s.products[i].Clone()
	return &p, nil
}

func (s *storeService) AddProduct(input *model.ProductInput) (*model.Product, error) {
	if err := validator.Check(input); err != nil {
		return nil, err
	}

	product := input.ToProduct()
	now := s.now()

	s.mu.Lock()
	product.ID = s.uniqueID(product.Name, now)
	product.SalesCount = 0
	product.DateAdded = now.UTC().Format("2006-01-02")
	s.products = append(s.products, product)
	created := product.Clone()
	s.mu.Unlock()

	s.productWatcher.touch()
	s.publish("catalog_update", "product_created", map[string]interface{}{"product": created},
		fmt.Sprintf("product '%s' added", created.Name))
	return &created, nil
}

// uniqueID bumps the timestamp part until the id is free, so two products
// added with the same name in the same millisecond still differ.
func (s *storeService) uniqueID(name string, at time.Time) string {
	for {
		id := model.NewProductID(name, at)
		if s.indexOf(id) < 0 {
			return id
		}
		at = at.Add(time.Millisecond)
	}
}

func (s *storeService) UpdateProduct(id string, patch *model.ProductPatch) (*model.Product, error) {
	if err := validator.Check(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrProductNotFound
	}
	patch.Apply(&s.products[i])
	updated := s.products[i].Clone()
	s.mu.Unlock()

	s.productWatcher.touch()
	s.publish("catalog_update", "product_updated", map[string]interface{}{"product": updated},
		fmt.Sprintf("product '%s' updated", updated.Name))
	return &updated, nil
}

// DeleteProduct leaves the sales history alone; records keep the dangling
// id and their copy of the product name.
func (s *storeService) DeleteProduct(id string) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrProductNotFound
	}
	name := s.products[i].Name
	s.products = slices.Delete(s.products, i, i+1)
	s.mu.Unlock()

	s.productWatcher.touch()
	s.publish("catalog_update", "product_deleted", map[string]interface{}{"product_id": id},
		fmt.Sprintf("product '%s' deleted", name))
	return nil
}

// RecordSale prepends a sale priced at the product's current price and
// bumps its sales count. A quantity that would overflow the count is
// rejected with ErrInvalidQuantity.
func (s *storeService) RecordSale(productID string, quantity int, customerEmail string) (*model.SaleRecord, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrProductNotFound
	}
	product := &s.products[i]
	if quantity > math.MaxInt-product.SalesCount {
		s.mu.Unlock()
		return nil, ErrInvalidQuantity
	}
	sale := model.SaleRecord{
		ID:            uuid.NewString(),
		ProductID:     productID,
		ProductName:   product.Name,
		Quantity:      quantity,
		TotalAmount:   product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Timestamp:     s.now().UTC(),
		CustomerEmail: customerEmail,
	}
	s.sales = slices.Insert(s.sales, 0, sale)
	product.SalesCount += quantity
	salesCount := product.SalesCount
	s.mu.Unlock()

	s.saleWatcher.touch()
	s.productWatcher.touch()
	s.publish("sale_recorded", "sale_recorded", map[string]interface{}{
		"sale":        sale,
		"sales_count": salesCount,
	}, fmt.Sprintf("%d x '%s' sold", quantity, sale.ProductName))
	return &sale, nil
}

// SearchProducts matches name, description and ingredients without regard
// to case. A blank query returns the whole catalog.
func (s *storeService) SearchProducts(query string) []model.Product {
	if strings.TrimSpace(query) == "" {
		return s.Products()
	}
	lowered := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []model.Product{}
	for i := range s.products {
		if s.products[i].Matches(lowered) {
			result = append(result, s.products[i].Clone())
		}
	}
	return result
}

func (s *storeService) FilterProductsByCategory(category string) []model.Product {
	if category == model.CategoryAll {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []model.Product{}
	for i := range s.products {
		if string(s.products[i].Category) == category {
			result = append(result, s.products[i].Clone())
		}
	}
	return result
}

func (s *storeService) GetPopularProducts() []model.Product {
	products := s.Products()
	model.SortByPopularity(products)
	return products
}

func (s *storeService) ToggleManualPopular(id string) (*model.Product, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrProductNotFound
	}
	s.products[i].IsManuallyPopular = !s.products[i].IsManuallyPopular
	toggled := s.products[i].Clone()
	s.mu.Unlock()

	s.productWatcher.touch()
	s.publish("catalog_update", "popularity_toggled", map[string]interface{}{"product": toggled},
		fmt.Sprintf("product '%s' popularity set to %t", toggled.Name, toggled.IsManuallyPopular))
	return &toggled, nil
}

func (s *storeService) GetSalesAnalytics() *model.SalesAnalytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	analytics := &model.SalesAnalytics{
		TotalRevenue:       decimal.Zero,
		TopSellingProducts: []model.TopProduct{},
		RecentSales:        slices.Clone(s.sales[:min(recentSalesLimit, len(s.sales))]),
		CategoryStats:      make([]model.CategoryStat, 0, len(model.Categories)),
	}
	if analytics.RecentSales == nil {
		analytics.RecentSales = []model.SaleRecord{}
	}
	for _, sale := range s.sales {
		analytics.TotalSales += sale.Quantity
		analytics.TotalRevenue = analytics.TotalRevenue.Add(sale.TotalAmount)
	}

	ranked := cloneProducts(s.products)
	slices.SortStableFunc(ranked, func(a, b model.Product) int {
		return b.SalesCount - a.SalesCount
	})
	for _, p := range ranked[:min(topSellingLimit, len(ranked))] {
		analytics.TopSellingProducts = append(analytics.TopSellingProducts, model.TopProduct{Product: p, SalesCount: p.SalesCount})
	}

	categoryOf := make(map[string]model.Category, len(s.products))
	for _, p := range s.products {
		categoryOf[p.ID] = p.Category
	}
	for _, category := range model.Categories {
		stat := model.CategoryStat{Category: category, Revenue: decimal.Zero}
		for _, p := range s.products {
			if p.Category == category {
				stat.Count++
			}
		}
		for _, sale := range s.sales {
			if c, ok := categoryOf[sale.ProductID]; ok && c == category {
				stat.Revenue = stat.Revenue.Add(sale.TotalAmount)
			}
		}
		analytics.CategoryStats = append(analytics.CategoryStats, stat)
	}
	return analytics
}

func (s *storeService) Close() error {
	s.closeOnce.Do(func() {
		s.productWatcher.stop()
		s.saleWatcher.stop()
	})
	return nil
}

// indexOf expects s.mu to be held.
func (s *storeService) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *storeService) publish(eventType, action string, fields map[string]interface{}, message string) {
	if s.hub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":    eventType,
		"action":  action,
		"message": message,
	}
	for k, v := range fields {
		payload[k] = v
	}
	s.hub.Publish(payload)
}

func cloneProducts(products []model.Product) []model.Product {
	out := make([]model.Product, len(products))
	for i := range products {
		out[i] = products[i].Clone()
	}
	return out
}
