package service

import (
	"time"

	"go-farm-store/internal/model"

	"github.com/shopspring/decimal"
)

// lowStockThreshold matches the dashboard's low stock warning.
const lowStockThreshold = 10

type DashboardService interface {
	GetSalesAnalytics() *model.SalesAnalytics
	GetDashboardStats() *model.DashboardStats
	GetSalesMovement(days int) []model.SalesMovementData
}

type dashboardService struct {
	store StoreService
	now   func() time.Time
}

func NewDashboardService(store StoreService) DashboardService {
	return &dashboardService{store: store, now: time.Now}
}

func (s *dashboardService) GetSalesAnalytics() *model.SalesAnalytics {
	return s.store.GetSalesAnalytics()
}

func (s *dashboardService) GetDashboardStats() *model.DashboardStats {
	products := s.store.Products()
	stats := &model.DashboardStats{
		TotalProducts:  len(products),
		TotalValuation: decimal.Zero,
	}
	for i := range products {
		p := &products[i]
		if p.Stock < lowStockThreshold {
			stats.LowStockCount++
		}
		if p.IsPopular() {
			stats.PopularCount++
		}
		stats.TotalValuation = stats.TotalValuation.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return stats
}

// GetSalesMovement groups the last days of sales per UTC day, oldest
// first. Days without sales are omitted.
func (s *dashboardService) GetSalesMovement(days int) []model.SalesMovementData {
	endDate := s.now().UTC()
	startDate := endDate.AddDate(0, 0, -days)

	sales := s.store.SalesHistory()
	results := []model.SalesMovementData{}
	index := make(map[string]int)
	// History is newest first; walk it backwards for ascending dates.
	for i := len(sales) - 1; i >= 0; i-- {
		sale := sales[i]
		if sale.Timestamp.Before(startDate) || sale.Timestamp.After(endDate) {
			continue
		}
		date := sale.Timestamp.UTC().Format("2006-01-02")
		j, ok := index[date]
		if !ok {
			j = len(results)
			index[date] = j
			results = append(results, model.SalesMovementData{Date: date, Revenue: decimal.Zero})
		}
		results[j].Units += sale.Quantity
		results[j].Revenue = results[j].Revenue.Add(sale.TotalAmount)
	}
	return results
}
