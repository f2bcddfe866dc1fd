package model

import "github.com/shopspring/decimal"

// TopProduct pairs a product with its sales count for the top sellers list.
type TopProduct struct {
	Product    Product `json:"product"`
	SalesCount int     `json:"salesCount"`
}

// CategoryStat is the per-category rollup of the admin dashboard.
type CategoryStat struct {
	Category Category        `json:"category"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesAnalytics aggregates the sales history for the admin dashboard.
type SalesAnalytics struct {
	TotalSales         int             `json:"totalSales"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TopSellingProducts []TopProduct    `json:"topSellingProducts"`
	RecentSales        []SaleRecord    `json:"recentSales"`
	CategoryStats      []CategoryStat  `json:"categoryStats"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts  int             `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	PopularCount   int             `json:"popular_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// SalesMovementData untuk chart data
type SalesMovementData struct {
	Date    string          `json:"date"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}
