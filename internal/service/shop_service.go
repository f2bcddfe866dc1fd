package service

import (
	"strings"

	"go-farm-store/internal/model"
)

const (
	DefaultPerPage = 20
	pageWindow     = 5
)

// ViewMode selects how the shop lays products out.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// BrowseQuery are the shop page controls.
type BrowseQuery struct {
	Query    string `query:"q"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
	View     string `query:"view"`
}

// ShopItem is a product with its derived popularity badge.
type ShopItem struct {
	model.Product
	IsPopular bool `json:"isPopular"`
}

// ShopPage is one page of the filtered, popularity-sorted product list.
type ShopPage struct {
	Products    []ShopItem       `json:"products"`
	Total       int              `json:"total"`
	Page        int              `json:"page"`
	PerPage     int              `json:"per_page"`
	TotalPages  int              `json:"total_pages"`
	PageNumbers []int            `json:"page_numbers"`
	Categories  []model.Category `json:"categories"`
	View        ViewMode         `json:"view"`
	Query       string           `json:"query,omitempty"`
	Category    string           `json:"category"`
}

type ShopService interface {
	Browse(q BrowseQuery) *ShopPage
	GetProduct(id string) (*ShopItem, error)
}

type shopService struct {
	store StoreService
}

func NewShopService(store StoreService) ShopService {
	return &shopService{store: store}
}

// Browse applies search, then category, then the popularity order, then
// slices out the requested page. A page past the end is empty.
func (s *shopService) Browse(q BrowseQuery) *ShopPage {
	all := s.store.Products()
	categories := presentCategories(all)

	result := all
	if strings.TrimSpace(q.Query) != "" {
		lowered := strings.ToLower(q.Query)
		result = make([]model.Product, 0, len(all))
		for i := range all {
			if all[i].Matches(lowered) {
				result = append(result, all[i])
			}
		}
	}

	category := q.Category
	if category == "" {
		category = model.CategoryAll
	}
	if category != model.CategoryAll {
		filtered := make([]model.Product, 0, len(result))
		for _, p := range result {
			if string(p.Category) == category {
				filtered = append(filtered, p)
			}
		}
		result = filtered
	}

	model.SortByPopularity(result)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	totalPages := len(result) / perPage
	if len(result)%perPage != 0 {
		totalPages++
	}

	// start stays below len(result) whenever page-1 < totalPages.
	start, end := len(result), len(result)
	if page-1 < totalPages {
		start = (page - 1) * perPage
		end = start + min(perPage, len(result)-start)
	}
	items := make([]ShopItem, 0, end-start)
	for _, p := range result[start:end] {
		items = append(items, ShopItem{Product: p, IsPopular: p.IsPopular()})
	}

	view := ViewGrid
	if q.View == string(ViewList) {
		view = ViewList
	}

	return &ShopPage{
		Products:    items,
		Total:       len(result),
		Page:        page,
		PerPage:     perPage,
		TotalPages:  totalPages,
		PageNumbers: pageNumbers(page, totalPages),
		Categories:  categories,
		View:        view,
		Query:       q.Query,
		Category:    category,
	}
}

func (s *shopService) GetProduct(id string) (*ShopItem, error) {
	p, err := s.store.GetProduct(id)
	if err != nil {
		return nil, err
	}
	return &ShopItem{Product: *p, IsPopular: p.IsPopular()}, nil
}

// pageNumbers returns up to five page numbers around current, shifted to
// stay inside 1..total. A single page needs no pager.
func pageNumbers(current, total int) []int {
	if total <= 1 {
		return []int{}
	}
	current = min(max(current, 1), total)
	start := max(1, current-pageWindow/2)
	end := min(total, start+pageWindow-1)
	if end-start < pageWindow-1 {
		start = max(1, end-pageWindow+1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// presentCategories lists the categories in use, in first-seen order.
func presentCategories(products []model.Product) []model.Category {
	seen := make(map[model.Category]bool)
	categories := []model.Category{}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
