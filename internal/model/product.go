package model

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups catalog products on the shop and dashboard.
type Category string

const (
	CategoryFeed        Category = "Feed"
	CategorySupplements Category = "Supplements"
	CategoryEquipment   Category = "Equipment"
	CategoryTreats      Category = "Treats"

	// CategoryAll is a filter value only, never stored on a product.
	CategoryAll = "All"
)

// Categories is the fixed category set, in dashboard order.
var Categories = []Category{CategoryFeed, CategorySupplements, CategoryEquipment, CategoryTreats}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PopularSalesThreshold is the sales count at which a product counts as popular.
const PopularSalesThreshold = 10

// Product is the single record type for sellable items. Catalog-only
// fields (category, stock, sales count, popularity flag, date, image) are
// zero for items that never went through the admin catalog.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Emoji           string          `json:"emoji"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description"`
	Color           string          `json:"color"`
	LongDescription string          `json:"longDescription,omitempty"`
	Weight          string          `json:"weight,omitempty"`
	Ingredients     []string        `json:"ingredients"`

	Category          Category `json:"category"`
	Stock             int      `json:"stock"`
	SalesCount        int      `json:"salesCount"`
	IsManuallyPopular bool     `json:"isManuallyPopular"`
	DateAdded         string   `json:"dateAdded"`
	Image             string   `json:"image,omitempty"` // base64 data URL
}

// IsPopular is derived: manual override or enough recorded sales.
func (p *Product) IsPopular() bool {
	return p.IsManuallyPopular || p.SalesCount >= PopularSalesThreshold
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	if p.Ingredients != nil {
		p.Ingredients = append([]string(nil), p.Ingredients...)
	}
	return p
}

// Matches reports a case-insensitive substring hit on name, description
// or any ingredient. lowered must already be lower case.
func (p *Product) Matches(lowered string) bool {
	if strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered) {
		return true
	}
	for _, ingredient := range p.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), lowered) {
			return true
		}
	}
	return false
}

// SortByPopularity orders manually popular products first, then by sales
// count descending. Equal products keep their relative order.
func SortByPopularity(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.IsManuallyPopular != b.IsManuallyPopular {
			return a.IsManuallyPopular
		}
		return a.SalesCount > b.SalesCount
	})
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NewProductID derives a catalog id from the product name and creation time,
// e.g. "Layer Mash" at 1700000000000ms becomes "layer-mash-1700000000000".
func NewProductID(name string, at time.Time) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
	return slug + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}

// ProductInput is the admin payload for a new catalog product.
type ProductInput struct {
	Name              string          `json:"name" validate:"required"`
	Emoji             string          `json:"emoji"`
	Price             decimal.Decimal `json:"price" validate:"gte=0"`
	Description       string          `json:"description" validate:"required"`
	Color             string          `json:"color"`
	LongDescription   string          `json:"longDescription"`
	Weight            string          `json:"weight"`
	Ingredients       []string        `json:"ingredients"`
	Category          Category        `json:"category" validate:"required,oneof=Feed Supplements Equipment Treats"`
	Stock             int             `json:"stock" validate:"gte=0"`
	IsManuallyPopular bool            `json:"isManuallyPopular"`
	Image             string          `json:"image"`
}

// ToProduct builds the catalog record; id, sales count and date are
// assigned by the store.
func (in *ProductInput) ToProduct() Product {
	return Product{
		Name:              in.Name,
		Emoji:             in.Emoji,
		Price:             in.Price,
		Description:       in.Description,
		Color:             in.Color,
		LongDescription:   in.LongDescription,
		Weight:            in.Weight,
		Ingredients:       cleanIngredients(in.Ingredients),
		Category:          in.Category,
		Stock:             in.Stock,
		IsManuallyPopular: in.IsManuallyPopular,
		Image:             in.Image,
	}
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name              *string          `json:"name" validate:"omitempty,min=1"`
	Emoji             *string          `json:"emoji"`
	Price             *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Description       *string          `json:"description"`
	Color             *string          `json:"color"`
	LongDescription   *string          `json:"longDescription"`
	Weight            *string          `json:"weight"`
	Ingredients       []string         `json:"ingredients"`
	Category          *Category        `json:"category" validate:"omitempty,oneof=Feed Supplements Equipment Treats"`
	Stock             *int             `json:"stock" validate:"omitempty,gte=0"`
	IsManuallyPopular *bool            `json:"isManuallyPopular"`
	Image             *string          `json:"image"`
}

// Apply merges the patch into p.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Emoji != nil {
		p.Emoji = *patch.Emoji
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.LongDescription != nil {
		p.LongDescription = *patch.LongDescription
	}
	if patch.Weight != nil {
		p.Weight = *patch.Weight
	}
	if patch.Ingredients != nil {
		p.Ingredients = cleanIngredients(patch.Ingredients)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.IsManuallyPopular != nil {
		p.IsManuallyPopular = *patch.IsManuallyPopular
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
}

// cleanIngredients trims entries and drops blanks, as the admin form does
// with its comma separated list.
func cleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ingredient := range in {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
