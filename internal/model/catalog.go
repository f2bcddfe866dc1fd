package model

import "github.com/shopspring/decimal"

// DefaultCatalog returns the built-in catalog used when no saved products
// exist. Every call builds fresh records.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:              "chicken-feed",
			Name:            "Chicken Feed",
			Emoji:           "🐓",
			Price:           decimal.RequireFromString("24.99"),
			Description:     "Premium layer pellets for healthy, happy hens",
			Color:           "bg-farm-gold/40",
			LongDescription: "Our premium chicken feed is specially formulated to provide complete nutrition for laying hens. Rich in calcium for strong eggshells and packed with essential vitamins.",
			Weight:          "25 kg",
			Ingredients:     []string{"Corn", "Soybean Meal", "Wheat", "Calcium Carbonate", "Vitamins A, D, E"},
			SalesCount:      45,
			Category:        CategoryFeed,
			Stock:           150,
			DateAdded:       "2024-01-15",
		},
		{
			ID:                "cattle-mix",
			Name:              "Cattle Mix",
			Emoji:             "🐄",
			Price:             decimal.RequireFromString("45.99"),
			Description:       "High-protein blend for beef & dairy cattle",
			Color:             "bg-farm-green/30",
			LongDescription:   "A scientifically balanced feed for optimal cattle growth and milk production. Contains high-quality proteins and essential minerals for healthy livestock.",
			Weight:            "50 kg",
			Ingredients:       []string{"Alfalfa", "Corn Gluten", "Molasses", "Salt", "Phosphorus", "Trace Minerals"},
			SalesCount:        32,
			IsManuallyPopular: true,
			Category:          CategoryFeed,
			Stock:             89,
			DateAdded:         "2024-01-16",
		},
		{
			ID:              "pig-pellets",
			Name:            "Pig Pellets",
			Emoji:           "🐷",
			Price:           decimal.RequireFromString("32.99"),
			Description:     "Balanced nutrition for growing swine",
			Color:           "bg-accent/30",
			LongDescription: "Complete feed for pigs at all growth stages. Promotes lean muscle development and healthy weight gain with optimized protein levels.",
			Weight:          "40 kg",
			Ingredients:     []string{"Barley", "Wheat Middlings", "Fish Meal", "Lysine", "Methionine"},
			SalesCount:      28,
			Category:        CategoryFeed,
			Stock:           67,
			DateAdded:       "2024-01-17",
		},
		{
			ID:              "horse-oats",
			Name:            "Horse Oats",
			Emoji:           "🐴",
			Price:           decimal.RequireFromString("38.99"),
			Description:     "Premium whole oats for equine excellence",
			Color:           "bg-secondary/40",
			LongDescription: "Pure, clean whole oats perfect for horses of all ages. Provides sustained energy for work and performance horses.",
			Weight:          "30 kg",
			Ingredients:     []string{"Whole Oats", "Flaxseed", "Beet Pulp", "Vitamin E", "Selenium"},
			SalesCount:      19,
			Category:        CategoryFeed,
			Stock:           43,
			DateAdded:       "2024-01-18",
		},
		{
			ID:              "sheep-feed",
			Name:            "Sheep Feed",
			Emoji:           "🐑",
			Price:           decimal.RequireFromString("28.99"),
			Description:     "Complete nutrition for wool & meat production",
			Color:           "bg-farm-sky/30",
			LongDescription: "Specially designed for sheep health and wool quality. Contains copper-controlled formula safe for all sheep breeds.",
			Weight:          "25 kg",
			Ingredients:     []string{"Timothy Hay", "Oats", "Barley", "Zinc", "Cobalt", "Iodine"},
			SalesCount:      23,
			Category:        CategoryFeed,
			Stock:           78,
			DateAdded:       "2024-01-19",
		},
		{
			ID:              "goat-mix",
			Name:            "Goat Mix",
			Emoji:           "🐐",
			Price:           decimal.RequireFromString("26.99"),
			Description:     "All-purpose feed for dairy & meat goats",
			Color:           "bg-farm-brown/20",
			LongDescription: "Versatile feed suitable for dairy does and meat goats. Supports milk production and healthy kid development.",
			Weight:          "25 kg",
			Ingredients:     []string{"Alfalfa Pellets", "Corn", "Oats", "Copper", "Selenium", "Vitamin B12"},
			SalesCount:      31,
			Category:        CategoryFeed,
			Stock:           92,
			DateAdded:       "2024-01-20",
		},
	}
}
