package postgres

import "github.com/shopfront-dev/shopfront/internal/domain"

func ptr(v float64) *float64 { return &v }

// Relational seed set. Semantically parallel to the in-memory catalog (same
// three category names) but not literal-identical: this set flags 5 of its 6
// products as featured, which the storefront's homepage expects when served
// from a database.
var seedCategories = []domain.InsertCategory{
	{Name: "Home & Living", Description: "Furniture, decor and everyday essentials", ImageURL: "https://images.shopfront.dev/categories/home-living.jpg"},
	{Name: "Electronics", Description: "Audio, smart home and personal tech", ImageURL: "https://images.shopfront.dev/categories/electronics.jpg"},
	{Name: "Accessories", Description: "Bags, wallets and carry goods", ImageURL: "https://images.shopfront.dev/categories/accessories.jpg"},
}

var seedProducts = []domain.InsertProduct{
	{
		Name: "Aurora Table Lamp", Tagline: "Warm light, walnut base",
		Description: "A dimmable table lamp with a hand-finished walnut base and linen shade.",
		Price:       89.00, OriginalPrice: ptr(119.00),
		ImageURL: "https://images.shopfront.dev/products/aurora-lamp.jpg",
		Rating:   4.8, ReviewCount: 124, CategoryID: 1,
		IsFeatured: true, IsBestSeller: true,
	},
	{
		Name: "Linen Throw Blanket", Tagline: "Stonewashed, all seasons",
		Description: "100% European flax linen, stonewashed for softness.",
		Price:       64.50,
		ImageURL:    "https://images.shopfront.dev/products/linen-throw.jpg",
		Rating:      4.6, ReviewCount: 87, CategoryID: 1,
		IsFeatured: true, IsNewArrival: true,
	},
	{
		Name: "Drift Wireless Speaker", Tagline: "Room-filling sound, pocket size",
		Description: "A compact Bluetooth speaker with 20 hours of battery life.",
		Price:       129.99, OriginalPrice: ptr(159.99),
		ImageURL: "https://images.shopfront.dev/products/drift-speaker.jpg",
		Rating:   4.7, ReviewCount: 203, CategoryID: 2,
		IsFeatured: true, IsBestSeller: true,
	},
	{
		Name: "Halo Smart Thermostat", Tagline: "Comfort that learns",
		Description: "Self-programming thermostat with energy usage reports.",
		Price:       179.00,
		ImageURL:    "https://images.shopfront.dev/products/halo-thermostat.jpg",
		Rating:      4.4, ReviewCount: 56, CategoryID: 2,
		IsFeatured: true, IsNewArrival: true,
	},
	{
		Name: "Voyager Canvas Tote", Tagline: "Carries the week",
		Description: "Waxed canvas tote with leather handles and a laptop sleeve.",
		Price:       72.00,
		ImageURL:    "https://images.shopfront.dev/products/voyager-tote.jpg",
		Rating:      4.9, ReviewCount: 311, CategoryID: 3,
		IsFeatured: true, IsBestSeller: true,
	},
	{
		Name: "Meridian Card Wallet", Tagline: "Slim by design",
		Description: "Full-grain leather wallet that holds eight cards flat.",
		Price:       38.00, OriginalPrice: ptr(45.00),
		ImageURL: "https://images.shopfront.dev/products/meridian-wallet.jpg",
		Rating:   4.5, ReviewCount: 142, CategoryID: 3,
		IsNewArrival: true,
	},
}

var seedTestimonials = []domain.InsertTestimonial{
	{
		UserName: "Maya R.", UserImageURL: "https://images.shopfront.dev/avatars/maya.jpg",
		Rating: 5, Comment: "Ordered on Monday, unpacked on Wednesday. The lamp is even better in person.",
		IsVerified: true,
	},
	{
		UserName: "Jonas K.", UserImageURL: "https://images.shopfront.dev/avatars/jonas.jpg",
		Rating: 5, Comment: "Customer support swapped a damaged speaker within a week, no questions asked.",
		IsVerified: true,
	},
	{
		UserName: "Priya S.", UserImageURL: "https://images.shopfront.dev/avatars/priya.jpg",
		Rating: 4, Comment: "The tote replaced my commuter backpack. Wish it came in more colors.",
	},
}
