package memory

import (
	"github.com/google/uuid"
	"github.com/shopfront-dev/shopfront/internal/domain"
)

// newOrderReference mints the public order correlation ID.
func newOrderReference() string { return uuid.NewString() }

func ptr(v float64) *float64 { return &v }

// seed loads the canonical fallback catalog: 3 categories, 6 products
// (4 featured), 3 testimonials. The migration routine copies exactly this
// data into the relational tables, so the literals here are load-bearing for
// the backend-swap tests.
func (s *Store) seed() {
	categories := []domain.Category{
		{Name: "Home & Living", Description: "Furniture, decor and everyday essentials", ImageURL: "https://images.shopfront.dev/categories/home-living.jpg"},
		{Name: "Electronics", Description: "Audio, smart home and personal tech", ImageURL: "https://images.shopfront.dev/categories/electronics.jpg"},
		{Name: "Accessories", Description: "Bags, wallets and carry goods", ImageURL: "https://images.shopfront.dev/categories/accessories.jpg"},
	}
	for _, c := range categories {
		s.nextCategoryID++
		c.ID = s.nextCategoryID
		s.categories[c.ID] = c
	}

	products := []domain.Product{
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
			IsNewArrival: true,
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
	for _, p := range products {
		s.nextProductID++
		p.ID = s.nextProductID
		s.products[p.ID] = p
	}

	testimonials := []domain.Testimonial{
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
	for _, tm := range testimonials {
		s.nextTestimonialID++
		tm.ID = s.nextTestimonialID
		s.testimonials[tm.ID] = tm
	}
}
