package domain

import "errors"

// Common validation errors for catalog entities.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")
	ErrMissingCategory = errors.New("categoryId is required")
	ErrMissingProduct  = errors.New("productId is required")
	ErrEmptyComment    = errors.New("comment cannot be empty")
)

// Category groups products for browsing. Products reference it by CategoryID.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// InsertCategory is the payload for creating a category.
type InsertCategory struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"    validate:"omitempty,url"`
}

// Validate checks the payload.
func (in *InsertCategory) Validate() error {
	if in.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// Product is a catalog entry. The merchandising flags (IsFeatured,
// IsBestSeller, IsNewArrival) are independent; a product may carry any
// combination of them. OriginalPrice, when set, is the pre-discount price
// shown struck through next to Price.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Tagline       string   `json:"tagline"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	ImageURL      string   `json:"imageUrl"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	CategoryID    int64    `json:"categoryId"`
	IsFeatured    bool     `json:"isFeatured"`
	IsBestSeller  bool     `json:"isBestSeller"`
	IsNewArrival  bool     `json:"isNewArrival"`
}

// InsertProduct is the payload for creating a product.
type InsertProduct struct {
	Name          string   `json:"name"          validate:"required"`
	Tagline       string   `json:"tagline"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"         validate:"gte=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	ImageURL      string   `json:"imageUrl"      validate:"omitempty,url"`
	Rating        float64  `json:"rating"        validate:"gte=0,lte=5"`
	ReviewCount   int      `json:"reviewCount"   validate:"gte=0"`
	CategoryID    int64    `json:"categoryId"    validate:"required,gt=0"`
	IsFeatured    bool     `json:"isFeatured"`
	IsBestSeller  bool     `json:"isBestSeller"`
	IsNewArrival  bool     `json:"isNewArrival"`
}

// Validate checks the payload.
func (in *InsertProduct) Validate() error {
	if in.Name == "" {
		return ErrEmptyName
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Rating < 0 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if in.CategoryID <= 0 {
		return ErrMissingCategory
	}
	return nil
}

// Review is a per-product customer review.
type Review struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"productId"`
	UserName     string `json:"userName"`
	UserImageURL string `json:"userImageUrl"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	IsVerified   bool   `json:"isVerified"`
}

// InsertReview is the payload for creating a review.
type InsertReview struct {
	ProductID    int64  `json:"productId"    validate:"required,gt=0"`
	UserName     string `json:"userName"     validate:"required"`
	UserImageURL string `json:"userImageUrl" validate:"omitempty,url"`
	Rating       int    `json:"rating"       validate:"gte=0,lte=5"`
	Comment      string `json:"comment"      validate:"required"`
	IsVerified   bool   `json:"isVerified"`
}

// Validate checks the payload.
func (in *InsertReview) Validate() error {
	if in.ProductID <= 0 {
		return ErrMissingProduct
	}
	if in.UserName == "" {
		return ErrEmptyName
	}
	if in.Rating < 0 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if in.Comment == "" {
		return ErrEmptyComment
	}
	return nil
}

// Testimonial is sitewide social proof, not tied to a product.
type Testimonial struct {
	ID           int64  `json:"id"`
	UserName     string `json:"userName"`
	UserImageURL string `json:"userImageUrl"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	IsVerified   bool   `json:"isVerified"`
}

// InsertTestimonial is the payload for creating a testimonial.
type InsertTestimonial struct {
	UserName     string `json:"userName"     validate:"required"`
	UserImageURL string `json:"userImageUrl" validate:"omitempty,url"`
	Rating       int    `json:"rating"       validate:"gte=0,lte=5"`
	Comment      string `json:"comment"      validate:"required"`
	IsVerified   bool   `json:"isVerified"`
}

// Validate checks the payload.
func (in *InsertTestimonial) Validate() error {
	if in.UserName == "" {
		return ErrEmptyName
	}
	if in.Rating < 0 || in.Rating > 5 {
		return ErrInvalidRating
	}
	if in.Comment == "" {
		return ErrEmptyComment
	}
	return nil
}
