package hosted

import (
	"encoding/json"
	"time"

	"github.com/shopfront-dev/shopfront/internal/domain"
)

// The hosted service exposes raw table rows, so its JSON uses the schema's
// snake_case column names rather than the domain model's camelCase. Each row
// type below is the wire shape for one table plus its domain conversion.

type userRow struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		Name:      r.Name,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

type categoryRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (r categoryRow) toDomain() domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

type productRow struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Tagline       string   `json:"tagline"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	ImageURL      string   `json:"image_url"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	CategoryID    int64    `json:"category_id"`
	IsFeatured    bool     `json:"is_featured"`
	IsBestSeller  bool     `json:"is_best_seller"`
	IsNewArrival  bool     `json:"is_new_arrival"`
}

func (r productRow) toDomain() domain.Product {
	return domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Tagline:       r.Tagline,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		ImageURL:      r.ImageURL,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		CategoryID:    r.CategoryID,
		IsFeatured:    r.IsFeatured,
		IsBestSeller:  r.IsBestSeller,
		IsNewArrival:  r.IsNewArrival,
	}
}

type reviewRow struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	UserName     string `json:"user_name"`
	UserImageURL string `json:"user_image_url"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	IsVerified   bool   `json:"is_verified"`
}

func (r reviewRow) toDomain() domain.Review {
	return domain.Review{
		ID:           r.ID,
		ProductID:    r.ProductID,
		UserName:     r.UserName,
		UserImageURL: r.UserImageURL,
		Rating:       r.Rating,
		Comment:      r.Comment,
		IsVerified:   r.IsVerified,
	}
}

type testimonialRow struct {
	ID           int64  `json:"id"`
	UserName     string `json:"user_name"`
	UserImageURL string `json:"user_image_url"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	IsVerified   bool   `json:"is_verified"`
}

func (r testimonialRow) toDomain() domain.Testimonial {
	return domain.Testimonial{
		ID:           r.ID,
		UserName:     r.UserName,
		UserImageURL: r.UserImageURL,
		Rating:       r.Rating,
		Comment:      r.Comment,
		IsVerified:   r.IsVerified,
	}
}

type cartItemRow struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func (r cartItemRow) toDomain() domain.CartItem {
	return domain.CartItem{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		AddedAt:   r.AddedAt,
	}
}

type orderRow struct {
	ID              int64           `json:"id"`
	Reference       string          `json:"reference"`
	UserID          int64           `json:"user_id"`
	Items           json.RawMessage `json:"items"`
	Status          string          `json:"status"`
	TotalAmount     float64         `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:              r.ID,
		Reference:       r.Reference,
		UserID:          r.UserID,
		Items:           r.Items,
		Status:          r.Status,
		TotalAmount:     r.TotalAmount,
		ShippingAddress: r.ShippingAddress,
		CreatedAt:       r.CreatedAt,
	}
}
