package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalid           = errors.New("invalid product")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Brand       string `json:"brand,omitempty"`
	// NUMERIC in Postgres; decimal keeps rupee amounts exact
	Price      decimal.Decimal `json:"price"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	TotalStock int             `json:"totalStock"`
	Rating     float64         `json:"rating"`
	Reviews    int             `json:"reviews"`
	Featured   bool            `json:"featured"`
	Image      string          `json:"image,omitempty"`
	Weight     string          `json:"weight,omitempty"`
	Origin     string          `json:"origin,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EffectivePrice is the sale price when the product is discounted, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() && p.SalePrice.LessThanOrEqual(p.Price) {
		return p.SalePrice
	}
	return p.Price
}

func (p Product) InStock() bool { return p.TotalStock > 0 }

// Validate checks the catalog invariants enforced on every write.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return wrapInvalid("name is required")
	case !p.Price.IsPositive():
		return wrapInvalid("price must be positive")
	case p.SalePrice.IsNegative():
		return wrapInvalid("salePrice must be non-negative")
	case p.SalePrice.GreaterThan(p.Price):
		return wrapInvalid("salePrice must not exceed price")
	case p.TotalStock < 0:
		return wrapInvalid("totalStock must be non-negative")
	case p.Rating < 0 || p.Rating > 5:
		return wrapInvalid("rating must be between 0 and 5")
	case p.Reviews < 0:
		return wrapInvalid("reviews must be non-negative")
	}
	return nil
}

func wrapInvalid(msg string) error { return fmt.Errorf("%w: %s", ErrInvalid, msg) }

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// sort applied
	SortBy string `json:"sortBy,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// total items matching before pagination
	Total int `json:"total"`
	Items []Product `json:"items"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string          `json:"name"        example:"Cold Pressed Coconut Oil"`
	Description string          `json:"description" example:"Wood-pressed, unrefined"`
	Category    string          `json:"category"    example:"Oils"`
	Type        string          `json:"type"        example:"Coconut oil"`
	Brand       string          `json:"brand"       example:"Sri Raja"`
	Price       decimal.Decimal `json:"price"       swaggertype:"string" example:"450"`
	SalePrice   decimal.Decimal `json:"salePrice"   swaggertype:"string" example:"380"`
	TotalStock  int             `json:"totalStock"  example:"50"`
	Featured    bool            `json:"featured"`
	Image       string          `json:"image"`
	Weight      string          `json:"weight"      example:"500ml"`
	Origin      string          `json:"origin"      example:"Kerala, India"`
}

func (r CreateProductRequest) Product() Product {
	return Product{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		Brand:       r.Brand,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
		TotalStock:  r.TotalStock,
		Featured:    r.Featured,
		Image:       r.Image,
		Weight:      r.Weight,
		Origin:      r.Origin,
	}
}

// UpdateProductRequest payload of partial update. Nil fields are left untouched.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Type        *string          `json:"type"`
	Brand       *string          `json:"brand"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
	SalePrice   *decimal.Decimal `json:"salePrice" swaggertype:"string"`
	TotalStock  *int             `json:"totalStock"`
	Featured    *bool            `json:"featured"`
}

// Apply merges the non-nil fields into p.
func (r UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Type != nil {
		p.Type = *r.Type
	}
	if r.Brand != nil {
		p.Brand = *r.Brand
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	if r.TotalStock != nil {
		p.TotalStock = *r.TotalStock
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
}
