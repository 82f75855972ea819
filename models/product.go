package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NormalizeSKU upper-cases an SKU so uniqueness is case-insensitive.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func NewProduct(name, sku string, price decimal.Decimal, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = NormalizeSKU(sku)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrInvalidInput)
	}
	if price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be greater than or equal to 0", ErrInvalidInput)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be greater than or equal to 0", ErrInvalidInput)
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New(),
		Name:      name,
		SKU:       sku,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ProductUpdate holds a partial edit; nil fields are left untouched.
type ProductUpdate struct {
	Name  *string          `json:"name"`
	SKU   *string          `json:"sku"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"`
}

// Apply mutates p with the non-nil fields of the update after validating them.
func (u ProductUpdate) Apply(p *Product) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		p.Name = name
	}
	if u.SKU != nil {
		sku := NormalizeSKU(*u.SKU)
		if sku == "" {
			return fmt.Errorf("%w: sku is required", ErrInvalidInput)
		}
		p.SKU = sku
	}
	if u.Price != nil {
		if u.Price.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: price must be greater than or equal to 0", ErrInvalidInput)
		}
		p.Price = *u.Price
	}
	if u.Stock != nil {
		if *u.Stock < 0 {
			return fmt.Errorf("%w: stock must be greater than or equal to 0", ErrInvalidInput)
		}
		p.Stock = *u.Stock
	}
	p.UpdatedAt = time.Now()
	return nil
}
