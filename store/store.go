package store

import (
	"context"

	"github.com/google/uuid"

	"poshop/models"
)

// ProductStore is the catalog. SKU uniqueness (case-insensitive, SKUs are
// stored upper-cased) is enforced on create and update.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id uuid.UUID, upd models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Product, error)
	// ListInStock returns products with stock > 0, sorted by name, for the POS
	// search screen.
	ListInStock(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// DecrementStock subtracts qty only if at least qty units remain at write
	// time. It returns false when the product is missing or stock is too low,
	// so two racing sales can never both drain the same units.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	// IncrementStock adds qty back; used to compensate a partially applied sale.
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

// SaleStore is append-only: sales are created and read, never mutated.
type SaleStore interface {
	Create(ctx context.Context, s *models.Sale) error
	List(ctx context.Context) ([]models.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
