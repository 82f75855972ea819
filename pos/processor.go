// Package pos implements the sale transaction: validate a cart against the
// catalog, snapshot prices, persist an immutable sale and decrement stock.
// This is the only code path besides admin edits that mutates stock, and the
// only place a Product and a Sale must change together.
package pos

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"poshop/models"
	"poshop/store"
)

type Processor struct {
	products store.ProductStore
	sales    store.SaleStore
	users    store.UserStore
}

func NewProcessor(products store.ProductStore, sales store.SaleStore, users store.UserStore) *Processor {
	return &Processor{products: products, sales: sales, users: users}
}

// Process runs one checkout. Items are validated in input order; product name
// and price are snapshotted at validation time so later catalog edits never
// touch the recorded sale. Stock is taken with a conditional decrement that
// re-checks availability at write time, and any decrements already applied are
// re-incremented if a later item or the sale insert fails. Either the whole
// sale lands or nothing changes.
func (p *Processor) Process(ctx context.Context, userID uuid.UUID, cart []models.CartItem) (*models.Sale, error) {
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: items array is required", models.ErrInvalidInput)
	}
	for _, entry := range cart {
		if entry.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than 0", models.ErrInvalidInput)
		}
	}

	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.SaleItem, 0, len(cart))
	for _, entry := range cart {
		product, err := p.products.GetByID(ctx, entry.ProductID)
		if err != nil {
			return nil, err
		}
		if entry.Quantity > product.Stock {
			return nil, &models.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   entry.Quantity,
			}
		}
		item, err := models.NewSaleItem(product.ID, product.Name, entry.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	// The pre-check above reads a snapshot; a concurrent sale may have drained
	// the product since. The decrement re-checks stock in the same statement,
	// so at most one of two racing sales gets the last units.
	applied := make([]models.CartItem, 0, len(cart))
	for i, entry := range cart {
		ok, err := p.products.DecrementStock(ctx, entry.ProductID, entry.Quantity)
		if err != nil {
			p.compensate(ctx, applied)
			return nil, fmt.Errorf("decrementing stock for %s: %w", items[i].ProductName, err)
		}
		if !ok {
			p.compensate(ctx, applied)
			available := 0
			if product, err := p.products.GetByID(ctx, entry.ProductID); err == nil {
				available = product.Stock
			}
			return nil, &models.InsufficientStockError{
				ProductName: items[i].ProductName,
				Available:   available,
				Requested:   entry.Quantity,
			}
		}
		applied = append(applied, entry)
	}

	sale, err := models.NewSale(items, user.ID, user.Email)
	if err != nil {
		p.compensate(ctx, applied)
		return nil, err
	}

	if err := p.sales.Create(ctx, sale); err != nil {
		log.Printf("CRITICAL: stock decremented but sale %s was not persisted: %v", sale.ID, err)
		p.compensate(ctx, applied)
		return nil, fmt.Errorf("saving sale (stock restored): %w", err)
	}

	return sale, nil
}

// compensate re-increments stock for the decrements already applied to a sale
// that failed partway. A failed re-increment is logged for manual follow-up;
// the remaining entries are still compensated.
func (p *Processor) compensate(ctx context.Context, applied []models.CartItem) {
	for _, entry := range applied {
		if err := p.products.IncrementStock(ctx, entry.ProductID, entry.Quantity); err != nil {
			log.Printf("CRITICAL: failed to restore stock for product %s (+%d): %v",
				entry.ProductID, entry.Quantity, err)
		}
	}
}
