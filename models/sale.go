package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is one line of a sale. ProductName and Price are copied from the
// product at the moment of sale so historical receipts stay accurate even if
// the product is later renamed, repriced or deleted.
type SaleItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func NewSaleItem(productID uuid.UUID, productName string, quantity int, price decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product_id is required", ErrInvalidInput)
	}
	if productName == "" {
		return nil, fmt.Errorf("%w: product_name is required", ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidInput)
	}
	if price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be greater than or equal to 0", ErrInvalidInput)
	}

	return &SaleItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Subtotal:    price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Sale is an immutable record of a completed transaction. No update or delete
// path exists anywhere in the codebase.
type Sale struct {
	ID          uuid.UUID       `json:"id"`
	Items       []SaleItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SoldBy      uuid.UUID       `json:"sold_by"`
	SoldByName  string          `json:"sold_by_name"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewSale(items []SaleItem, soldBy uuid.UUID, soldByName string) (*Sale, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: sale must have at least one item", ErrInvalidInput)
	}
	if soldBy == uuid.Nil {
		return nil, fmt.Errorf("%w: sold_by is required", ErrInvalidInput)
	}
	if soldByName == "" {
		return nil, fmt.Errorf("%w: sold_by_name is required", ErrInvalidInput)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	return &Sale{
		ID:          uuid.New(),
		Items:       items,
		TotalAmount: total,
		SoldBy:      soldBy,
		SoldByName:  soldByName,
		CreatedAt:   time.Now(),
	}, nil
}

// CartItem is what the POS client submits: a product reference and a count.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}
