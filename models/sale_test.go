package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poshop/models"
)

func TestNewSaleItemComputesSubtotal(t *testing.T) {
	item, err := models.NewSaleItem(uuid.New(), "Widget", 3, decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	assert.True(t, item.Subtotal.Equal(decimal.RequireFromString("150.00")),
		"subtotal = %s", item.Subtotal)
}

func TestNewSaleItemValidation(t *testing.T) {
	price := decimal.RequireFromString("1.00")

	_, err := models.NewSaleItem(uuid.Nil, "Widget", 1, price)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = models.NewSaleItem(uuid.New(), "", 1, price)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = models.NewSaleItem(uuid.New(), "Widget", 0, price)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = models.NewSaleItem(uuid.New(), "Widget", 1, decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestNewSaleTotalsItems(t *testing.T) {
	a, err := models.NewSaleItem(uuid.New(), "Widget", 2, decimal.RequireFromString("50.00"))
	require.NoError(t, err)
	b, err := models.NewSaleItem(uuid.New(), "Gadget", 3, decimal.RequireFromString("19.99"))
	require.NoError(t, err)

	sale, err := models.NewSale([]models.SaleItem{*a, *b}, uuid.New(), "cashier@example.com")
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("159.97")),
		"totalAmount = %s", sale.TotalAmount)
	assert.False(t, sale.CreatedAt.IsZero())
}

func TestNewSaleValidation(t *testing.T) {
	item, err := models.NewSaleItem(uuid.New(), "Widget", 1, decimal.RequireFromString("1.00"))
	require.NoError(t, err)

	_, err = models.NewSale(nil, uuid.New(), "cashier@example.com")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = models.NewSale([]models.SaleItem{*item}, uuid.Nil, "cashier@example.com")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = models.NewSale([]models.SaleItem{*item}, uuid.New(), "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
