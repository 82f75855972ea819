package pos_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poshop/models"
	"poshop/pos"
	"poshop/store"
)

type testEnv struct {
	products *store.MemoryProductStore
	sales    *store.MemorySaleStore
	users    *store.MemoryUserStore
	user     *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		products: store.NewMemoryProductStore(),
		sales:    store.NewMemorySaleStore(),
		users:    store.NewMemoryUserStore(),
	}
	user, err := models.NewUser("cashier@example.com", "hash", models.RoleEmployee)
	require.NoError(t, err)
	require.NoError(t, env.users.Create(context.Background(), user))
	env.user = user
	return env
}

func (e *testEnv) processor() *pos.Processor {
	return pos.NewProcessor(e.products, e.sales, e.users)
}

func (e *testEnv) addProduct(t *testing.T, name, sku, price string, stock int) *models.Product {
	t.Helper()
	p, err := models.NewProduct(name, sku, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *testEnv) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := e.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (e *testEnv) saleCount(t *testing.T) int {
	t.Helper()
	sales, err := e.sales.List(context.Background())
	require.NoError(t, err)
	return len(sales)
}

func TestProcessRecordsSaleAndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)

	sale, err := env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{{ProductID: product.ID, Quantity: 3}})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("150.00")),
		"totalAmount = %s", sale.TotalAmount)
	require.Len(t, sale.Items, 1)
	item := sale.Items[0]
	assert.Equal(t, "Widget", item.ProductName)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, item.Subtotal.Equal(item.Price.Mul(decimal.NewFromInt(3))))
	assert.Equal(t, env.user.ID, sale.SoldBy)
	assert.Equal(t, "cashier@example.com", sale.SoldByName)
	assert.False(t, sale.CreatedAt.IsZero())

	assert.Equal(t, 7, env.stockOf(t, product.ID))

	persisted, err := env.sales.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, persisted.TotalAmount.Equal(sale.TotalAmount))
	assert.Equal(t, 1, env.saleCount(t))
}

func TestProcessTotalSumsMultipleItems(t *testing.T) {
	env := newTestEnv(t)
	a := env.addProduct(t, "Widget", "SKU-A", "50.00", 10)
	b := env.addProduct(t, "Gadget", "SKU-B", "19.99", 5)

	sale, err := env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		})
	require.NoError(t, err)

	// 2*50.00 + 3*19.99
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("159.97")),
		"totalAmount = %s", sale.TotalAmount)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "Widget", sale.Items[0].ProductName, "input order preserved")
	assert.Equal(t, "Gadget", sale.Items[1].ProductName)
	assert.Equal(t, 8, env.stockOf(t, a.ID))
	assert.Equal(t, 2, env.stockOf(t, b.ID))
}

func TestProcessRejectsEmptyAndNonPositive(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)

	_, err := env.processor().Process(context.Background(), env.user.ID, nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{{ProductID: product.ID, Quantity: 0}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{{ProductID: product.ID, Quantity: -2}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	assert.Equal(t, 10, env.stockOf(t, product.ID))
	assert.Equal(t, 0, env.saleCount(t))
}

func TestProcessUnknownProductFailsWithoutSideEffects(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)
	missing := uuid.New()

	_, err := env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: missing, Quantity: 1},
		})

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing.String(), notFound.ID)

	assert.Equal(t, 10, env.stockOf(t, product.ID))
	assert.Equal(t, 0, env.saleCount(t))
}

func TestProcessUnknownUserFails(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)

	_, err := env.processor().Process(context.Background(), uuid.New(),
		[]models.CartItem{{ProductID: product.ID, Quantity: 1}})

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 10, env.stockOf(t, product.ID))
	assert.Equal(t, 0, env.saleCount(t))
}

func TestProcessInsufficientStockIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	a := env.addProduct(t, "Widget", "SKU-A", "50.00", 10)
	b := env.addProduct(t, "Gadget", "SKU-B", "19.99", 3)

	_, err := env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 5},
		})

	var insufficient *models.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Gadget", insufficient.ProductName)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)

	// nothing in the batch was applied
	assert.Equal(t, 10, env.stockOf(t, a.ID))
	assert.Equal(t, 3, env.stockOf(t, b.ID))
	assert.Equal(t, 0, env.saleCount(t))
}

// denyingProductStore passes the validation read but refuses the write-time
// decrement for one product, imitating a concurrent sale draining the shelf
// between the two steps.
type denyingProductStore struct {
	*store.MemoryProductStore
	denyID uuid.UUID
}

func (d *denyingProductStore) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if id == d.denyID {
		return false, nil
	}
	return d.MemoryProductStore.DecrementStock(ctx, id, qty)
}

func TestProcessCompensatesWhenDecrementLosesRace(t *testing.T) {
	env := newTestEnv(t)
	a := env.addProduct(t, "Widget", "SKU-A", "50.00", 10)
	b := env.addProduct(t, "Gadget", "SKU-B", "19.99", 5)

	processor := pos.NewProcessor(
		&denyingProductStore{MemoryProductStore: env.products, denyID: b.ID},
		env.sales, env.users)

	_, err := processor.Process(context.Background(), env.user.ID,
		[]models.CartItem{
			{ProductID: a.ID, Quantity: 4},
			{ProductID: b.ID, Quantity: 2},
		})

	var insufficient *models.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Gadget", insufficient.ProductName)

	// the decrement already applied to Widget was rolled back
	assert.Equal(t, 10, env.stockOf(t, a.ID))
	assert.Equal(t, 5, env.stockOf(t, b.ID))
	assert.Equal(t, 0, env.saleCount(t))
}

type failingSaleStore struct {
	*store.MemorySaleStore
}

func (f *failingSaleStore) Create(context.Context, *models.Sale) error {
	return errors.New("disk full")
}

func TestProcessRestoresStockWhenSalePersistFails(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)

	processor := pos.NewProcessor(env.products,
		&failingSaleStore{MemorySaleStore: env.sales}, env.users)

	_, err := processor.Process(context.Background(), env.user.ID,
		[]models.CartItem{{ProductID: product.ID, Quantity: 3}})
	require.Error(t, err)

	assert.Equal(t, 10, env.stockOf(t, product.ID))
	assert.Equal(t, 0, env.saleCount(t))
}

func TestProcessSnapshotsSurviveCatalogEdits(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)

	sale, err := env.processor().Process(context.Background(), env.user.ID,
		[]models.CartItem{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)

	newName := "Widget Deluxe"
	newPrice := decimal.RequireFromString("99.99")
	_, err = env.products.Update(context.Background(), product.ID,
		models.ProductUpdate{Name: &newName, Price: &newPrice})
	require.NoError(t, err)
	require.NoError(t, env.products.Delete(context.Background(), product.ID))

	persisted, err := env.sales.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "Widget", persisted.Items[0].ProductName)
	assert.True(t, persisted.Items[0].Price.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, persisted.TotalAmount.Equal(decimal.RequireFromString("100.00")))
}

func TestProcessConcurrentSalesNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	product := env.addProduct(t, "Widget", "ABC123", "50.00", 10)
	processor := env.processor()

	// two racing qty-6 sales against stock 10: exactly one may win
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = processor.Process(context.Background(), env.user.ID,
				[]models.CartItem{{ProductID: product.ID, Quantity: 6}})
		}(i)
	}
	wg.Wait()

	var successes, stockFailures int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var insufficient *models.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		stockFailures++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 4, env.stockOf(t, product.ID))
	assert.Equal(t, 1, env.saleCount(t))
}
