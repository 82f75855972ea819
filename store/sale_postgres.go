package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"poshop/models"
)

type SalePostgres struct {
	pool *pgxpool.Pool
}

func NewSalePostgres(pool *pgxpool.Pool) *SalePostgres {
	return &SalePostgres{pool: pool}
}

// Create inserts the sale and its items in one transaction. Item position is
// stored so the input order of the cart survives a round trip.
func (s *SalePostgres) Create(ctx context.Context, sale *models.Sale) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (id, total_amount, sold_by, sold_by_name, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sale.ID.String(), sale.TotalAmount, sale.SoldBy.String(), sale.SoldByName, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	for i, item := range sale.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO sale_items (sale_id, position, product_id, product_name, quantity, price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID.String(), i, item.ProductID.String(), item.ProductName, item.Quantity, item.Price, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("inserting sale item %s: %w", item.ProductName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing sale: %w", err)
	}
	return nil
}

func (s *SalePostgres) List(ctx context.Context) ([]models.Sale, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, total_amount, sold_by, sold_by_name, created_at
		 FROM sales ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sales {
		items, err := s.loadItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

func (s *SalePostgres) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, total_amount, sold_by, sold_by_name, created_at
		 FROM sales WHERE id=$1`, id.String())
	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "sale", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func scanSale(row pgx.Row) (*models.Sale, error) {
	var sale models.Sale
	var id, soldBy string
	if err := row.Scan(&id, &sale.TotalAmount, &soldBy, &sale.SoldByName, &sale.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if sale.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid sale id in database: %w", err)
	}
	if sale.SoldBy, err = uuid.Parse(soldBy); err != nil {
		return nil, fmt.Errorf("invalid sold_by in database: %w", err)
	}
	return &sale, nil
}

func (s *SalePostgres) loadItems(ctx context.Context, saleID uuid.UUID) ([]models.SaleItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, product_name, quantity, price, subtotal
		 FROM sale_items WHERE sale_id=$1 ORDER BY position ASC`, saleID.String())
	if err != nil {
		return nil, fmt.Errorf("querying sale items: %w", err)
	}
	defer rows.Close()

	var items []models.SaleItem
	for rows.Next() {
		var item models.SaleItem
		var productID string
		if err := rows.Scan(&productID, &item.ProductName, &item.Quantity, &item.Price, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}
		if item.ProductID, err = uuid.Parse(productID); err != nil {
			return nil, fmt.Errorf("invalid product_id in database: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
