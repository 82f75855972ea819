package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"poshop/models"
)

type ProductPostgres struct {
	pool *pgxpool.Pool
}

func NewProductPostgres(pool *pgxpool.Pool) *ProductPostgres {
	return &ProductPostgres{pool: pool}
}

const productColumns = `id, name, sku, price, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	var id string
	if err := row.Scan(&id, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id in database: %w", err)
	}
	p.ID = parsed
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *ProductPostgres) Create(ctx context.Context, p *models.Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (id, name, sku, price, stock, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID.String(), p.Name, p.SKU, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return models.ErrSKUExists
	}
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (s *ProductPostgres) Update(ctx context.Context, id uuid.UUID, upd models.ProductUpdate) (*models.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := upd.Apply(p); err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE products SET name=$1, sku=$2, price=$3, stock=$4, updated_at=$5 WHERE id=$6`,
		p.Name, p.SKU, p.Price, p.Stock, p.UpdatedAt, id.String(),
	)
	if isUniqueViolation(err) {
		return nil, models.ErrSKUExists
	}
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	return p, nil
}

func (s *ProductPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id.String())
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	return nil
}

func (s *ProductPostgres) List(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (s *ProductPostgres) ListInStock(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock > 0 ORDER BY name ASC`)
}

func (s *ProductPostgres) queryProducts(ctx context.Context, query string) ([]models.Product, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *ProductPostgres) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id.String())
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductPostgres) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`,
		qty, id.String(),
	)
	if err != nil {
		return false, fmt.Errorf("decrementing stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *ProductPostgres) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2`,
		qty, id.String(),
	)
	if err != nil {
		return fmt.Errorf("incrementing stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	return nil
}
