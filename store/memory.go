package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"poshop/models"
)

// In-memory implementations of the store interfaces, used by tests. They keep
// the same contracts as the Postgres ones: case-insensitive SKU uniqueness,
// conditional decrement, append-only sales.

type MemoryProductStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[uuid.UUID]models.Product)}
}

func (s *MemoryProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.SKU == models.NormalizeSKU(p.SKU) {
			return models.ErrSKUExists
		}
	}
	s.products[p.ID] = *p
	return nil
}

func (s *MemoryProductStore) Update(_ context.Context, id uuid.UUID, upd models.ProductUpdate) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	if err := upd.Apply(&p); err != nil {
		return nil, err
	}
	for otherID, existing := range s.products {
		if otherID != id && existing.SKU == p.SKU {
			return nil, models.ErrSKUExists
		}
	}
	s.products[id] = p
	return &p, nil
}

func (s *MemoryProductStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProductStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryProductStore) ListInStock(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.Stock > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}

func (s *MemoryProductStore) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	return &p, nil
}

func (s *MemoryProductStore) DecrementStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	s.products[id] = p
	return true, nil
}

func (s *MemoryProductStore) IncrementStock(_ context.Context, id uuid.UUID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return &models.NotFoundError{Kind: "product", ID: id.String()}
	}
	p.Stock += qty
	s.products[id] = p
	return nil
}

type MemorySaleStore struct {
	mu    sync.Mutex
	sales []models.Sale
}

func NewMemorySaleStore() *MemorySaleStore {
	return &MemorySaleStore{}
}

func (s *MemorySaleStore) Create(_ context.Context, sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sale
	stored.Items = append([]models.SaleItem(nil), sale.Items...)
	s.sales = append(s.sales, stored)
	return nil
}

func (s *MemorySaleStore) List(_ context.Context) ([]models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemorySaleStore) GetByID(_ context.Context, id uuid.UUID) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			found := sale
			found.Items = append([]models.SaleItem(nil), sale.Items...)
			return &found, nil
		}
	}
	return nil, &models.NotFoundError{Kind: "sale", ID: id.String()}
}

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return models.ErrEmailExists
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, &models.NotFoundError{Kind: "user", ID: email}
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: "user", ID: id.String()}
	}
	return &u, nil
}
