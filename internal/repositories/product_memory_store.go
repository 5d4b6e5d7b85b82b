package repositories

import (
	"context"
	"sort"
	"sync"

	"catalog/internal/models"
)

// MemoryProductStore is an in-memory implementation of ProductStore.
type MemoryProductStore struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMemoryProductStore creates a new instance of MemoryProductStore.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// FindAll returns all products ordered by ID.
func (s *MemoryProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	productList := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// FindByID returns a product by its ID.
func (s *MemoryProductStore) FindByID(_ context.Context, id uint) (*models.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, false, nil
	}
	return &product, true, nil
}

// Save inserts or replaces a product.
func (s *MemoryProductStore) Save(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == 0 {
		product.ID = s.nextID
	}
	if product.ID >= s.nextID {
		s.nextID = product.ID + 1
	}
	s.products[product.ID] = *product
	return nil
}

// DeleteByID removes a product by its ID.
func (s *MemoryProductStore) DeleteByID(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, id)
	return nil
}
