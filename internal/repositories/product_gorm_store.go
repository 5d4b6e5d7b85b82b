package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductStore is a GORM implementation of ProductStore.
type GORMProductStore struct {
	db *gorm.DB
}

// NewGORMProductStore creates a new instance of GORMProductStore.
func NewGORMProductStore(db *gorm.DB) *GORMProductStore {
	return &GORMProductStore{
		db: db,
	}
}

// FindAll retrieves all products from the database.
func (s *GORMProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID from the database.
func (s *GORMProductStore) FindByID(ctx context.Context, id uint) (*models.Product, bool, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, true, nil
}

// Save writes all fields of the product. GORM falls back to an insert when
// an update with a non-zero ID matches no row.
func (s *GORMProductStore) Save(ctx context.Context, product *models.Product) error {
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// DeleteByID deletes a product by its ID from the database.
func (s *GORMProductStore) DeleteByID(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
