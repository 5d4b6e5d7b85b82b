package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductStore defines the persistence operations the catalog depends on.
type ProductStore interface {
	// FindAll returns every product ordered by ID.
	FindAll(ctx context.Context) ([]models.Product, error)
	// FindByID reports found=false with a nil error when no product has the given ID.
	FindByID(ctx context.Context, id uint) (*models.Product, bool, error)
	// Save inserts the product when its ID is zero and upserts it otherwise.
	// The assigned ID is written back into product.
	Save(ctx context.Context, product *models.Product) error
	// DeleteByID removes the product. Deleting a missing product is a no-op.
	DeleteByID(ctx context.Context, id uint) error
}
