// Package dto holds the external representation of catalog products and the
// copy functions between it and the stored entity.
package dto

import "catalog/internal/models"

// ProductView is the product shape exposed to callers.
type ProductView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// ToProduct copies a view into a new entity.
func ToProduct(v ProductView) models.Product {
	return models.Product{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Quantity:    v.Quantity,
	}
}

// FromProduct copies an entity into a new view.
func FromProduct(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
}

// FromProducts converts a list of entities. The result is never nil.
func FromProducts(products []models.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = FromProduct(p)
	}
	return views
}
