package models

// Product represents a catalog product as stored in the database.
// A zero ID means the product has not been persisted yet.
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Description string  `gorm:"type:varchar(500)"`
	Price       float64 `gorm:"not null;default:0"`
	Quantity    int     `gorm:"not null;default:0"`
}
