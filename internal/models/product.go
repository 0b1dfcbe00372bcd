package models

import "time"

// UserRef is a display-friendly reference to the user who created a
// product (id, name and email only).
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product represents an item tracked by the inventory system.
//
// Quantity and MinStock default to zero, so a product without an
// explicit minimum stock threshold is never reported as low.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(200)" validate:"required"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	Price       float64   `json:"price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	MinStock    int       `json:"minStock" validate:"gte=0"`
	SKU         string    `json:"sku" gorm:"type:varchar(100)"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	CreatedBy   string    `json:"-" gorm:"type:varchar(36);index"`
	Creator     *UserRef  `json:"createdBy,omitempty" gorm:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
