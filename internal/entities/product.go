package entities

import "time"

type ProductCategory string

const (
	CategoryLaptops     ProductCategory = "laptops"
	CategoryPhones      ProductCategory = "phones"
	CategoryAudio       ProductCategory = "audio"
	CategoryAccessories ProductCategory = "accessories"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ProductCategory `gorm:"index;size:50" json:"category"`
	PriceCents  int64           `json:"price_cents"`
	InStock     bool            `gorm:"index" json:"in_stock"`
	ImageURL    string          `gorm:"size:500" json:"image_url,omitempty"`
	Rating      float64         `json:"rating"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
