package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one line of the shopping cart. The unit price is copied from
// the product when the line is created.
type CartItem struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID      uint      `gorm:"uniqueIndex" json:"product_id"`
	ProductName    string    `gorm:"size:200" json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	AddedAt        time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate assigns a UUID key to new lines.
func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SubtotalCents returns the line price.
func (c CartItem) SubtotalCents() int64 {
	return c.UnitPriceCents * int64(c.Quantity)
}
