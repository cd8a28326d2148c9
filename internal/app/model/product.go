package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/pkg/util"
)

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Discount    *float64       `json:"discount,omitempty"` // percentage, nil or 0 means full price
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	ArtisanID   uint           `gorm:"not null;index" json:"artisan_id"`
	ImageURL    string         `json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Artisan    User        `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem  `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the unit price with the product's discount applied
func (p *Product) EffectivePrice() float64 {
	return util.EffectivePrice(p.Price, p.Discount)
}
