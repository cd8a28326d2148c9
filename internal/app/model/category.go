package model

import (
	"time"

	"gorm.io/gorm"
)

// Category is a node of the category tree. DadID points to the parent
// category; a nil DadID marks a root category. The tree shape is enforced
// at write time: a category can never be its own parent and re-parenting
// that would create a cycle is rejected by the service layer.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	DadID     *uint          `gorm:"column:dad_id;index" json:"dad_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Dad      *Category  `gorm:"foreignKey:DadID" json:"-"`
	Children []Category `gorm:"foreignKey:DadID" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryNode is a category with its subtree and aggregate product count,
// built by the category service when returning the full tree.
type CategoryNode struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	DadID        *uint           `json:"dad_id,omitempty"`
	ProductCount int64           `json:"product_count"` // products in this category and all descendants
	Children     []*CategoryNode `json:"children"`
}
