package model

import (
	"time"

	"gorm.io/gorm"
)

type IssueStatus string // issue handling status

const (
	IssueStatusOpen     IssueStatus = "open"     // reported, not yet handled
	IssueStatusResolved IssueStatus = "resolved" // handled by an admin
	IssueStatusRejected IssueStatus = "rejected" // dismissed by an admin
)

// Issue is a problem report filed by a client about an order. Reference
// is a public identifier the client can quote in support conversations.
type Issue struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Reference   string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	OrderID     *uint          `gorm:"index" json:"order_id,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Status      IssueStatus    `gorm:"type:varchar(20);default:'open'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (Issue) TableName() string {
	return "issues"
}
