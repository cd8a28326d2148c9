package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // user permission level

const (
	RoleClient  UserRole = "client"  // regular buyer
	RoleArtisan UserRole = "artisan" // seller of handcrafted products
	RoleAdmin   UserRole = "admin"   // administrator
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Surname      string         `gorm:"not null" json:"surname"`
	ProfileImage string         `json:"profile_image"`
	Address      string         `json:"address"`
	Role         UserRole       `gorm:"type:varchar(20);default:'client'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:ArtisanID" json:"products,omitempty"` // catalog of an artisan
	Orders   []Order   `gorm:"foreignKey:ClientID" json:"orders,omitempty"`    // purchase history of a client
}

func (User) TableName() string {
	return "users"
}

// IsArtisan reports whether the user can sell products
func (u *User) IsArtisan() bool {
	return u.Role == RoleArtisan
}

// IsAdmin reports whether the user has administrator rights
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
