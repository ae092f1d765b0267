package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the coarse authorization tag of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User represents a registered storefront account.
type User struct {
	ID           string    `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	Fullname     string    `json:"fullname" bson:"fullname" gorm:"size:255;not null"`
	Email        string    `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" bson:"password" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" bson:"role" gorm:"size:20;not null;default:'customer'"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets the id before inserting the row.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the slice of a user attached to orders in admin listings.
type UserSummary struct {
	Fullname string `json:"fullName"`
	Email    string `json:"email"`
}
