package model

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is a known status. Any valid status may follow any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a priced snapshot of a product at purchase time.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// ShippingDetails is where an order goes.
type ShippingDetails struct {
	FullName string `json:"fullName" bson:"fullName" validate:"required"`
	Email    string `json:"email" bson:"email" validate:"required,email"`
	Phone    string `json:"phone" bson:"phone" validate:"required"`
	City     string `json:"city" bson:"city" validate:"required"`
	Address  string `json:"address" bson:"address" validate:"required"`
}

// Order is a placed order. Guest orders have no UserID.
type Order struct {
	ID              string          `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	UserID          *string         `json:"userId,omitempty" bson:"userId,omitempty" gorm:"type:char(24);index"`
	Items           []OrderItem     `json:"items" bson:"items" gorm:"type:json;serializer:json"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice" gorm:"not null"`
	ShippingDetails ShippingDetails `json:"shippingDetails" bson:"shippingDetails" gorm:"type:json;serializer:json"`
	Status          OrderStatus     `json:"status" bson:"status" gorm:"size:20;not null;default:'Pending'"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets the id before inserting the row.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = NewID()
	}
	return nil
}

// OwnedBy reports whether the order was placed by userID.
func (o *Order) OwnedBy(userID string) bool {
	return o.UserID != nil && userID != "" && *o.UserID == userID
}

// OrderWithUser is an order joined with its buyer for admin listings.
type OrderWithUser struct {
	Order
	User *UserSummary `json:"user,omitempty"`
}
