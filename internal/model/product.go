package model

import (
	"time"

	"gorm.io/gorm"
)

// Availability is the stock state shown on the storefront.
type Availability string

const (
	InStock    Availability = "In Stock"
	OutOfStock Availability = "Out of Stock"
)

// Valid reports whether a is a known availability value.
func (a Availability) Valid() bool {
	return a == InStock || a == OutOfStock
}

// ProductImages groups the image urls of a product.
type ProductImages struct {
	Thumbnail   string   `json:"thumbnail" bson:"thumbnail"`
	Gallery     []string `json:"gallery" bson:"gallery"`
	DetailImage string   `json:"detailImage" bson:"detailImage"`
}

// Specifications holds free-form physical attributes.
type Specifications struct {
	Material string `json:"material" bson:"material"`
	Height   string `json:"height" bson:"height"`
	Width    string `json:"width" bson:"width"`
	Weight   string `json:"weight" bson:"weight"`
	Color    string `json:"color" bson:"color"`
	Capacity string `json:"capacity" bson:"capacity"`
}

// Product is a catalog entry.
type Product struct {
	ID               string         `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	Name             string         `json:"name" bson:"name" gorm:"size:255;not null"`
	Category         string         `json:"category" bson:"category" gorm:"size:120;not null;index"`
	Price            float64        `json:"price" bson:"price" gorm:"not null"`
	Rating           float64        `json:"rating" bson:"rating"`
	Description      string         `json:"description" bson:"description" gorm:"type:text"`
	ShortDescription string         `json:"shortDescription" bson:"shortDescription" gorm:"size:512"`
	Images           ProductImages  `json:"images" bson:"images" gorm:"type:json;serializer:json"`
	Specifications   Specifications `json:"specifications" bson:"specifications" gorm:"type:json;serializer:json"`
	Availability     Availability   `json:"availability" bson:"availability" gorm:"size:20;default:'In Stock'"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets the id before inserting the row.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
