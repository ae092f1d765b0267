package model

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        string    `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	FullName  string    `json:"fullName" bson:"fullName" gorm:"size:255;not null"`
	Email     string    `json:"email" bson:"email" gorm:"size:255;not null"`
	Subject   string    `json:"subject" bson:"subject" gorm:"size:255;not null"`
	Message   string    `json:"message" bson:"message" gorm:"type:text;not null"`
	CreatedBy *string   `json:"createdBy,omitempty" bson:"createdBy,omitempty" gorm:"type:char(24);index"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets the id before inserting the row.
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}
