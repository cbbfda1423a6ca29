package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// NewID returns a fresh 24 character hex object id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether s is a well formed object id.
func IsValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// Base carries the id and timestamps shared by every record.
type Base struct {
	ID        string    `json:"_id" gorm:"type:char(24);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an object id before inserting the record.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}
