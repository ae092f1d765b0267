package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh document id in ObjectID hex form. The same id format
// is used by every storage driver so ids stay portable between them.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether s looks like an id produced by NewID.
func ValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}
