package entities

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidRecordID = errors.New("invalid record id")

// ParseRecordID validates the structural form of a record identifier (a
// 24-character hex object id) before any store lookup happens. Every
// endpoint that takes an id goes through here.
func ParseRecordID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidRecordID
	}
	return id, nil
}
