package entities

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is one mood submission. The document id is generated by the store
// on insert and serialized to clients as its 24-hex string form (ObjectID's
// own JSON marshalling), under the _id key the dashboard keys on.
type Record struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Mood      string             `json:"mood" bson:"mood"`
	Latitude  float64            `json:"latitude" bson:"latitude"`
	Longitude float64            `json:"longitude" bson:"longitude"`
	Timestamp string             `json:"timestamp" bson:"timestamp"`
	VlogFile  string             `json:"vlog_file" bson:"vlog_file"`
	Note      *string            `json:"note" bson:"note"`
}

func (Record) CollectionName() string {
	return "records"
}
