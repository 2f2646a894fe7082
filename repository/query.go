package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ntu-info/emogo-backend-chaudharyinder/constant"
)

// listFilter matches everything unless an exact mood is given.
func listFilter(mood string) bson.M {
	if mood == "" {
		return bson.M{}
	}
	return bson.M{"mood": mood}
}

// timestampSort sorts on the raw timestamp string, newest first. The field
// is never parsed at sort time, so ordering is lexical; chronological only
// when all values share a fixed-width ISO-8601 form.
func timestampSort() bson.D {
	return bson.D{{Key: "timestamp", Value: -1}}
}

// videolessFilter matches records whose vlog_file is missing, null, empty,
// or still the never-customized placeholder.
func videolessFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"vlog_file": bson.M{"$exists": false}},
		bson.M{"vlog_file": nil},
		bson.M{"vlog_file": ""},
		bson.M{"vlog_file": constant.DefaultVlogFile},
	}}
}
