package handlers

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errInvalidID is returned when a path parameter is not a valid ObjectID.
var errInvalidID = errors.New("invalid id")

// parseObjectID validates and decodes an externally supplied identifier.
// It must run before any store lookup so malformed input never reaches the
// database as a query.
func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errInvalidID
	}
	return id, nil
}
