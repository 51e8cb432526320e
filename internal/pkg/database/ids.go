package database

import (
	"fmt"

	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID decodes a hex ObjectID. Malformed ids cannot name a stored record,
// so they are reported as not found.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", hex, apperrors.ErrNotFound)
	}
	return id, nil
}
