// Package access holds the ownership guard applied before any task read or write.
package access

import (
	"github.com/google/uuid"

	"todo-api/domain/models"
)

// Authorize allows the call only when the caller owns the resource.
// There are no roles and no delegation.
func Authorize(callerID, ownerID uuid.UUID) error {
	if callerID == uuid.Nil || callerID != ownerID {
		return models.ErrForbidden
	}
	return nil
}

// AuthorizeRaw is Authorize for an owner ID taken from a path segment.
// A segment that is not a UUID never matches.
func AuthorizeRaw(callerID uuid.UUID, rawOwnerID string) (uuid.UUID, error) {
	ownerID, err := uuid.Parse(rawOwnerID)
	if err != nil {
		return uuid.Nil, models.ErrForbidden
	}
	if err := Authorize(callerID, ownerID); err != nil {
		return uuid.Nil, err
	}
	return ownerID, nil
}
