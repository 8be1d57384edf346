package state

import (
	"fmt"

	"github.com/google/uuid"
)

// IDProvider generates identifiers for records created during dispatch.
type IDProvider interface {
	NewID() (string, error)
}

// UUIDProvider issues time-ordered UUIDv7 identifiers.
type UUIDProvider struct{}

// NewID returns a fresh UUIDv7 string.
func (UUIDProvider) NewID() (string, error) {
	generatedID, uuidError := uuid.NewV7()
	if uuidError != nil {
		return "", fmt.Errorf("generate uuid v7: %w", uuidError)
	}
	return generatedID.String(), nil
}
