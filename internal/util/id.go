// Package util provides identifier helpers for fridgely.
package util

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a new UUIDv7 identifier. UUIDv7 values sort by creation
// time, which keeps catalog primary keys append-only in the B-tree.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the random source is broken.
		return uuid.New().String()
	}
	return id.String()
}

// ParseID validates a UUID string and returns its canonical form.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
