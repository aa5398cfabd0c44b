// Package id provides entity identifiers. All records use UUIDv7 so
// primary keys sort by creation time.
package id

import "github.com/google/uuid"

// ID is the identifier type used across all entities.
type ID = uuid.UUID

// New generates a time-ordered UUIDv7. The embedded timestamp gives
// chronological ordering and good B-tree locality in PostgreSQL.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v7
}

// Parse converts a string to an ID, validating the format.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse panics on invalid input. For constants and tests only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether the ID is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
