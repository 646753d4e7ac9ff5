// Package uuid wraps github.com/google/uuid and defaults to version 7
// (time-ordered) identifiers.
package uuid

import "github.com/google/uuid"

// UUID is github.com/google/uuid.UUID.
type UUID = uuid.UUID

// New returns a new UUIDv7. Panics if UUID generation fails.
func New() UUID {
	uuidv7, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return uuidv7
}
