package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID yields canonical lower-case version 4 UUID text.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
