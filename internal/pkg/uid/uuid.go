// Package uid produces opaque string identifiers, mainly the correlation IDs
// attached to requests that arrive without one.
package uid

import "github.com/google/uuid"

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// UUID yields time-ordered v7 UUIDs so IDs logged close together also sort
// close together. When the v7 source fails it degrades to a random v4.
type UUID struct {
	v7 func() (uuid.UUID, error)
}

func NewUUID() *UUID {
	return &UUID{v7: uuid.NewV7}
}

func (u *UUID) Generate() string {
	if id, err := u.v7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
