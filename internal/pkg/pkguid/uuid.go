package pkguid

import "github.com/google/uuid"

// UUID generates time-ordered (v7) UUID strings for sessions, images,
// datasets and events.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new v7 UUID, or a random v4 if the v7 source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
