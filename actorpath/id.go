package actorpath

import "github.com/google/uuid"

// ID identifies one node of the supervision tree.
type ID struct {
	inner uuid.UUID
}

// NewID returns a fresh random ID.
func NewID() ID {
	return ID{inner: uuid.New()}
}

// String returns the canonical textual form of the ID.
func (id ID) String() string {
	return id.inner.String()
}
