package layout

import "github.com/google/uuid"

// NewID mints a fresh opaque identifier for a seat or table. Identifiers are
// collision-resistant so copies, pastes and grid generation can mint freely
// without consulting the existing collection.
func NewID() string {
	return uuid.NewString()
}
