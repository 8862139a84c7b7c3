package identifier

import "github.com/google/uuid"

// New returns an entity identifier of the form "<prefix>_<uuid>". UUIDs keep
// identifiers unique regardless of how often entities are created.
func New(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
