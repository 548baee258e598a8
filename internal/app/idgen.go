package app

import "github.com/google/uuid"

// Entity-type id prefixes. New-entity ids carry the tag of their kind,
// matching the persisted data produced by earlier versions of the
// application.
const (
	idPrefixUser          = "u"
	idPrefixPost          = "p"
	idPrefixComment       = "c"
	idPrefixGlobalMessage = "gm"
	idPrefixMessage       = "m"
	idPrefixScripture     = "s"
)

// IDGenerator generates unique entity ids.
// Implemented by UUIDGenerator (production) and
// testutil.CountingIDGenerator (tests).
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator generates time-sortable UUIDv7 entity ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so ids sort by
// creation time while remaining collision-free under rapid successive
// creation - unlike ids derived from a coarse clock reading alone.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// NewID returns "<prefix>_<uuidv7>".
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "_" + uuid.Must(uuid.NewV7()).String()
}
