package kedge

import "errors"

// Static errors for the route tree's narrow failure surface. Add is the
// only operation in the core that can fail; Dispatch never errors, a miss
// is always encoded as a return value, never an error (see Tree.Dispatch).
var (
	// ErrMalformedPattern is returned by Tree.Add and Table.Add when a
	// pattern does not begin with "/".
	ErrMalformedPattern = errors.New("kedge: pattern must start with '/'")
)
