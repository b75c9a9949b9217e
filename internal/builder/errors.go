package builder

import "errors"

// ErrGuildUnavailable indicates that the target guild could not be resolved,
// so no mutation was attempted.
var ErrGuildUnavailable = errors.New("guild is no longer reachable")
