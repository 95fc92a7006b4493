package repositories

import "errors"

// ErrNotFound indicates no document matched the given identity or
// filter. Callers match it with errors.Is instead of depending on
// driver error values.
var ErrNotFound = errors.New("repositories: not found")
