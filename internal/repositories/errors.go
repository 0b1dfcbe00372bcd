package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Malformed ids
// fall under it as well: an id that matches no row is simply not found.
var ErrNotFound = errors.New("record not found")
