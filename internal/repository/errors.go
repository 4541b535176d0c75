// Package repository implements account persistence over the document
// store interface. Sentinel errors defined here let higher layers
// distinguish failure scenarios with errors.Is without depending on
// store internals: ErrNotFound stands for absence, ErrEmailExists for
// a unique-email violation. Transient store faults pass through as
// store.ErrUnavailable and are never collapsed into absence.
package repository

import "errors"

// ErrNotFound is returned when no account matches the given id or
// email. Handlers translate it into an HTTP 404 where exposing
// absence is acceptable.
var ErrNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert or update would leave two
// accounts with the same email. The unique index on the collection is
// the source of truth; this error surfaces both the pre-check hit and
// the store-level violation. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
