// Package service implements the domain layer between the HTTP handlers
// and the repositories: form decoding and validation, the error taxonomy,
// transactional create/update/delete semantics and the derived
// past/upcoming classification of shows.
//
// Every store-layer failure is caught here and translated into one of the
// error types below; raw database errors never cross into the handler
// layer.
package service

import (
	"errors"
	"fmt"
)

// Entity names used in the error taxonomy and in user-facing messages.
const (
	EntityVenue  = "venue"
	EntityArtist = "artist"
	EntityShow   = "show"
)

// ErrStoreUnavailable is returned when a store call exceeds its bounded
// timeout or the store cannot be reached at all. Requests fail fast with
// this error instead of hanging.
var ErrStoreUnavailable = errors.New("store unavailable")

// NotFoundError reports that an id resolved to no entity of the given
// type. Handlers translate it into an HTTP 404.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError reports a rejected form field. Handlers translate it
// into an HTTP 422.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// CreateError reports a failed create after the transaction was rolled
// back. Name carries the submitted display name so the handler can build
// the user-facing message.
type CreateError struct {
	Entity string
	Name   string
	Err    error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create %s %q: %v", e.Entity, e.Name, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// UpdateError reports a failed full-record update after rollback.
type UpdateError struct {
	Entity string
	ID     int64
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s %d: %v", e.Entity, e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// DeleteError reports a failed cascade delete after rollback.
type DeleteError struct {
	Entity string
	ID     int64
	Err    error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s %d: %v", e.Entity, e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
