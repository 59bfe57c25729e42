// Package repository contains data access logic separated from HTTP
// handlers and domain services. This file defines sentinel error values
// that are reused across multiple repositories. These values allow higher
// layers to distinguish "row does not exist" from genuine database
// failures without inspecting driver-specific errors. Each not-found
// sentinel maps to exactly one table.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue id resolves to no row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id resolves to no row.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when a show id resolves to no row.
var ErrShowNotFound = errors.New("show not found")
