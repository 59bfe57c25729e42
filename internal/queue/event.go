// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

// Event kinds published by the domain services.
const (
	KindShowBooked     = "show.booked"     // a show was successfully created
	KindVenueListed    = "venue.listed"    // a venue was created
	KindVenueDelisted  = "venue.delisted"  // a venue and its shows were deleted
	KindArtistListed   = "artist.listed"   // an artist was created
	KindArtistDelisted = "artist.delisted" // an artist and its shows were deleted
)

// Event is the single payload shape carried on the booking queue. It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database. Fields that do
// not apply to a given kind are left at their zero value and omitted.
type Event struct {
	Kind       string `json:"kind"`
	EntityType string `json:"entity_type,omitempty"` // "venue" or "artist" for listed/delisted kinds
	EntityID   int64  `json:"entity_id,omitempty"`
	Name       string `json:"name,omitempty"`
	ShowID     int64  `json:"show_id,omitempty"`
	VenueID    int64  `json:"venue_id,omitempty"`
	ArtistID   int64  `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
