package model

import "time"

// Show statuses.  A show's status is a pure function of its start time
// relative to "now"; nothing is ever written when a show crosses the
// boundary.
const (
	ShowScheduled = "scheduled" // start_time is in the future
	ShowElapsed   = "elapsed"   // start_time has passed
)

// Show represents a scheduled appearance of one artist at one venue at a
// given time.  It corresponds to a row in the `shows` table.  A show holds
// foreign keys only; the venue and artist records are reached with an
// explicit lookup, never through an embedded object graph.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – shows.venue_id, required foreign key to venues.id.
//  ArtistID  – shows.artist_id, required foreign key to artists.id.
//  StartTime – when the show starts.
type Show struct {
	ID        int64     `json:"id"`         // shows.id
	VenueID   int64     `json:"venue_id"`   // shows.venue_id
	ArtistID  int64     `json:"artist_id"`  // shows.artist_id
	StartTime time.Time `json:"start_time"` // shows.start_time
}

// Status classifies the show against the supplied clock reading.  A show
// that starts exactly at now is still scheduled.
func (s Show) Status(now time.Time) string {
	if s.StartTime.Before(now) {
		return ShowElapsed
	}
	return ShowScheduled
}

// Upcoming reports whether the show has not yet started as of now.
func (s Show) Upcoming(now time.Time) bool {
	return !s.StartTime.Before(now)
}

// ShowListing is a show row joined with the display fields of its venue
// and artist.  Repositories produce it for the shows page and for the
// per-entity detail pages; the join happens in SQL at read time.
type ShowListing struct {
	Show
	VenueName       string `json:"venue_name"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	VenueImageLink  string `json:"venue_image_link"`
}
