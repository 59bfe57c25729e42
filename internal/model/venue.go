package model

// Venue represents a place that hosts shows.  It corresponds to a row in
// the `venues` table.  Show collections and show counts are intentionally
// absent: shows reference a venue by foreign key only and are fetched with
// an explicit query, and the counts are computed from the live show rows
// at read time rather than maintained as stored columns.
//
// Fields:
//  ID                 – primary key identifier, assigned by the database.
//  Name               – display name of the venue (required).
//  City, State        – location of the venue.
//  Address            – street address.
//  Phone              – contact phone number.
//  Genres             – ordered list of genres the venue books.
//  ImageLink          – URL of a promotional image.
//  FacebookLink       – URL of the venue's Facebook page.
//  Website            – URL of the venue's own site.
//  SeekingTalent      – true when the venue is looking for artists to book.
//  SeekingDescription – free-text blurb shown when SeekingTalent is set.
type Venue struct {
	ID                 int64  `json:"id"`                  // venues.id
	Name               string `json:"name"`                // venues.name
	City               string `json:"city"`                // venues.city
	State              string `json:"state"`               // venues.state
	Address            string `json:"address"`             // venues.address
	Phone              string `json:"phone"`               // venues.phone
	Genres             Genres `json:"genres"`              // venues.genres (comma-joined in the DB)
	ImageLink          string `json:"image_link"`          // venues.image_link
	FacebookLink       string `json:"facebook_link"`       // venues.facebook_link
	Website            string `json:"website"`             // venues.website
	SeekingTalent      bool   `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string `json:"seeking_description"` // venues.seeking_description
}
