package model

// Artist represents a performer who plays shows.  It corresponds to a row
// in the `artists` table.  Like Venue, it holds no show collections and no
// stored show counts; both are derived from the `shows` table on read.
//
// Fields:
//  ID                 – primary key identifier, assigned by the database.
//  Name               – display name of the artist (required).
//  City, State        – where the artist is based.
//  Phone              – contact phone number.
//  Genres             – ordered list of genres the artist performs.
//  ImageLink          – URL of a promotional image.
//  FacebookLink       – URL of the artist's Facebook page.
//  WebsiteLink        – URL of the artist's own site.
//  SeekingVenue       – true when the artist is looking for venues to play.
//  SeekingDescription – free-text blurb shown when SeekingVenue is set.
type Artist struct {
	ID                 int64  `json:"id"`                  // artists.id
	Name               string `json:"name"`                // artists.name
	City               string `json:"city"`                // artists.city
	State              string `json:"state"`               // artists.state
	Phone              string `json:"phone"`               // artists.phone
	Genres             Genres `json:"genres"`              // artists.genres (comma-joined in the DB)
	ImageLink          string `json:"image_link"`          // artists.image_link
	FacebookLink       string `json:"facebook_link"`       // artists.facebook_link
	WebsiteLink        string `json:"website_link"`        // artists.website_link
	SeekingVenue       bool   `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string `json:"seeking_description"` // artists.seeking_description
}
