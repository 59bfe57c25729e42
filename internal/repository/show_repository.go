// This file defines repository methods for show rows. Shows live in a
// single table regardless of whether they have already happened; the
// past/upcoming distinction is computed by the callers from start_time,
// so every listing query simply returns rows in start order and every
// count query takes the caller's clock reading as a parameter.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/showbill/showbill/internal/model"
)

// showListingCols selects show rows joined with the display fields of
// their venue and artist. Joins happen here, at read time; show rows
// store foreign keys only.
const showListingCols = `s.id, s.venue_id, s.artist_id, s.start_time,
		v.name, v.image_link, a.name, a.image_link
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ShowRepo encapsulates all database queries related to shows.
type ShowRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewShowRepo constructs a ShowRepo with the provided DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show. Referential integrity of venue_id and
// artist_id is enforced by the foreign-key constraints; the domain
// service additionally resolves both ids beforehand to report which one
// is missing.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// GetByID fetches a show by its ID. It returns ErrShowNotFound if no row
// is found.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	const q = `SELECT id, venue_id, artist_id, start_time FROM shows WHERE id = ?`
	var s model.Show
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every show with venue and artist names joined in,
// ordered by start time then id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT ` + showListingCols + ` ORDER BY s.start_time, s.id`
	return r.queryListings(ctx, q)
}

// ListByVenue returns every show hosted by the given venue, ordered by
// start time then id.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.ShowListing, error) {
	const q = `SELECT ` + showListingCols + ` WHERE s.venue_id = ? ORDER BY s.start_time, s.id`
	return r.queryListings(ctx, q, venueID)
}

// ListByArtist returns every show played by the given artist, ordered by
// start time then id.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.ShowListing, error) {
	const q = `SELECT ` + showListingCols + ` WHERE s.artist_id = ? ORDER BY s.start_time, s.id`
	return r.queryListings(ctx, q, artistID)
}

func (r *ShowRepo) queryListings(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ShowListing
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(&l.ID, &l.VenueID, &l.ArtistID, &l.StartTime,
			&l.VenueName, &l.VenueImageLink, &l.ArtistName, &l.ArtistImageLink); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountUpcomingByVenue returns the number of shows at the venue whose
// start time is at or after now. The count is always computed from live
// rows; no stored counter exists to go stale.
func (r *ShowRepo) CountUpcomingByVenue(ctx context.Context, venueID int64, now time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE venue_id = ? AND start_time >= ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, venueID, now).Scan(&n)
	return n, err
}

// CountUpcomingByArtist returns the number of shows by the artist whose
// start time is at or after now.
func (r *ShowRepo) CountUpcomingByArtist(ctx context.Context, artistID int64, now time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE artist_id = ? AND start_time >= ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, artistID, now).Scan(&n)
	return n, err
}

// UpcomingCountsByVenue returns upcoming-show counts grouped by venue in
// a single query. Venues with no upcoming shows are absent from the map.
func (r *ShowRepo) UpcomingCountsByVenue(ctx context.Context, now time.Time) (map[int64]int, error) {
	const q = `SELECT venue_id, COUNT(*) FROM shows WHERE start_time >= ? GROUP BY venue_id`
	return r.queryCounts(ctx, q, now)
}

// UpcomingCountsByArtist returns upcoming-show counts grouped by artist
// in a single query.
func (r *ShowRepo) UpcomingCountsByArtist(ctx context.Context, now time.Time) (map[int64]int, error) {
	const q = `SELECT artist_id, COUNT(*) FROM shows WHERE start_time >= ? GROUP BY artist_id`
	return r.queryCounts(ctx, q, now)
}

func (r *ShowRepo) queryCounts(ctx context.Context, q string, args ...any) (map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
