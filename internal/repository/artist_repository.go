// This file defines repository methods for CRUD and lookup operations on
// artists. The shape mirrors the venue repository: artists own the show
// rows that reference them only for cascade-delete purposes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/showbill/showbill/internal/model"
)

const artistCols = `id, name, city, state, phone, genres,
	image_link, facebook_link, website_link, seeking_venue, seeking_description`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(row interface{ Scan(...any) error }) (*model.Artist, error) {
	var a model.Artist
	var genres string
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres,
		&a.ImageLink, &a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue, &a.SeekingDescription); err != nil {
		return nil, err
	}
	a.Genres = model.SplitGenres(genres)
	return &a, nil
}

// Create inserts a new artist. On success the artist's ID field is
// populated with the auto-generated value.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, genres,
		image_link, facebook_link, website_link, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres.Join(),
		a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// GetByID fetches an artist by its ID. It returns ErrArtistNotFound if
// no row is found.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	const q = `SELECT ` + artistCols + ` FROM artists WHERE id = ?`
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*model.Artist, error) {
	const q = `SELECT ` + artistCols + ` FROM artists ORDER BY id`
	return r.queryArtists(ctx, q)
}

// SearchByName returns every artist whose name contains term as a
// case-insensitive substring, ordered by id. An empty term matches all
// artists.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]*model.Artist, error) {
	const q = `SELECT ` + artistCols + ` FROM artists WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.queryArtists(ctx, q, "%"+strings.ToLower(term)+"%")
}

func (r *ArtistRepo) queryArtists(ctx context.Context, q string, args ...any) ([]*model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable column of the artist identified by
// a.ID. Same full-replace semantics as VenueRepo.Update.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
		SET name = ?, city = ?, state = ?, phone = ?, genres = ?,
		    image_link = ?, facebook_link = ?, website_link = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.Genres.Join(),
		a.ImageLink, a.FacebookLink, a.WebsiteLink, a.SeekingVenue, a.SeekingDescription, a.ID)
	return err
}

// Delete removes an artist and every show that references it, inside a
// single transaction. ErrArtistNotFound is returned when the id resolves
// to no row.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var found int64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = ?`, id).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
