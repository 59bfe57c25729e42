// This file defines repository methods for CRUD and lookup operations on
// venues. A venue owns the shows that reference it for cascade-delete
// purposes only; the rows themselves live in the shows table and are
// reached with explicit queries.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel error values
	"strings"      // strings builds the lowercase LIKE pattern for search

	"github.com/showbill/showbill/internal/model"
)

// venueCols is the canonical column list shared by every venue SELECT so
// that Scan call sites stay in one shape.
const venueCols = `id, name, city, state, address, phone, genres,
	image_link, facebook_link, website, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues. It
// depends on a sql.DB connection pool which is configured at startup.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// scanVenue reads one row in venueCols order into a model.Venue,
// decoding the comma-joined genres column.
func scanVenue(row interface{ Scan(...any) error }) (*model.Venue, error) {
	var v model.Venue
	var genres string
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &genres,
		&v.ImageLink, &v.FacebookLink, &v.Website, &v.SeekingTalent, &v.SeekingDescription); err != nil {
		return nil, err
	}
	v.Genres = model.SplitGenres(genres)
	return &v, nil
}

// Create inserts a new venue. On success the venue's ID field is
// populated with the auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, genres,
		image_link, facebook_link, website, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres.Join(),
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

// GetByID fetches a venue by its ID. It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	const q = `SELECT ` + venueCols + ` FROM venues WHERE id = ?`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListAll returns every venue ordered by id. The fixed ORDER BY keeps
// result ordering stable across repeated identical calls.
func (r *VenueRepo) ListAll(ctx context.Context) ([]*model.Venue, error) {
	const q = `SELECT ` + venueCols + ` FROM venues ORDER BY id`
	return r.queryVenues(ctx, q)
}

// SearchByName returns every venue whose name contains term as a
// case-insensitive substring, ordered by id. An empty term matches all
// venues.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]*model.Venue, error) {
	const q = `SELECT ` + venueCols + ` FROM venues WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.queryVenues(ctx, q, "%"+strings.ToLower(term)+"%")
}

func (r *VenueRepo) queryVenues(ctx context.Context, q string, args ...any) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every editable column of the venue identified by
// v.ID. It is a full-record replace, not a merge. A zero affected-row
// count is not an error: MySQL reports 0 when the submitted values equal
// the stored ones, so existence must be checked by the caller beforehand.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
		SET name = ?, city = ?, state = ?, address = ?, phone = ?, genres = ?,
		    image_link = ?, facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.Genres.Join(),
		v.ImageLink, v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, v.ID)
	return err
}

// Delete removes a venue and every show that references it. The whole
// operation runs inside a single transaction so a failure at any step
// leaves both tables untouched. ErrVenueNotFound is returned when the id
// resolves to no row.
func (r *VenueRepo) Delete(ctx context.Context, id int64) (err error) {
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
	// Verify the venue exists before touching dependent rows.
	var found int64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ?`, id).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	// Cascade delete: shows referencing the venue go first to satisfy the
	// foreign-key constraint, then the venue itself.
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
