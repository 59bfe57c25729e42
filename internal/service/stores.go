package service

import (
	"context"
	"errors"
	"time"

	"github.com/showbill/showbill/internal/model"
	"github.com/showbill/showbill/internal/queue"
)

// VenueStore is the repository surface the venue service depends on.
// Declared here so tests can substitute an in-memory implementation;
// repository.VenueRepo satisfies it.
type VenueStore interface {
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
	ListAll(ctx context.Context) ([]*model.Venue, error)
	SearchByName(ctx context.Context, term string) ([]*model.Venue, error)
	Create(ctx context.Context, v *model.Venue) error
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id int64) error
}

// ArtistStore mirrors VenueStore for artists; repository.ArtistRepo
// satisfies it.
type ArtistStore interface {
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]*model.Artist, error)
	SearchByName(ctx context.Context, term string) ([]*model.Artist, error)
	Create(ctx context.Context, a *model.Artist) error
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id int64) error
}

// ShowStore is the repository surface for show rows and the derived
// counts; repository.ShowRepo satisfies it.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
	ListByVenue(ctx context.Context, venueID int64) ([]model.ShowListing, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.ShowListing, error)
	CountUpcomingByVenue(ctx context.Context, venueID int64, now time.Time) (int, error)
	CountUpcomingByArtist(ctx context.Context, artistID int64, now time.Time) (int, error)
	UpcomingCountsByVenue(ctx context.Context, now time.Time) (map[int64]int, error)
	UpcomingCountsByArtist(ctx context.Context, now time.Time) (map[int64]int, error)
}

// EventPublisher publishes domain events; queue.Publisher satisfies it.
// Services treat a nil publisher as "events disabled".
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// DefaultStoreTimeout bounds every store call when no explicit timeout is
// configured.
const DefaultStoreTimeout = 5 * time.Second

// boundCtx derives a context carrying the store timeout.
func boundCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr maps timeout expiry onto ErrStoreUnavailable so handlers can
// report a bounded failure instead of a raw context error.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreUnavailable
	}
	return err
}

// Summary is the per-hit search projection: id, name and the live count
// of upcoming shows referencing the entity.
type Summary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult is the search response shape shared by venues and artists.
type SearchResult struct {
	Count int       `json:"count"`
	Data  []Summary `json:"data"`
}
