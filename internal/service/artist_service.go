package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/showbill/showbill/internal/model"
	"github.com/showbill/showbill/internal/queue"
	"github.com/showbill/showbill/internal/repository"
)

// ArtistListing is one row of the artists page.
type ArtistListing struct {
	model.Artist
	NumUpcomingShows int `json:"num_upcoming_shows"`
}

// ArtistDetail is the full artist page with the derived show split and
// counts, mirroring VenueDetail.
type ArtistDetail struct {
	model.Artist
	PastShows          []model.ShowListing `json:"past_shows"`
	UpcomingShows      []model.ShowListing `json:"upcoming_shows"`
	PastShowsCount     int                 `json:"past_shows_count"`
	UpcomingShowsCount int                 `json:"upcoming_shows_count"`
}

// ArtistService implements create, read, update, delete and search for
// artists. The shape mirrors VenueService.
type ArtistService struct {
	artists ArtistStore
	shows   ShowStore
	events  EventPublisher // nil disables event publishing
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewArtistService wires an ArtistService. timeout bounds every store
// call; pass 0 for the default.
func NewArtistService(artists ArtistStore, shows ShowStore, events EventPublisher, log zerolog.Logger, timeout time.Duration) *ArtistService {
	return &ArtistService{
		artists: artists,
		shows:   shows,
		events:  events,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// List returns every artist with its live upcoming-show count.
func (s *ArtistService) List(ctx context.Context) ([]ArtistListing, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	artists, err := s.artists.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	counts, err := s.shows.UpcomingCountsByArtist(ctx, s.now())
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]ArtistListing, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistListing{Artist: *a, NumUpcomingShows: counts[a.ID]})
	}
	return out, nil
}

// Get returns the full artist detail with shows classified against the
// current time.
func (s *ArtistService) Get(ctx context.Context, id int64) (*ArtistDetail, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	listings, err := s.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	d := &ArtistDetail{Artist: *a, PastShows: []model.ShowListing{}, UpcomingShows: []model.ShowListing{}}
	now := s.now()
	for _, l := range listings {
		if l.Upcoming(now) {
			d.UpcomingShows = append(d.UpcomingShows, l)
		} else {
			d.PastShows = append(d.PastShows, l)
		}
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d, nil
}

// Search returns every artist whose name contains term as a
// case-insensitive substring; empty term returns all.
func (s *ArtistService) Search(ctx context.Context, term string) (*SearchResult, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	artists, err := s.artists.SearchByName(ctx, term)
	if err != nil {
		return nil, storeErr(err)
	}
	counts, err := s.shows.UpcomingCountsByArtist(ctx, s.now())
	if err != nil {
		return nil, storeErr(err)
	}
	res := &SearchResult{Count: len(artists), Data: make([]Summary, 0, len(artists))}
	for _, a := range artists {
		res.Data = append(res.Data, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}
	return res, nil
}

// Create validates the form and persists a new artist.
func (s *ArtistService) Create(ctx context.Context, form ArtistForm) (*model.Artist, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	a := form.Artist()
	if err := s.artists.Create(ctx, a); err != nil {
		s.log.Error().Err(err).Str("artist", form.Name).Msg("artist create failed")
		return nil, &CreateError{Entity: EntityArtist, Name: form.Name, Err: storeErr(err)}
	}
	s.publish(queue.Event{
		Kind:       queue.KindArtistListed,
		EntityType: EntityArtist,
		EntityID:   a.ID,
		Name:       a.Name,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	})
	return a, nil
}

// Update overwrites every editable field of an existing artist.
func (s *ArtistService) Update(ctx context.Context, id int64, form ArtistForm) (*model.Artist, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.artists.GetByID(ctx, id); err != nil {
		return nil, s.lookupErr(err, id)
	}
	a := form.Artist()
	a.ID = id
	if err := s.artists.Update(ctx, a); err != nil {
		s.log.Error().Err(err).Int64("artist_id", id).Msg("artist update failed")
		return nil, &UpdateError{Entity: EntityArtist, ID: id, Err: storeErr(err)}
	}
	return a, nil
}

// Delete removes the artist and, in the same transaction, every show
// that references it.
func (s *ArtistService) Delete(ctx context.Context, id int64) (*model.Artist, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	if err := s.artists.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, &NotFoundError{Entity: EntityArtist, ID: id}
		}
		s.log.Error().Err(err).Int64("artist_id", id).Msg("artist cascade delete failed")
		return nil, &DeleteError{Entity: EntityArtist, ID: id, Err: storeErr(err)}
	}
	s.publish(queue.Event{
		Kind:       queue.KindArtistDelisted,
		EntityType: EntityArtist,
		EntityID:   id,
		Name:       a.Name,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	})
	return a, nil
}

// EditForm returns the artist's current values in form shape.
func (s *ArtistService) EditForm(ctx context.Context, id int64) (*ArtistForm, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	form := ArtistFormOf(a)
	return &form, nil
}

func (s *ArtistService) lookupErr(err error, id int64) error {
	if errors.Is(err, repository.ErrArtistNotFound) {
		return &NotFoundError{Entity: EntityArtist, ID: id}
	}
	return storeErr(err)
}

func (s *ArtistService) publish(ev queue.Event) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultStoreTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("kind", ev.Kind).Msg("event publish failed")
	}
}
