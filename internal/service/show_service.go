package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/showbill/showbill/internal/model"
	"github.com/showbill/showbill/internal/queue"
	"github.com/showbill/showbill/internal/repository"
)

// ShowsPage is the shows listing split into upcoming and past at read
// time. A show moves between the two lists purely by re-evaluation
// against the clock; there is no stored transition.
type ShowsPage struct {
	UpcomingShows []model.ShowListing `json:"upcoming_shows"`
	PastShows     []model.ShowListing `json:"past_shows"`
}

// ShowService books shows and lists them with the derived classification.
type ShowService struct {
	shows   ShowStore
	venues  VenueStore
	artists ArtistStore
	events  EventPublisher // nil disables event publishing
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewShowService wires a ShowService. The venue and artist stores are
// needed to resolve both foreign keys before a booking is accepted.
func NewShowService(shows ShowStore, venues VenueStore, artists ArtistStore, events EventPublisher, log zerolog.Logger, timeout time.Duration) *ShowService {
	return &ShowService{
		shows:   shows,
		venues:  venues,
		artists: artists,
		events:  events,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// List returns every show with venue/artist names joined in, classified
// into upcoming and past against the current time.
func (s *ShowService) List(ctx context.Context) (*ShowsPage, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	listings, err := s.shows.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	page := &ShowsPage{UpcomingShows: []model.ShowListing{}, PastShows: []model.ShowListing{}}
	now := s.now()
	for _, l := range listings {
		if l.Upcoming(now) {
			page.UpcomingShows = append(page.UpcomingShows, l)
		} else {
			page.PastShows = append(page.PastShows, l)
		}
	}
	return page, nil
}

// Create books a show. Both referenced ids must resolve to existing
// entities; the missing one is reported in the NotFoundError. The show
// is stored as-is regardless of whether its start time has already
// passed: classification is a read-time projection, never a write path.
func (s *ShowService) Create(ctx context.Context, form ShowForm) (*model.Show, error) {
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	startTime, err := form.ParseStartTime()
	if err != nil {
		return nil, &ValidationError{Field: "start_time", Reason: "must be a valid datetime"}
	}
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.venues.GetByID(ctx, form.VenueID); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, &NotFoundError{Entity: EntityVenue, ID: form.VenueID}
		}
		return nil, storeErr(err)
	}
	if _, err := s.artists.GetByID(ctx, form.ArtistID); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, &NotFoundError{Entity: EntityArtist, ID: form.ArtistID}
		}
		return nil, storeErr(err)
	}

	show := &model.Show{VenueID: form.VenueID, ArtistID: form.ArtistID, StartTime: startTime}
	if err := s.shows.Create(ctx, show); err != nil {
		s.log.Error().Err(err).Int64("venue_id", form.VenueID).Int64("artist_id", form.ArtistID).Msg("show create failed")
		return nil, &CreateError{Entity: EntityShow, Err: storeErr(err)}
	}
	s.publish(queue.Event{
		Kind:       queue.KindShowBooked,
		ShowID:     show.ID,
		VenueID:    show.VenueID,
		ArtistID:   show.ArtistID,
		StartTime:  show.StartTime.Format(time.RFC3339),
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	})
	return show, nil
}

func (s *ShowService) publish(ev queue.Event) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultStoreTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("kind", ev.Kind).Msg("event publish failed")
	}
}
