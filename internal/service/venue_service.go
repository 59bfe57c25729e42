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

// VenueListing is one row of the venues page: the venue plus its live
// upcoming-show count.
type VenueListing struct {
	model.Venue
	NumUpcomingShows int `json:"num_upcoming_shows"`
}

// VenueDetail is the full venue page: the venue, its shows split into
// past and upcoming by comparing start times against now at read time,
// and the counts derived from those lists. Nothing here is stored state.
type VenueDetail struct {
	model.Venue
	PastShows          []model.ShowListing `json:"past_shows"`
	UpcomingShows      []model.ShowListing `json:"upcoming_shows"`
	PastShowsCount     int                 `json:"past_shows_count"`
	UpcomingShowsCount int                 `json:"upcoming_shows_count"`
}

// VenueService implements create, read, update, delete and search for
// venues on top of the venue and show stores.
type VenueService struct {
	venues  VenueStore
	shows   ShowStore
	events  EventPublisher // nil disables event publishing
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewVenueService wires a VenueService. timeout bounds every store call;
// pass 0 for the default.
func NewVenueService(venues VenueStore, shows ShowStore, events EventPublisher, log zerolog.Logger, timeout time.Duration) *VenueService {
	return &VenueService{
		venues:  venues,
		shows:   shows,
		events:  events,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// List returns every venue with its live upcoming-show count.
func (s *VenueService) List(ctx context.Context) ([]VenueListing, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	venues, err := s.venues.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	counts, err := s.shows.UpcomingCountsByVenue(ctx, s.now())
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]VenueListing, 0, len(venues))
	for _, v := range venues {
		out = append(out, VenueListing{Venue: *v, NumUpcomingShows: counts[v.ID]})
	}
	return out, nil
}

// Get returns the full venue detail with its shows classified against the
// current time. Classification is recomputed on every call; a show
// crossing the boundary requires no write.
func (s *VenueService) Get(ctx context.Context, id int64) (*VenueDetail, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	listings, err := s.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	d := &VenueDetail{Venue: *v, PastShows: []model.ShowListing{}, UpcomingShows: []model.ShowListing{}}
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

// Search returns every venue whose name contains term as a
// case-insensitive substring. An empty term returns all venues. Each hit
// carries the live upcoming-show count, never a stored counter.
func (s *VenueService) Search(ctx context.Context, term string) (*SearchResult, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	venues, err := s.venues.SearchByName(ctx, term)
	if err != nil {
		return nil, storeErr(err)
	}
	counts, err := s.shows.UpcomingCountsByVenue(ctx, s.now())
	if err != nil {
		return nil, storeErr(err)
	}
	res := &SearchResult{Count: len(venues), Data: make([]Summary, 0, len(venues))}
	for _, v := range venues {
		res.Data = append(res.Data, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}
	return res, nil
}

// Create validates the form and persists a new venue. On failure the
// insert is rolled back in full and a *CreateError is returned; no raw
// store error crosses upward.
func (s *VenueService) Create(ctx context.Context, form VenueForm) (*model.Venue, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	v := form.Venue()
	if err := s.venues.Create(ctx, v); err != nil {
		s.log.Error().Err(err).Str("venue", form.Name).Msg("venue create failed")
		return nil, &CreateError{Entity: EntityVenue, Name: form.Name, Err: storeErr(err)}
	}
	s.publish(queue.Event{
		Kind:       queue.KindVenueListed,
		EntityType: EntityVenue,
		EntityID:   v.ID,
		Name:       v.Name,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	})
	return v, nil
}

// Update overwrites every editable field of an existing venue with the
// form contents. The entity must exist; a commit failure rolls back and
// surfaces as *UpdateError, leaving the stored record unchanged.
func (s *VenueService) Update(ctx context.Context, id int64, form VenueForm) (*model.Venue, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.venues.GetByID(ctx, id); err != nil {
		return nil, s.lookupErr(err, id)
	}
	v := form.Venue()
	v.ID = id
	if err := s.venues.Update(ctx, v); err != nil {
		s.log.Error().Err(err).Int64("venue_id", id).Msg("venue update failed")
		return nil, &UpdateError{Entity: EntityVenue, ID: id, Err: storeErr(err)}
	}
	return v, nil
}

// Delete removes the venue and, in the same transaction, every show that
// references it. The deleted record is returned so callers can name it
// in the confirmation message.
func (s *VenueService) Delete(ctx context.Context, id int64) (*model.Venue, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	if err := s.venues.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return nil, &NotFoundError{Entity: EntityVenue, ID: id}
		}
		s.log.Error().Err(err).Int64("venue_id", id).Msg("venue cascade delete failed")
		return nil, &DeleteError{Entity: EntityVenue, ID: id, Err: storeErr(err)}
	}
	s.publish(queue.Event{
		Kind:       queue.KindVenueDelisted,
		EntityType: EntityVenue,
		EntityID:   id,
		Name:       v.Name,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	})
	return v, nil
}

// EditForm returns the venue's current values in form shape for the edit
// page.
func (s *VenueService) EditForm(ctx context.Context, id int64) (*VenueForm, error) {
	ctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	form := VenueFormOf(v)
	return &form, nil
}

// lookupErr translates a GetByID failure: sentinel → NotFoundError,
// anything else → store error.
func (s *VenueService) lookupErr(err error, id int64) error {
	if errors.Is(err, repository.ErrVenueNotFound) {
		return &NotFoundError{Entity: EntityVenue, ID: id}
	}
	return storeErr(err)
}

// publish sends a domain event without tying its fate to the request:
// failures are logged and otherwise ignored.
func (s *VenueService) publish(ev queue.Event) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultStoreTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("kind", ev.Kind).Msg("event publish failed")
	}
}
