package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/showbill/showbill/internal/model"
	"github.com/showbill/showbill/internal/queue"
	"github.com/showbill/showbill/internal/repository"
)

// stubVenueStore is an in-memory VenueStore. Individual methods can be
// overridden to force failures.
type stubVenueStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Venue

	createErr error
	updateErr error
	deleteErr error
	getHook   func(ctx context.Context) error
}

func newStubVenueStore() *stubVenueStore {
	return &stubVenueStore{rows: map[int64]model.Venue{}}
}

func (s *stubVenueStore) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	if s.getHook != nil {
		if err := s.getHook(ctx); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	return &v, nil
}

func (s *stubVenueStore) ListAll(ctx context.Context) ([]*model.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Venue, 0, len(s.rows))
	for id := int64(1); id <= s.nextID; id++ {
		if v, ok := s.rows[id]; ok {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (s *stubVenueStore) SearchByName(ctx context.Context, term string) ([]*model.Venue, error) {
	all, _ := s.ListAll(ctx)
	out := make([]*model.Venue, 0, len(all))
	for _, v := range all {
		if containsFold(v.Name, term) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubVenueStore) Create(ctx context.Context, v *model.Venue) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v.ID = s.nextID
	s.rows[v.ID] = *v
	return nil
}

func (s *stubVenueStore) Update(ctx context.Context, v *model.Venue) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[v.ID] = *v
	return nil
}

func (s *stubVenueStore) Delete(ctx context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrVenueNotFound
	}
	delete(s.rows, id)
	return nil
}

// stubArtistStore mirrors stubVenueStore for artists.
type stubArtistStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Artist

	createErr error
	updateErr error
	deleteErr error
}

func newStubArtistStore() *stubArtistStore {
	return &stubArtistStore{rows: map[int64]model.Artist{}}
}

func (s *stubArtistStore) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	return &a, nil
}

func (s *stubArtistStore) ListAll(ctx context.Context) ([]*model.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Artist, 0, len(s.rows))
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.rows[id]; ok {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (s *stubArtistStore) SearchByName(ctx context.Context, term string) ([]*model.Artist, error) {
	all, _ := s.ListAll(ctx)
	out := make([]*model.Artist, 0, len(all))
	for _, a := range all {
		if containsFold(a.Name, term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubArtistStore) Create(ctx context.Context, a *model.Artist) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	s.rows[a.ID] = *a
	return nil
}

func (s *stubArtistStore) Update(ctx context.Context, a *model.Artist) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[a.ID] = *a
	return nil
}

func (s *stubArtistStore) Delete(ctx context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrArtistNotFound
	}
	delete(s.rows, id)
	return nil
}

// stubShowStore keeps show listings in submission order.
type stubShowStore struct {
	mu        sync.Mutex
	nextID    int64
	rows      []model.ShowListing
	createErr error
}

func newStubShowStore() *stubShowStore {
	return &stubShowStore{}
}

func (s *stubShowStore) add(l model.ShowListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	l.ID = s.nextID
	s.rows = append(s.rows, l)
}

func (s *stubShowStore) Create(ctx context.Context, show *model.Show) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	show.ID = s.nextID
	s.rows = append(s.rows, model.ShowListing{Show: *show})
	return nil
}

func (s *stubShowStore) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ShowListing(nil), s.rows...), nil
}

func (s *stubShowStore) ListByVenue(ctx context.Context, venueID int64) ([]model.ShowListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ShowListing
	for _, l := range s.rows {
		if l.VenueID == venueID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubShowStore) ListByArtist(ctx context.Context, artistID int64) ([]model.ShowListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ShowListing
	for _, l := range s.rows {
		if l.ArtistID == artistID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubShowStore) CountUpcomingByVenue(ctx context.Context, venueID int64, now time.Time) (int, error) {
	m, _ := s.UpcomingCountsByVenue(ctx, now)
	return m[venueID], nil
}

func (s *stubShowStore) CountUpcomingByArtist(ctx context.Context, artistID int64, now time.Time) (int, error) {
	m, _ := s.UpcomingCountsByArtist(ctx, now)
	return m[artistID], nil
}

func (s *stubShowStore) UpcomingCountsByVenue(ctx context.Context, now time.Time) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64]int{}
	for _, l := range s.rows {
		if l.Upcoming(now) {
			out[l.VenueID]++
		}
	}
	return out, nil
}

func (s *stubShowStore) UpcomingCountsByArtist(ctx context.Context, now time.Time) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64]int{}
	for _, l := range s.rows {
		if l.Upcoming(now) {
			out[l.ArtistID]++
		}
	}
	return out, nil
}

// stubPublisher records published events.
type stubPublisher struct {
	mu     sync.Mutex
	events []queue.Event
}

func (p *stubPublisher) Publish(ctx context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *stubPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
