// Package memory is an in-memory implementation of the booking site stores,
// intended for tests and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

// Store is an in-memory implementation of storage.Store. Safe for concurrent
// use.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	venues  map[int64]venue.Venue
	artists map[int64]artist.Artist
	shows   map[int64]show.Show
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:  1,
		venues:  make(map[int64]venue.Venue),
		artists: make(map[int64]artist.Artist),
		shows:   make(map[int64]show.Show),
	}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// VenueStore implementation --------------------------------------------------

func (s *Store) CreateVenue(_ context.Context, v venue.Venue) (venue.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.nextIDLocked()
	v.CreatedAt = time.Now().UTC()
	v.Genres = cloneStrings(v.Genres)
	s.venues[v.ID] = v
	return v, nil
}

func (s *Store) UpdateVenue(_ context.Context, v venue.Venue) (venue.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.venues[v.ID]
	if !ok {
		return venue.Venue{}, storage.ErrNotFound
	}
	v.CreatedAt = original.CreatedAt
	v.Genres = cloneStrings(v.Genres)
	s.venues[v.ID] = v
	return v, nil
}

func (s *Store) GetVenue(_ context.Context, id int64) (venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return venue.Venue{}, storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) DeleteVenue(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return storage.ErrNotFound
	}
	for showID, sh := range s.shows {
		if sh.VenueID == id {
			delete(s.shows, showID)
		}
	}
	delete(s.venues, id)
	return nil
}

func (s *Store) ListVenues(_ context.Context) ([]venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]venue.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SearchVenues(_ context.Context, term string) ([]venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	var out []venue.Venue
	for _, v := range s.venues {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RecentVenues(_ context.Context, limit int) ([]venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]venue.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ArtistStore implementation -------------------------------------------------

func (s *Store) CreateArtist(_ context.Context, a artist.Artist) (artist.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextIDLocked()
	a.CreatedAt = time.Now().UTC()
	a.Genres = cloneStrings(a.Genres)
	s.artists[a.ID] = a
	return a, nil
}

func (s *Store) UpdateArtist(_ context.Context, a artist.Artist) (artist.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.artists[a.ID]
	if !ok {
		return artist.Artist{}, storage.ErrNotFound
	}
	a.CreatedAt = original.CreatedAt
	a.Genres = cloneStrings(a.Genres)
	s.artists[a.ID] = a
	return a, nil
}

func (s *Store) GetArtist(_ context.Context, id int64) (artist.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.artists[id]
	if !ok {
		return artist.Artist{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) DeleteArtist(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[id]; !ok {
		return storage.ErrNotFound
	}
	for showID, sh := range s.shows {
		if sh.ArtistID == id {
			delete(s.shows, showID)
		}
	}
	delete(s.artists, id)
	return nil
}

func (s *Store) ListArtists(_ context.Context) ([]artist.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]artist.Artist, 0, len(s.artists))
	for _, a := range s.artists {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SearchArtists(_ context.Context, term string) ([]artist.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	var out []artist.Artist
	for _, a := range s.artists {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RecentArtists(_ context.Context, limit int) ([]artist.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]artist.Artist, 0, len(s.artists))
	for _, a := range s.artists {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ShowStore implementation ---------------------------------------------------

func (s *Store) CreateShow(_ context.Context, sh show.Show) (show.Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[sh.ArtistID]; !ok {
		return show.Show{}, storage.ErrNotFound
	}
	if _, ok := s.venues[sh.VenueID]; !ok {
		return show.Show{}, storage.ErrNotFound
	}

	sh.ID = s.nextIDLocked()
	s.shows[sh.ID] = sh
	return sh, nil
}

func (s *Store) ListShows(_ context.Context) ([]show.Detail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailsLocked(func(show.Show) bool { return true }), nil
}

func (s *Store) ListShowsByVenue(_ context.Context, venueID int64) ([]show.Detail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailsLocked(func(sh show.Show) bool { return sh.VenueID == venueID }), nil
}

func (s *Store) ListShowsByArtist(_ context.Context, artistID int64) ([]show.Detail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailsLocked(func(sh show.Show) bool { return sh.ArtistID == artistID }), nil
}

func (s *Store) detailsLocked(match func(show.Show) bool) []show.Detail {
	var out []show.Detail
	for _, sh := range s.shows {
		if !match(sh) {
			continue
		}
		v := s.venues[sh.VenueID]
		a := s.artists[sh.ArtistID]
		out = append(out, show.Detail{
			ID:              sh.ID,
			VenueID:         sh.VenueID,
			VenueName:       v.Name,
			VenueImageLink:  v.ImageLink,
			ArtistID:        sh.ArtistID,
			ArtistName:      a.Name,
			ArtistImageLink: a.ImageLink,
			StartTime:       sh.StartTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
