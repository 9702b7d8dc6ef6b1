// Package artists implements the artist listing rules for the booking site.
package artists

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

// Page is an artist detail page: the record plus their shows split around now.
type Page struct {
	Artist        artist.Artist
	PastShows     []show.Detail
	UpcomingShows []show.Detail
}

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Count   int             `json:"count"`
	Artists []artist.Artist `json:"data"`
}

// Service implements artist operations over the stores.
type Service struct {
	artists storage.ArtistStore
	shows   storage.ShowStore
	now     func() time.Time
}

// New creates the artist service.
func New(artists storage.ArtistStore, shows storage.ShowStore) *Service {
	return &Service{artists: artists, shows: shows, now: time.Now}
}

// Create validates and stores a new artist.
func (s *Service) Create(ctx context.Context, a artist.Artist) (artist.Artist, error) {
	if strings.TrimSpace(a.Name) == "" {
		return artist.Artist{}, fmt.Errorf("artist name is required")
	}
	return s.artists.CreateArtist(ctx, a)
}

// Update replaces an existing artist's fields.
func (s *Service) Update(ctx context.Context, a artist.Artist) (artist.Artist, error) {
	if strings.TrimSpace(a.Name) == "" {
		return artist.Artist{}, fmt.Errorf("artist name is required")
	}
	return s.artists.UpdateArtist(ctx, a)
}

// Get returns the detail page for an artist.
func (s *Service) Get(ctx context.Context, id int64) (Page, error) {
	a, err := s.artists.GetArtist(ctx, id)
	if err != nil {
		return Page{}, err
	}

	details, err := s.shows.ListShowsByArtist(ctx, id)
	if err != nil {
		return Page{}, err
	}

	page := Page{Artist: a, PastShows: []show.Detail{}, UpcomingShows: []show.Detail{}}
	now := s.now()
	for _, d := range details {
		if d.Upcoming(now) {
			page.UpcomingShows = append(page.UpcomingShows, d)
		} else {
			page.PastShows = append(page.PastShows, d)
		}
	}
	return page, nil
}

// Delete removes an artist together with their shows.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.artists.DeleteArtist(ctx, id)
}

// List returns all artists ordered alphabetically.
func (s *Service) List(ctx context.Context) ([]artist.Artist, error) {
	return s.artists.ListArtists(ctx)
}

// Search finds artists whose name contains the term, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	found, err := s.artists.SearchArtists(ctx, term)
	if err != nil {
		return SearchResult{}, err
	}
	if found == nil {
		found = []artist.Artist{}
	}
	return SearchResult{Count: len(found), Artists: found}, nil
}

// Recent returns the most recently listed artists, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]artist.Artist, error) {
	return s.artists.RecentArtists(ctx, limit)
}
