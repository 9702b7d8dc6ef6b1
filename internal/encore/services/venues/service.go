// Package venues implements the venue listing rules for the booking site.
package venues

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

// Page is a venue detail page: the record plus its shows split around now.
type Page struct {
	Venue         venue.Venue
	PastShows     []show.Detail
	UpcomingShows []show.Detail
}

// SearchResult is the outcome of a name search.
type SearchResult struct {
	Count  int           `json:"count"`
	Venues []venue.Venue `json:"data"`
}

// Service implements venue operations over the stores.
type Service struct {
	venues storage.VenueStore
	shows  storage.ShowStore
	now    func() time.Time
}

// New creates the venue service.
func New(venues storage.VenueStore, shows storage.ShowStore) *Service {
	return &Service{venues: venues, shows: shows, now: time.Now}
}

// Create validates and stores a new venue.
func (s *Service) Create(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	if strings.TrimSpace(v.Name) == "" {
		return venue.Venue{}, fmt.Errorf("venue name is required")
	}
	return s.venues.CreateVenue(ctx, v)
}

// Update replaces an existing venue's fields.
func (s *Service) Update(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	if strings.TrimSpace(v.Name) == "" {
		return venue.Venue{}, fmt.Errorf("venue name is required")
	}
	return s.venues.UpdateVenue(ctx, v)
}

// Get returns the detail page for a venue.
func (s *Service) Get(ctx context.Context, id int64) (Page, error) {
	v, err := s.venues.GetVenue(ctx, id)
	if err != nil {
		return Page{}, err
	}

	details, err := s.shows.ListShowsByVenue(ctx, id)
	if err != nil {
		return Page{}, err
	}

	page := Page{Venue: v, PastShows: []show.Detail{}, UpcomingShows: []show.Detail{}}
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

// Delete removes a venue together with its shows.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.venues.DeleteVenue(ctx, id)
}

// Areas returns all venues grouped by their (city, state) pair.
func (s *Service) Areas(ctx context.Context) ([]venue.Area, error) {
	all, err := s.venues.ListVenues(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*venue.Area)
	var order []string
	for _, v := range all {
		key := v.City + "|" + v.State
		area, ok := grouped[key]
		if !ok {
			area = &venue.Area{City: v.City, State: v.State}
			grouped[key] = area
			order = append(order, key)
		}
		area.Venues = append(area.Venues, v)
	}

	sort.Strings(order)
	out := make([]venue.Area, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	return out, nil
}

// Search finds venues whose name contains the term, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) (SearchResult, error) {
	found, err := s.venues.SearchVenues(ctx, term)
	if err != nil {
		return SearchResult{}, err
	}
	if found == nil {
		found = []venue.Venue{}
	}
	return SearchResult{Count: len(found), Venues: found}, nil
}

// Recent returns the most recently listed venues, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]venue.Venue, error) {
	return s.venues.RecentVenues(ctx, limit)
}
