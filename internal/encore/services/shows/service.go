// Package shows implements show booking for the booking site.
package shows

import (
	"context"
	"fmt"

	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

// Service implements show operations over the stores.
type Service struct {
	store storage.Store
}

// New creates the show service.
func New(store storage.Store) *Service {
	return &Service{store: store}
}

// Create books a show after checking both parties exist.
func (s *Service) Create(ctx context.Context, sh show.Show) (show.Show, error) {
	if _, err := s.store.GetArtist(ctx, sh.ArtistID); err != nil {
		return show.Show{}, fmt.Errorf("artist %d: %w", sh.ArtistID, err)
	}
	if _, err := s.store.GetVenue(ctx, sh.VenueID); err != nil {
		return show.Show{}, fmt.Errorf("venue %d: %w", sh.VenueID, err)
	}
	if sh.StartTime.IsZero() {
		return show.Show{}, fmt.Errorf("start time is required")
	}
	return s.store.CreateShow(ctx, sh)
}

// List returns every show joined with venue and artist display fields.
func (s *Service) List(ctx context.Context) ([]show.Detail, error) {
	return s.store.ListShows(ctx)
}
