package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

func seedShow(t *testing.T, s *Store) (artist.Artist, venue.Venue) {
	t.Helper()
	ctx := context.Background()

	a, err := s.CreateArtist(ctx, artist.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA"})
	if err != nil {
		t.Fatalf("create artist: %v", err)
	}
	v, err := s.CreateVenue(ctx, venue.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA"})
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	if _, err := s.CreateShow(ctx, show.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: time.Now()}); err != nil {
		t.Fatalf("create show: %v", err)
	}
	return a, v
}

func TestDeleteArtistRemovesShows(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, v := seedShow(t, s)

	if err := s.DeleteArtist(ctx, a.ID); err != nil {
		t.Fatalf("delete artist: %v", err)
	}
	details, err := s.ListShowsByVenue(ctx, v.ID)
	if err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected no shows after artist delete, got %d", len(details))
	}
}

func TestDeleteMissingVenueKeepsShows(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, v := seedShow(t, s)

	if err := s.DeleteVenue(ctx, v.ID+100); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	details, err := s.ListShowsByVenue(ctx, v.ID)
	if err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected the show to survive, got %d", len(details))
	}
}
