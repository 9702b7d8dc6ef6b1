package venues

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
	"github.com/fullstacklab/appsuite/internal/encore/storage/memory"
)

func testVenue(name, city, state string) venue.Venue {
	return venue.Venue{Name: name, City: city, State: state, Genres: []string{"Jazz"}}
}

func testArtist() artist.Artist {
	return artist.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}}
}

func TestCreateRequiresName(t *testing.T) {
	svc := New(memory.New(), memory.New())
	if _, err := svc.Create(context.Background(), testVenue("  ", "SF", "CA")); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestAreasGroupsByCityState(t *testing.T) {
	store := memory.New()
	svc := New(store, store)
	ctx := context.Background()

	for _, v := range []venue.Venue{
		testVenue("The Dueling Pianos Bar", "New York", "NY"),
		testVenue("The Musical Hop", "San Francisco", "CA"),
		testVenue("Park Square Live Music & Coffee", "San Francisco", "CA"),
	} {
		if _, err := svc.Create(ctx, v); err != nil {
			t.Fatalf("create venue: %v", err)
		}
	}

	areas, err := svc.Areas(ctx)
	if err != nil {
		t.Fatalf("areas: %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas, got %d", len(areas))
	}
	if areas[0].City != "New York" || areas[1].City != "San Francisco" {
		t.Fatalf("unexpected area order: %+v", areas)
	}
	if len(areas[1].Venues) != 2 {
		t.Fatalf("expected 2 venues in San Francisco, got %d", len(areas[1].Venues))
	}
}

func TestGetSplitsShowsAroundNow(t *testing.T) {
	store := memory.New()
	svc := New(store, store)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	v, err := store.CreateVenue(ctx, testVenue("The Musical Hop", "San Francisco", "CA"))
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	a, err := store.CreateArtist(ctx, testArtist())
	if err != nil {
		t.Fatalf("create artist: %v", err)
	}

	past := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	future := time.Date(2025, 12, 1, 20, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{past, future} {
		if _, err := store.CreateShow(ctx, show.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: at}); err != nil {
			t.Fatalf("create show: %v", err)
		}
	}

	page, err := svc.Get(ctx, v.ID)
	if err != nil {
		t.Fatalf("get venue page: %v", err)
	}
	if len(page.PastShows) != 1 || len(page.UpcomingShows) != 1 {
		t.Fatalf("expected 1 past and 1 upcoming, got %d and %d", len(page.PastShows), len(page.UpcomingShows))
	}
	if !page.PastShows[0].StartTime.Equal(past) {
		t.Fatalf("wrong past show: %+v", page.PastShows[0])
	}
}

func TestDeleteRemovesVenueAndShows(t *testing.T) {
	store := memory.New()
	svc := New(store, store)
	ctx := context.Background()

	v, err := store.CreateVenue(ctx, testVenue("The Musical Hop", "San Francisco", "CA"))
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	a, err := store.CreateArtist(ctx, testArtist())
	if err != nil {
		t.Fatalf("create artist: %v", err)
	}
	if _, err := store.CreateShow(ctx, show.Show{ArtistID: a.ID, VenueID: v.ID, StartTime: time.Now()}); err != nil {
		t.Fatalf("create show: %v", err)
	}

	if err := svc.Delete(ctx, v.ID); err != nil {
		t.Fatalf("delete venue: %v", err)
	}
	if _, err := store.GetVenue(ctx, v.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	details, err := store.ListShows(ctx)
	if err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected no shows after venue delete, got %d", len(details))
	}
}

func TestDeleteMissingVenue(t *testing.T) {
	store := memory.New()
	svc := New(store, store)
	if err := svc.Delete(context.Background(), 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	store := memory.New()
	svc := New(store, store)
	ctx := context.Background()

	names := []string{"The Musical Hop", "Park Square Live Music & Coffee", "The Dueling Pianos Bar"}
	for _, name := range names {
		if _, err := svc.Create(ctx, testVenue(name, "San Francisco", "CA")); err != nil {
			t.Fatalf("create venue: %v", err)
		}
	}

	result, err := svc.Search(ctx, "music")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "music", result.Count)
	}

	result, err = svc.Search(ctx, "zzz")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.Count != 0 || result.Venues == nil {
		t.Fatalf("expected empty non-nil result, got %+v", result)
	}
}
