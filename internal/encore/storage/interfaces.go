// Package storage declares the persistence interfaces for the booking site.
package storage

import (
	"context"
	"errors"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// VenueStore persists venue records. DeleteVenue removes the venue and its
// shows as one atomic operation.
type VenueStore interface {
	CreateVenue(ctx context.Context, v venue.Venue) (venue.Venue, error)
	UpdateVenue(ctx context.Context, v venue.Venue) (venue.Venue, error)
	GetVenue(ctx context.Context, id int64) (venue.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	ListVenues(ctx context.Context) ([]venue.Venue, error)
	SearchVenues(ctx context.Context, term string) ([]venue.Venue, error)
	RecentVenues(ctx context.Context, limit int) ([]venue.Venue, error)
}

// ArtistStore persists artist records. DeleteArtist removes the artist and
// their shows as one atomic operation.
type ArtistStore interface {
	CreateArtist(ctx context.Context, a artist.Artist) (artist.Artist, error)
	UpdateArtist(ctx context.Context, a artist.Artist) (artist.Artist, error)
	GetArtist(ctx context.Context, id int64) (artist.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
	ListArtists(ctx context.Context) ([]artist.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]artist.Artist, error)
	RecentArtists(ctx context.Context, limit int) ([]artist.Artist, error)
}

// ShowStore persists show records.
type ShowStore interface {
	CreateShow(ctx context.Context, s show.Show) (show.Show, error)
	ListShows(ctx context.Context) ([]show.Detail, error)
	ListShowsByVenue(ctx context.Context, venueID int64) ([]show.Detail, error)
	ListShowsByArtist(ctx context.Context, artistID int64) ([]show.Detail, error)
}

// Store combines the booking site stores.
type Store interface {
	VenueStore
	ArtistStore
	ShowStore
}
