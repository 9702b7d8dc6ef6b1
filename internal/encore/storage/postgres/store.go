// Package postgres implements the booking site stores backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fullstacklab/appsuite/internal/encore/domain/artist"
	"github.com/fullstacklab/appsuite/internal/encore/domain/show"
	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

// Store implements storage.Store backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.Store = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// VenueStore implementation --------------------------------------------------

const venueColumns = `id, name, city, state, address, phone, genres, website_link,
	facebook_link, image_link, seeking_talent, seeking_description, created_at`

func (s *Store) CreateVenue(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	v.CreatedAt = time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state, address, phone, genres, website_link,
			facebook_link, image_link, seeking_talent, seeking_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, v.Name, v.City, v.State, v.Address, v.Phone, pq.Array(v.Genres), v.WebsiteLink,
		v.FacebookLink, v.ImageLink, v.SeekingTalent, v.SeekingDescription, v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		return venue.Venue{}, err
	}
	return v, nil
}

func (s *Store) UpdateVenue(ctx context.Context, v venue.Venue) (venue.Venue, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE venues
		SET name = $2, city = $3, state = $4, address = $5, phone = $6, genres = $7,
			website_link = $8, facebook_link = $9, image_link = $10,
			seeking_talent = $11, seeking_description = $12
		WHERE id = $1
	`, v.ID, v.Name, v.City, v.State, v.Address, v.Phone, pq.Array(v.Genres),
		v.WebsiteLink, v.FacebookLink, v.ImageLink, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return venue.Venue{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return venue.Venue{}, storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) GetVenue(ctx context.Context, id int64) (venue.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+venueColumns+` FROM venues WHERE id = $1
	`, id)
	return scanVenue(row)
}

func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.deleteCascade(ctx,
		`DELETE FROM shows WHERE venue_id = $1`,
		`DELETE FROM venues WHERE id = $1`, id)
}

func (s *Store) ListVenues(ctx context.Context) ([]venue.Venue, error) {
	return s.queryVenues(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY id`)
}

func (s *Store) SearchVenues(ctx context.Context, term string) ([]venue.Venue, error) {
	return s.queryVenues(ctx, `
		SELECT `+venueColumns+` FROM venues WHERE name ILIKE $1 ORDER BY id
	`, "%"+term+"%")
}

func (s *Store) RecentVenues(ctx context.Context, limit int) ([]venue.Venue, error) {
	return s.queryVenues(ctx, `
		SELECT `+venueColumns+` FROM venues ORDER BY id DESC LIMIT $1
	`, limit)
}

func (s *Store) queryVenues(ctx context.Context, query string, args ...interface{}) ([]venue.Venue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []venue.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (venue.Venue, error) {
	var v venue.Venue
	var genres pq.StringArray
	err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &genres,
		&v.WebsiteLink, &v.FacebookLink, &v.ImageLink, &v.SeekingTalent,
		&v.SeekingDescription, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return venue.Venue{}, storage.ErrNotFound
	}
	if err != nil {
		return venue.Venue{}, err
	}
	v.Genres = []string(genres)
	return v, nil
}

// ArtistStore implementation -------------------------------------------------

const artistColumns = `id, name, city, state, phone, genres, website_link,
	facebook_link, image_link, seeking_venue, seeking_description, created_at`

func (s *Store) CreateArtist(ctx context.Context, a artist.Artist) (artist.Artist, error) {
	a.CreatedAt = time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, city, state, phone, genres, website_link,
			facebook_link, image_link, seeking_venue, seeking_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, a.Name, a.City, a.State, a.Phone, pq.Array(a.Genres), a.WebsiteLink,
		a.FacebookLink, a.ImageLink, a.SeekingVenue, a.SeekingDescription, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return artist.Artist{}, err
	}
	return a, nil
}

func (s *Store) UpdateArtist(ctx context.Context, a artist.Artist) (artist.Artist, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE artists
		SET name = $2, city = $3, state = $4, phone = $5, genres = $6,
			website_link = $7, facebook_link = $8, image_link = $9,
			seeking_venue = $10, seeking_description = $11
		WHERE id = $1
	`, a.ID, a.Name, a.City, a.State, a.Phone, pq.Array(a.Genres),
		a.WebsiteLink, a.FacebookLink, a.ImageLink, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return artist.Artist{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return artist.Artist{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) GetArtist(ctx context.Context, id int64) (artist.Artist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+artistColumns+` FROM artists WHERE id = $1
	`, id)
	return scanArtist(row)
}

func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	return s.deleteCascade(ctx,
		`DELETE FROM shows WHERE artist_id = $1`,
		`DELETE FROM artists WHERE id = $1`, id)
}

func (s *Store) ListArtists(ctx context.Context) ([]artist.Artist, error) {
	return s.queryArtists(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY name ASC`)
}

func (s *Store) SearchArtists(ctx context.Context, term string) ([]artist.Artist, error) {
	return s.queryArtists(ctx, `
		SELECT `+artistColumns+` FROM artists WHERE name ILIKE $1 ORDER BY id
	`, "%"+term+"%")
}

func (s *Store) RecentArtists(ctx context.Context, limit int) ([]artist.Artist, error) {
	return s.queryArtists(ctx, `
		SELECT `+artistColumns+` FROM artists ORDER BY id DESC LIMIT $1
	`, limit)
}

func (s *Store) queryArtists(ctx context.Context, query string, args ...interface{}) ([]artist.Artist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []artist.Artist
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanArtist(row rowScanner) (artist.Artist, error) {
	var a artist.Artist
	var genres pq.StringArray
	err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres,
		&a.WebsiteLink, &a.FacebookLink, &a.ImageLink, &a.SeekingVenue,
		&a.SeekingDescription, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return artist.Artist{}, storage.ErrNotFound
	}
	if err != nil {
		return artist.Artist{}, err
	}
	a.Genres = []string(genres)
	return a, nil
}

// ShowStore implementation ---------------------------------------------------

const showDetailQuery = `
	SELECT s.id, s.venue_id, v.name, v.image_link, s.artist_id, a.name, a.image_link, s.start_time
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

func (s *Store) CreateShow(ctx context.Context, sh show.Show) (show.Show, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, sh.ArtistID, sh.VenueID, sh.StartTime).Scan(&sh.ID)
	if err != nil {
		return show.Show{}, err
	}
	return sh, nil
}

func (s *Store) ListShows(ctx context.Context) ([]show.Detail, error) {
	return s.queryShowDetails(ctx, showDetailQuery+` ORDER BY s.start_time`)
}

func (s *Store) ListShowsByVenue(ctx context.Context, venueID int64) ([]show.Detail, error) {
	return s.queryShowDetails(ctx, showDetailQuery+` WHERE s.venue_id = $1 ORDER BY s.start_time`, venueID)
}

func (s *Store) ListShowsByArtist(ctx context.Context, artistID int64) ([]show.Detail, error) {
	return s.queryShowDetails(ctx, showDetailQuery+` WHERE s.artist_id = $1 ORDER BY s.start_time`, artistID)
}

// deleteCascade removes a record and its shows in one transaction, so a
// failure on either statement leaves both tables untouched.
func (s *Store) deleteCascade(ctx context.Context, deleteShows, deleteOwner string, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteShows, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, deleteOwner, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return tx.Commit()
}

func (s *Store) queryShowDetails(ctx context.Context, query string, args ...interface{}) ([]show.Detail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []show.Detail
	for rows.Next() {
		var d show.Detail
		if err := rows.Scan(&d.ID, &d.VenueID, &d.VenueName, &d.VenueImageLink,
			&d.ArtistID, &d.ArtistName, &d.ArtistImageLink, &d.StartTime); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
