package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/fullstacklab/appsuite/internal/encore/domain/venue"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateVenueReturnsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO venues`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	created, err := store.CreateVenue(context.Background(), venue.Venue{
		Name: "The Musical Hop", City: "San Francisco", State: "CA", Genres: []string{"Jazz"},
	})
	if err != nil {
		t.Fatalf("create venue: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected id 7, got %d", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetVenueNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM venues WHERE id`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetVenue(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetVenueScansGenresArray(t *testing.T) {
	store, mock := newMockStore(t)

	cols := []string{"id", "name", "city", "state", "address", "phone", "genres",
		"website_link", "facebook_link", "image_link", "seeking_talent",
		"seeking_description", "created_at"}
	mock.ExpectQuery(`SELECT .+ FROM venues WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			int64(1), "The Musical Hop", "San Francisco", "CA", "1015 Folsom Street",
			"123-123-1234", `{"Jazz","Reggae"}`, "", "", "", true,
			"Looking for bands", time.Now()))

	v, err := store.GetVenue(context.Background(), 1)
	if err != nil {
		t.Fatalf("get venue: %v", err)
	}
	if len(v.Genres) != 2 || v.Genres[0] != "Jazz" {
		t.Fatalf("unexpected genres: %v", v.Genres)
	}
	if !v.SeekingTalent {
		t.Fatal("expected seeking_talent to scan true")
	}
}

func TestUpdateVenueNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE venues`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateVenue(context.Background(), venue.Venue{ID: 42, Name: "Gone"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteVenueCascadesInOneTx(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM shows WHERE venue_id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM venues WHERE id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.DeleteVenue(context.Background(), 1); err != nil {
		t.Fatalf("delete venue: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteVenueRollsBackWhenVenueDeleteFails(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM shows WHERE venue_id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM venues WHERE id`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := store.DeleteVenue(context.Background(), 1); err == nil {
		t.Fatal("expected delete to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("show deletes must not be committed: %v", err)
	}
}

func TestDeleteVenueNotFoundRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM shows WHERE venue_id`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM venues WHERE id`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := store.DeleteVenue(context.Background(), 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListShowsByVenueJoinsNames(t *testing.T) {
	store, mock := newMockStore(t)

	start := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	cols := []string{"id", "venue_id", "name", "image_link", "artist_id", "name", "image_link", "start_time"}
	mock.ExpectQuery(`SELECT s.id, s.venue_id`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			int64(1), int64(3), "The Musical Hop", "", int64(5), "Guns N Petals", "", start))

	details, err := store.ListShowsByVenue(context.Background(), 3)
	if err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	d := details[0]
	if d.VenueName != "The Musical Hop" || d.ArtistName != "Guns N Petals" || !d.StartTime.Equal(start) {
		t.Fatalf("unexpected detail: %+v", d)
	}
}
