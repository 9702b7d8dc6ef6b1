package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fullstacklab/appsuite/internal/encore/services/artists"
	"github.com/fullstacklab/appsuite/internal/encore/services/shows"
	"github.com/fullstacklab/appsuite/internal/encore/services/venues"
	"github.com/fullstacklab/appsuite/internal/encore/storage/memory"
	"github.com/fullstacklab/appsuite/internal/encore/web"
	"github.com/fullstacklab/appsuite/internal/logging"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	store := memory.New()
	logger := logging.New("encore-test", "error", "text")
	return NewHandler(renderer,
		venues.New(store, store),
		artists.New(store, store),
		shows.New(store),
		logger)
}

func postForm(handler http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func venueForm(name string) url.Values {
	return url.Values{
		"name":   {name},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"phone":  {"123-123-1234"},
		"genres": {"Jazz,Reggae"},
	}
}

func artistForm(name string) url.Values {
	return url.Values{
		"name":   {name},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Rock n Roll"},
	}
}

func TestVenueLifecycle(t *testing.T) {
	handler := testHandler(t)

	resp := postForm(handler, "/venues/create", venueForm("The Musical Hop"))
	if resp.Code != http.StatusOK {
		t.Fatalf("create venue: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "successfully listed") {
		t.Fatalf("expected flash message, got: %s", resp.Body.String())
	}

	resp = get(handler, "/venues")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "The Musical Hop") {
		t.Fatalf("venue list: code %d body %s", resp.Code, resp.Body.String())
	}

	resp = get(handler, "/venues/1")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Upcoming Shows (0)") {
		t.Fatalf("venue page: code %d body %s", resp.Code, resp.Body.String())
	}

	resp = postForm(handler, "/venues/1/edit", venueForm("The Musical Hop Annex"))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "successfully updated") {
		t.Fatalf("edit venue: code %d body %s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	del := httptest.NewRecorder()
	handler.ServeHTTP(del, req)
	if del.Code != http.StatusOK || !strings.Contains(del.Body.String(), `"success":true`) {
		t.Fatalf("delete venue: code %d body %s", del.Code, del.Body.String())
	}

	resp = get(handler, "/venues/1")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestCreateVenueValidation(t *testing.T) {
	handler := testHandler(t)

	form := venueForm("")
	resp := postForm(handler, "/venues/create", form)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Name is required.") {
		t.Fatalf("expected field error in body: %s", resp.Body.String())
	}
}

func TestSearchVenues(t *testing.T) {
	handler := testHandler(t)
	postForm(handler, "/venues/create", venueForm("The Musical Hop"))
	postForm(handler, "/venues/create", venueForm("The Dueling Pianos Bar"))

	resp := postForm(handler, "/venues/search", url.Values{"search_term": {"hop"}})
	if resp.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, `Number of search results for "hop": 1`) {
		t.Fatalf("unexpected search page: %s", body)
	}
}

func TestArtistAndShowLifecycle(t *testing.T) {
	handler := testHandler(t)

	resp := postForm(handler, "/artists/create", artistForm("Guns N Petals"))
	if resp.Code != http.StatusOK {
		t.Fatalf("create artist: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	postForm(handler, "/venues/create", venueForm("The Musical Hop"))

	resp = postForm(handler, "/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"2"},
		"start_time": {"2035-06-15 20:00:00"},
	})
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Show was successfully listed!") {
		t.Fatalf("create show: code %d body %s", resp.Code, resp.Body.String())
	}

	resp = get(handler, "/artists/1")
	if !strings.Contains(resp.Body.String(), "Upcoming Shows (1)") {
		t.Fatalf("expected upcoming show on artist page: %s", resp.Body.String())
	}

	resp = postForm(handler, "/shows/create", url.Values{
		"artist_id":  {"99"},
		"venue_id":   {"2"},
		"start_time": {"2035-06-15 20:00:00"},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown artist, got %d", resp.Code)
	}
}

func TestHomeListsRecent(t *testing.T) {
	handler := testHandler(t)
	postForm(handler, "/artists/create", artistForm("Guns N Petals"))
	postForm(handler, "/venues/create", venueForm("The Musical Hop"))

	resp := get(handler, "/")
	body := resp.Body.String()
	if resp.Code != http.StatusOK || !strings.Contains(body, "Guns N Petals") || !strings.Contains(body, "The Musical Hop") {
		t.Fatalf("home page: code %d body %s", resp.Code, body)
	}
}

func TestUnknownPageRenders404(t *testing.T) {
	handler := testHandler(t)
	resp := get(handler, "/no-such-page")
	if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), "404") {
		t.Fatalf("expected rendered 404 page, got code %d", resp.Code)
	}
}
