// Package httpapi wires the booking site's routes to its services and
// HTML renderer.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fullstacklab/appsuite/internal/encore/forms"
	"github.com/fullstacklab/appsuite/internal/encore/services/artists"
	"github.com/fullstacklab/appsuite/internal/encore/services/shows"
	"github.com/fullstacklab/appsuite/internal/encore/services/venues"
	"github.com/fullstacklab/appsuite/internal/encore/storage"
	"github.com/fullstacklab/appsuite/internal/encore/web"
	apperrors "github.com/fullstacklab/appsuite/internal/errors"
	"github.com/fullstacklab/appsuite/internal/httputil"
	"github.com/fullstacklab/appsuite/internal/logging"
)

const recentLimit = 10

// handler bundles the booking site's HTTP endpoints.
type handler struct {
	renderer *web.Renderer
	venues   *venues.Service
	artists  *artists.Service
	shows    *shows.Service
	logger   *logging.Logger
}

// NewHandler returns a router exposing the booking site.
func NewHandler(renderer *web.Renderer, v *venues.Service, a *artists.Service, s *shows.Service, logger *logging.Logger) *mux.Router {
	h := &handler{renderer: renderer, venues: v, artists: a, shows: s, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/", h.home).Methods(http.MethodGet)

	r.HandleFunc("/venues", h.listVenues).Methods(http.MethodGet)
	r.HandleFunc("/venues/search", h.searchVenues).Methods(http.MethodPost)
	r.HandleFunc("/venues/create", h.createVenueForm).Methods(http.MethodGet)
	r.HandleFunc("/venues/create", h.createVenue).Methods(http.MethodPost)
	r.HandleFunc("/venues/{id:[0-9]+}", h.showVenue).Methods(http.MethodGet)
	r.HandleFunc("/venues/{id:[0-9]+}", h.deleteVenue).Methods(http.MethodDelete)
	r.HandleFunc("/venues/{id:[0-9]+}/edit", h.editVenueForm).Methods(http.MethodGet)
	r.HandleFunc("/venues/{id:[0-9]+}/edit", h.editVenue).Methods(http.MethodPost)

	r.HandleFunc("/artists", h.listArtists).Methods(http.MethodGet)
	r.HandleFunc("/artists/search", h.searchArtists).Methods(http.MethodPost)
	r.HandleFunc("/artists/create", h.createArtistForm).Methods(http.MethodGet)
	r.HandleFunc("/artists/create", h.createArtist).Methods(http.MethodPost)
	r.HandleFunc("/artists/{id:[0-9]+}", h.showArtist).Methods(http.MethodGet)
	r.HandleFunc("/artists/{id:[0-9]+}", h.deleteArtist).Methods(http.MethodDelete)
	r.HandleFunc("/artists/{id:[0-9]+}/edit", h.editArtistForm).Methods(http.MethodGet)
	r.HandleFunc("/artists/{id:[0-9]+}/edit", h.editArtist).Methods(http.MethodPost)

	r.HandleFunc("/shows", h.listShows).Methods(http.MethodGet)
	r.HandleFunc("/shows/create", h.createShowForm).Methods(http.MethodGet)
	r.HandleFunc("/shows/create", h.createShow).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	return r
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, status int, name string, page web.Page) {
	if err := h.renderer.Render(w, status, name, page); err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("render page")
	}
}

// renderError shows the 404 or 500 page depending on the failure.
func (h *handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	h.logger.WithContext(r.Context()).WithError(err).Error("request failed")
	h.render(w, r, http.StatusInternalServerError, "error500", web.Page{Title: "Server Error"})
}

func (h *handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error404", web.Page{Title: "Not Found"})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	recentArtists, err := h.artists.Recent(r.Context(), recentLimit)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	recentVenues, err := h.venues.Recent(r.Context(), recentLimit)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "home", web.Page{Title: "Home", Data: map[string]interface{}{
		"RecentArtists": recentArtists,
		"RecentVenues":  recentVenues,
	}})
}

func (h *handler) listVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := h.venues.Areas(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "venues", web.Page{Title: "Venues", Data: map[string]interface{}{
		"Areas": areas,
	}})
}

func (h *handler) searchVenues(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	term := r.PostFormValue("search_term")
	result, err := h.venues.Search(r.Context(), term)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search_venues", web.Page{Title: "Search Venues", Data: map[string]interface{}{
		"SearchTerm": term,
		"Results":    result,
	}})
}

func (h *handler) showVenue(w http.ResponseWriter, r *http.Request) {
	page, err := h.venues.Get(r.Context(), pathID(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_venue", web.Page{Title: page.Venue.Name, Data: page})
}

func (h *handler) createVenueForm(w http.ResponseWriter, r *http.Request) {
	h.renderVenueForm(w, r, http.StatusOK, "New Venue", "/venues/create", forms.VenueForm{}, nil)
}

func (h *handler) createVenue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	form := forms.ParseVenue(r.PostForm)
	if errs := form.Validate(); len(errs) > 0 {
		h.renderVenueForm(w, r, http.StatusBadRequest, "New Venue", "/venues/create", form, errs)
		return
	}

	created, err := h.venues.Create(r.Context(), form.Venue())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	page, err := h.venues.Get(r.Context(), created.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_venue", web.Page{
		Title: created.Name,
		Flash: []string{fmt.Sprintf("Venue %s was successfully listed!", created.Name)},
		Data:  page,
	})
}

func (h *handler) editVenueForm(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	page, err := h.venues.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	action := fmt.Sprintf("/venues/%d/edit", id)
	h.renderVenueForm(w, r, http.StatusOK, "Edit "+page.Venue.Name, action, forms.FromVenue(page.Venue), nil)
}

func (h *handler) editVenue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	id := pathID(r)
	action := fmt.Sprintf("/venues/%d/edit", id)

	form := forms.ParseVenue(r.PostForm)
	if errs := form.Validate(); len(errs) > 0 {
		h.renderVenueForm(w, r, http.StatusBadRequest, "Edit Venue", action, form, errs)
		return
	}

	updated := form.Venue()
	updated.ID = id
	if _, err := h.venues.Update(r.Context(), updated); err != nil {
		h.renderError(w, r, err)
		return
	}
	page, err := h.venues.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_venue", web.Page{
		Title: page.Venue.Name,
		Flash: []string{fmt.Sprintf("Venue %s was successfully updated!", page.Venue.Name)},
		Data:  page,
	})
}

func (h *handler) deleteVenue(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := h.venues.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteServiceError(w, apperrors.NotFound("venue not found"))
			return
		}
		h.logger.WithContext(r.Context()).WithError(err).Error("delete venue")
		httputil.WriteServiceError(w, apperrors.Internal("could not delete venue", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deleted": id})
}

func (h *handler) renderVenueForm(w http.ResponseWriter, r *http.Request, status int, heading, action string, form forms.VenueForm, errs forms.Errors) {
	h.render(w, r, status, "venue_form", web.Page{Title: heading, Data: map[string]interface{}{
		"Heading": heading,
		"Action":  action,
		"Form":    form,
		"Errors":  errs,
		"States":  forms.States(),
	}})
}

func (h *handler) listArtists(w http.ResponseWriter, r *http.Request) {
	all, err := h.artists.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "artists", web.Page{Title: "Artists", Data: map[string]interface{}{
		"Artists": all,
	}})
}

func (h *handler) searchArtists(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	term := r.PostFormValue("search_term")
	result, err := h.artists.Search(r.Context(), term)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search_artists", web.Page{Title: "Search Artists", Data: map[string]interface{}{
		"SearchTerm": term,
		"Results":    result,
	}})
}

func (h *handler) showArtist(w http.ResponseWriter, r *http.Request) {
	page, err := h.artists.Get(r.Context(), pathID(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_artist", web.Page{Title: page.Artist.Name, Data: page})
}

func (h *handler) createArtistForm(w http.ResponseWriter, r *http.Request) {
	h.renderArtistForm(w, r, http.StatusOK, "New Artist", "/artists/create", forms.ArtistForm{}, nil)
}

func (h *handler) createArtist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	form := forms.ParseArtist(r.PostForm)
	if errs := form.Validate(); len(errs) > 0 {
		h.renderArtistForm(w, r, http.StatusBadRequest, "New Artist", "/artists/create", form, errs)
		return
	}

	created, err := h.artists.Create(r.Context(), form.Artist())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	page, err := h.artists.Get(r.Context(), created.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_artist", web.Page{
		Title: created.Name,
		Flash: []string{fmt.Sprintf("Artist %s was successfully listed!", created.Name)},
		Data:  page,
	})
}

func (h *handler) editArtistForm(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	page, err := h.artists.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	action := fmt.Sprintf("/artists/%d/edit", id)
	h.renderArtistForm(w, r, http.StatusOK, "Edit "+page.Artist.Name, action, forms.FromArtist(page.Artist), nil)
}

func (h *handler) editArtist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	id := pathID(r)
	action := fmt.Sprintf("/artists/%d/edit", id)

	form := forms.ParseArtist(r.PostForm)
	if errs := form.Validate(); len(errs) > 0 {
		h.renderArtistForm(w, r, http.StatusBadRequest, "Edit Artist", action, form, errs)
		return
	}

	updated := form.Artist()
	updated.ID = id
	if _, err := h.artists.Update(r.Context(), updated); err != nil {
		h.renderError(w, r, err)
		return
	}
	page, err := h.artists.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_artist", web.Page{
		Title: page.Artist.Name,
		Flash: []string{fmt.Sprintf("Artist %s was successfully updated!", page.Artist.Name)},
		Data:  page,
	})
}

func (h *handler) deleteArtist(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := h.artists.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteServiceError(w, apperrors.NotFound("artist not found"))
			return
		}
		h.logger.WithContext(r.Context()).WithError(err).Error("delete artist")
		httputil.WriteServiceError(w, apperrors.Internal("could not delete artist", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deleted": id})
}

func (h *handler) renderArtistForm(w http.ResponseWriter, r *http.Request, status int, heading, action string, form forms.ArtistForm, errs forms.Errors) {
	h.render(w, r, status, "artist_form", web.Page{Title: heading, Data: map[string]interface{}{
		"Heading": heading,
		"Action":  action,
		"Form":    form,
		"Errors":  errs,
		"States":  forms.States(),
	}})
}

func (h *handler) listShows(w http.ResponseWriter, r *http.Request) {
	all, err := h.shows.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shows", web.Page{Title: "Shows", Data: map[string]interface{}{
		"Shows": all,
	}})
}

func (h *handler) createShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderShowForm(w, r, http.StatusOK, forms.ShowForm{}, nil)
}

func (h *handler) createShow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, err)
		return
	}
	form := forms.ParseShow(r.PostForm)
	if errs := form.Validate(); len(errs) > 0 {
		h.renderShowForm(w, r, http.StatusBadRequest, form, errs)
		return
	}

	if _, err := h.shows.Create(r.Context(), form.Show()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			errs := forms.Errors{"artist_id": "Artist or venue does not exist."}
			h.renderShowForm(w, r, http.StatusBadRequest, form, errs)
			return
		}
		h.renderError(w, r, err)
		return
	}

	all, err := h.shows.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shows", web.Page{
		Title: "Shows",
		Flash: []string{"Show was successfully listed!"},
		Data:  map[string]interface{}{"Shows": all},
	})
}

func (h *handler) renderShowForm(w http.ResponseWriter, r *http.Request, status int, form forms.ShowForm, errs forms.Errors) {
	h.render(w, r, status, "show_form", web.Page{Title: "New Show", Data: map[string]interface{}{
		"Form":   form,
		"Errors": errs,
	}})
}
