// Package httpapi exposes the coffee shop's drink API. Reads of the menu
// are public; everything else sits behind a permission check.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fullstacklab/appsuite/internal/coffeeshop/domain/drink"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/services/drinks"
	"github.com/fullstacklab/appsuite/internal/coffeeshop/storage"
	"github.com/fullstacklab/appsuite/internal/logging"
	"github.com/fullstacklab/appsuite/internal/middleware"
)

// handler bundles the coffee shop's HTTP endpoints.
type handler struct {
	drinks *drinks.Service
	logger *logging.Logger
}

// NewHandler returns a router exposing the drink API, with the write and
// detail routes guarded by the authenticator.
func NewHandler(svc *drinks.Service, authn *middleware.Authenticator, logger *logging.Logger) *mux.Router {
	h := &handler{drinks: svc, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/drinks", h.getDrinks).Methods(http.MethodGet)
	r.HandleFunc("/drinks-detail",
		authn.RequirePermission("get:drinks-detail", h.getDrinksDetail)).Methods(http.MethodGet)
	r.HandleFunc("/drinks",
		authn.RequirePermission("post:drinks", h.postDrink)).Methods(http.MethodPost)
	r.HandleFunc("/drinks/{id:[0-9]+}",
		authn.RequirePermission("patch:drinks", h.patchDrink)).Methods(http.MethodPatch)
	r.HandleFunc("/drinks/{id:[0-9]+}",
		authn.RequirePermission("delete:drinks", h.deleteDrink)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound)
	})
	return r
}

var apiMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Resource Not Found",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusInternalServerError: "Internal Server Error",
}

func writeAPIError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   status,
		"message": apiMessages[status],
	})
}

func writeSuccess(w http.ResponseWriter, body map[string]interface{}) {
	body["success"] = true
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeAPIError(w, http.StatusNotFound)
	case errors.Is(err, drinks.ErrInvalidRecipe), errors.Is(err, drinks.ErrInvalidTitle):
		writeAPIError(w, http.StatusUnprocessableEntity)
	default:
		h.logger.WithContext(r.Context()).WithError(err).Error("request failed")
		writeAPIError(w, http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func shortDrinks(all []drink.Drink) []drink.ShortDrink {
	out := make([]drink.ShortDrink, 0, len(all))
	for _, d := range all {
		out = append(out, d.Short())
	}
	return out
}

func (h *handler) index(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, map[string]interface{}{
		"message": "Welcome to Coffee Shop, what can I get you?",
	})
}

func (h *handler) getDrinks(w http.ResponseWriter, r *http.Request) {
	all, err := h.drinks.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"drinks": shortDrinks(all)})
}

func (h *handler) getDrinksDetail(w http.ResponseWriter, r *http.Request) {
	all, err := h.drinks.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if all == nil {
		all = []drink.Drink{}
	}
	writeSuccess(w, map[string]interface{}{"drinks": all})
}

func (h *handler) postDrink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  string          `json:"title"`
		Recipe json.RawMessage `json:"recipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest)
		return
	}

	created, err := h.drinks.Create(r.Context(), body.Title, body.Recipe)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"drinks": []drink.Drink{created}})
}

func (h *handler) patchDrink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  *string         `json:"title"`
		Recipe json.RawMessage `json:"recipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest)
		return
	}

	updated, err := h.drinks.Update(r.Context(), pathID(r), body.Title, body.Recipe)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"drinks": []drink.Drink{updated}})
}

func (h *handler) deleteDrink(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := h.drinks.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"delete": id})
}
