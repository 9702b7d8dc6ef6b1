// Package httpapi exposes the trivia question API.
//
// Every response carries a "success" flag; errors use the fixed
// {"success": false, "error": <status>, "message": <text>} body.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fullstacklab/appsuite/internal/logging"
	"github.com/fullstacklab/appsuite/internal/trivia/domain/question"
	"github.com/fullstacklab/appsuite/internal/trivia/services/questions"
	"github.com/fullstacklab/appsuite/internal/trivia/storage"
)

// handler bundles the trivia API's HTTP endpoints.
type handler struct {
	questions *questions.Service
	logger    *logging.Logger
}

// NewHandler returns a router exposing the trivia API.
func NewHandler(svc *questions.Service, logger *logging.Logger) *mux.Router {
	h := &handler{questions: svc, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/categories", h.getCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}/questions", h.getQuestionsByCategory).Methods(http.MethodGet)
	r.HandleFunc("/questions", h.getQuestions).Methods(http.MethodGet)
	r.HandleFunc("/questions", h.createQuestion).Methods(http.MethodPost)
	r.HandleFunc("/questions/{id:[0-9]+}", h.deleteQuestion).Methods(http.MethodDelete)
	r.HandleFunc("/questions/search", h.searchQuestions).Methods(http.MethodPost)
	r.HandleFunc("/quizzes", h.playQuiz).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusMethodNotAllowed)
	})
	return r
}

var apiMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Resource Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
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

// fail logs unexpected errors and maps the rest onto the API's fixed
// error bodies.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeAPIError(w, http.StatusNotFound)
		return
	}
	h.logger.WithContext(r.Context()).WithError(err).Error("request failed")
	writeAPIError(w, http.StatusInternalServerError)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (h *handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.questions.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(categories) == 0 {
		writeAPIError(w, http.StatusNotFound)
		return
	}
	writeSuccess(w, map[string]interface{}{"categories": categories})
}

func (h *handler) getQuestions(w http.ResponseWriter, r *http.Request) {
	result, err := h.questions.Page(r.Context(), pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.questions.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"questions":       result.Questions,
		"total_questions": result.Total,
		"categories":      categories,
	})
}

func (h *handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Question   string `json:"question"`
		Answer     string `json:"answer"`
		Category   int64  `json:"category"`
		Difficulty int    `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest)
		return
	}

	q := question.Question{
		Question:   body.Question,
		Answer:     body.Answer,
		Category:   body.Category,
		Difficulty: body.Difficulty,
	}
	result, err := h.questions.Create(r.Context(), q, pageParam(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.fail(w, r, err)
			return
		}
		writeAPIError(w, http.StatusUnprocessableEntity)
		return
	}
	writeSuccess(w, map[string]interface{}{"questions": result.Questions})
}

func (h *handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := h.questions.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"deleted": id})
}

func (h *handler) searchQuestions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIError(w, http.StatusBadRequest)
		return
	}

	result, err := h.questions.Search(r.Context(), body.SearchTerm, pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.questions.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"status":          http.StatusOK,
		"questions":       result.Questions,
		"total_questions": result.Total,
		"categories":      categories,
	})
}

func (h *handler) getQuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	result, err := h.questions.ByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{
		"questions":        result.Questions,
		"total_questions":  len(result.Questions),
		"current_category": id,
	})
}

func (h *handler) playQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PreviousQuestions []int64 `json:"previous_questions"`
		QuizCategory      *struct {
			ID int64 `json:"id"`
		} `json:"quiz_category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.QuizCategory == nil {
		writeAPIError(w, http.StatusUnprocessableEntity)
		return
	}

	next, err := h.questions.NextQuizQuestion(r.Context(), body.QuizCategory.ID, body.PreviousQuestions)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"question": next})
}
