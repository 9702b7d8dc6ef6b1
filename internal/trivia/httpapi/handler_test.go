package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fullstacklab/appsuite/internal/logging"
	"github.com/fullstacklab/appsuite/internal/trivia/domain/question"
	"github.com/fullstacklab/appsuite/internal/trivia/services/questions"
	"github.com/fullstacklab/appsuite/internal/trivia/storage/memory"
)

func testHandler(t *testing.T, seedCount int) http.Handler {
	t.Helper()
	store := memory.New()
	for i := 0; i < seedCount; i++ {
		_, err := store.CreateQuestion(context.Background(), question.Question{
			Question:   fmt.Sprintf("Question %d?", i+1),
			Answer:     "42",
			Category:   1,
			Difficulty: 1,
		})
		if err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}
	logger := logging.New("trivia-test", "error", "text")
	return NewHandler(questions.New(store), logger)
}

func doJSON(handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("unmarshal response: %v: %s", err, resp.Body.String())
	}
	return data
}

func TestGetCategories(t *testing.T) {
	handler := testHandler(t, 0)

	resp := doJSON(handler, http.MethodGet, "/categories", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	data := decode(t, resp)
	categories := data["categories"].(map[string]interface{})
	if categories["1"] != "Science" || len(categories) != 6 {
		t.Fatalf("unexpected categories: %v", categories)
	}
}

func TestGetQuestionsPaginated(t *testing.T) {
	handler := testHandler(t, 15)

	resp := doJSON(handler, http.MethodGet, "/questions", nil)
	data := decode(t, resp)
	if resp.Code != http.StatusOK || data["success"] != true {
		t.Fatalf("expected success, got %d: %s", resp.Code, resp.Body.String())
	}
	if n := len(data["questions"].([]interface{})); n != 10 {
		t.Fatalf("expected 10 questions on page 1, got %d", n)
	}
	if data["total_questions"].(float64) != 15 {
		t.Fatalf("expected total 15, got %v", data["total_questions"])
	}

	resp = doJSON(handler, http.MethodGet, "/questions?page=2", nil)
	data = decode(t, resp)
	if n := len(data["questions"].([]interface{})); n != 5 {
		t.Fatalf("expected 5 questions on page 2, got %d", n)
	}
}

func TestGetQuestionsPastEnd(t *testing.T) {
	handler := testHandler(t, 5)

	resp := doJSON(handler, http.MethodGet, "/questions?page=100", nil)
	data := decode(t, resp)
	if resp.Code != http.StatusNotFound || data["message"] != "Resource Not Found" {
		t.Fatalf("expected 404 body, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateQuestion(t *testing.T) {
	handler := testHandler(t, 0)

	resp := doJSON(handler, http.MethodPost, "/questions", map[string]interface{}{
		"question":   "What boils at 100C?",
		"answer":     "Water",
		"category":   1,
		"difficulty": 2,
	})
	data := decode(t, resp)
	if resp.Code != http.StatusOK || data["success"] != true {
		t.Fatalf("create: %d: %s", resp.Code, resp.Body.String())
	}
	if n := len(data["questions"].([]interface{})); n != 1 {
		t.Fatalf("expected 1 question back, got %d", n)
	}
}

func TestCreateQuestionMissingField(t *testing.T) {
	handler := testHandler(t, 0)

	resp := doJSON(handler, http.MethodPost, "/questions", map[string]interface{}{
		"question": "Half a question",
	})
	data := decode(t, resp)
	if resp.Code != http.StatusUnprocessableEntity || data["message"] != "Unprocessable" {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeleteQuestion(t *testing.T) {
	handler := testHandler(t, 1)

	resp := doJSON(handler, http.MethodDelete, "/questions/1", nil)
	data := decode(t, resp)
	if resp.Code != http.StatusOK || data["deleted"].(float64) != 1 {
		t.Fatalf("delete: %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(handler, http.MethodDelete, "/questions/1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeat delete, got %d", resp.Code)
	}
}

func TestSearchQuestions(t *testing.T) {
	handler := testHandler(t, 3)

	resp := doJSON(handler, http.MethodPost, "/questions/search", map[string]string{
		"searchTerm": "question 2",
	})
	data := decode(t, resp)
	if resp.Code != http.StatusOK {
		t.Fatalf("search: %d: %s", resp.Code, resp.Body.String())
	}
	if data["total_questions"].(float64) != 1 {
		t.Fatalf("expected 1 match, got %v", data["total_questions"])
	}
}

func TestQuestionsByCategory(t *testing.T) {
	handler := testHandler(t, 4)

	resp := doJSON(handler, http.MethodGet, "/categories/1/questions", nil)
	data := decode(t, resp)
	if resp.Code != http.StatusOK || data["current_category"].(float64) != 1 {
		t.Fatalf("by category: %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(handler, http.MethodGet, "/categories/99/questions", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", resp.Code)
	}
}

func TestPlayQuiz(t *testing.T) {
	handler := testHandler(t, 2)

	asked := []int64{}
	for i := 0; i < 2; i++ {
		resp := doJSON(handler, http.MethodPost, "/quizzes", map[string]interface{}{
			"previous_questions": asked,
			"quiz_category":      map[string]interface{}{"id": 0},
		})
		data := decode(t, resp)
		if resp.Code != http.StatusOK {
			t.Fatalf("quiz round %d: %d: %s", i, resp.Code, resp.Body.String())
		}
		q := data["question"].(map[string]interface{})
		asked = append(asked, int64(q["id"].(float64)))
	}

	resp := doJSON(handler, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": asked,
		"quiz_category":      map[string]interface{}{"id": 0},
	})
	data := decode(t, resp)
	if resp.Code != http.StatusOK || data["question"] != nil {
		t.Fatalf("expected null question when exhausted: %s", resp.Body.String())
	}
}

func TestPlayQuizMissingCategory(t *testing.T) {
	handler := testHandler(t, 1)

	resp := doJSON(handler, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int64{},
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestUnknownRouteBody(t *testing.T) {
	handler := testHandler(t, 0)

	resp := doJSON(handler, http.MethodGet, "/question", nil)
	data := decode(t, resp)
	if resp.Code != http.StatusNotFound || data["error"].(float64) != 404 {
		t.Fatalf("expected JSON 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMethodNotAllowedBody(t *testing.T) {
	handler := testHandler(t, 0)

	resp := doJSON(handler, http.MethodPut, "/questions", nil)
	data := decode(t, resp)
	if resp.Code != http.StatusMethodNotAllowed || data["message"] != "Method Not Allowed" {
		t.Fatalf("expected JSON 405, got %d: %s", resp.Code, resp.Body.String())
	}
}
