// Package memory provides an in-memory trivia store for tests and local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fullstacklab/appsuite/internal/trivia/domain/category"
	"github.com/fullstacklab/appsuite/internal/trivia/domain/question"
	"github.com/fullstacklab/appsuite/internal/trivia/storage"
)

// Store keeps questions and categories in process memory.
type Store struct {
	mu         sync.RWMutex
	questions  map[int64]question.Question
	categories map[int64]category.Category
	nextID     int64
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store preloaded with the standard categories.
func New() *Store {
	s := &Store{
		questions:  make(map[int64]question.Question),
		categories: make(map[int64]category.Category),
	}
	for i, typ := range []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"} {
		id := int64(i + 1)
		s.categories[id] = category.Category{ID: id, Type: typ}
	}
	return s
}

func (s *Store) CreateQuestion(_ context.Context, q question.Question) (question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	q.ID = s.nextID
	s.questions[q.ID] = q
	return q, nil
}

func (s *Store) GetQuestion(_ context.Context, id int64) (question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return question.Question{}, storage.ErrNotFound
	}
	return q, nil
}

func (s *Store) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *Store) ListQuestions(_ context.Context) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(func(question.Question) bool { return true }), nil
}

func (s *Store) SearchQuestions(_ context.Context, term string) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lower := strings.ToLower(term)
	return s.selectLocked(func(q question.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), lower)
	}), nil
}

func (s *Store) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]question.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(func(q question.Question) bool { return q.Category == categoryID }), nil
}

func (s *Store) QuizCandidates(_ context.Context, categoryID int64, excluded []int64) ([]question.Question, error) {
	skip := make(map[int64]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectLocked(func(q question.Question) bool {
		if skip[q.ID] {
			return false
		}
		return categoryID == 0 || q.Category == categoryID
	}), nil
}

// selectLocked returns matching questions ordered by id.
func (s *Store) selectLocked(match func(question.Question) bool) []question.Question {
	var out []question.Question
	for _, q := range s.questions {
		if match(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListCategories(_ context.Context) ([]category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return category.Category{}, storage.ErrNotFound
	}
	return c, nil
}
