// Package questions implements the trivia API's question rules: pagination,
// search, and quiz selection.
package questions

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/fullstacklab/appsuite/internal/trivia/domain/question"
	"github.com/fullstacklab/appsuite/internal/trivia/storage"
)

// PageSize is the number of questions per page.
const PageSize = 10

// PageResult is one page of questions plus the size of the full set.
type PageResult struct {
	Questions []question.Question
	Total     int
}

// Service implements question operations over the stores.
type Service struct {
	store storage.Store
	pick  func(n int) int
}

// New creates the question service.
func New(store storage.Store) *Service {
	return &Service{store: store, pick: rand.Intn}
}

// paginate slices the full set down to the requested page. Pages are
// 1-based; anything below 1 is treated as the first page.
func paginate(all []question.Question, page int) PageResult {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	selection := all[start:end]
	if selection == nil {
		selection = []question.Question{}
	}
	return PageResult{Questions: selection, Total: len(all)}
}

// Page returns one page of all questions ordered by id. A page past the
// end of the set is a not-found condition.
func (s *Service) Page(ctx context.Context, page int) (PageResult, error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return PageResult{}, err
	}
	result := paginate(all, page)
	if len(result.Questions) == 0 {
		return PageResult{}, storage.ErrNotFound
	}
	return result, nil
}

// Categories returns every category keyed by id, for the {id: type} maps
// the API serves.
func (s *Service) Categories(ctx context.Context) (map[int64]string, error) {
	all, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(all))
	for _, c := range all {
		out[c.ID] = c.Type
	}
	return out, nil
}

// Create validates and stores a new question, returning the first page of
// the grown set.
func (s *Service) Create(ctx context.Context, q question.Question, page int) (PageResult, error) {
	if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" ||
		q.Category == 0 || q.Difficulty == 0 {
		return PageResult{}, fmt.Errorf("question, answer, category and difficulty are all required")
	}
	if _, err := s.store.CreateQuestion(ctx, q); err != nil {
		return PageResult{}, err
	}
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return PageResult{}, err
	}
	return paginate(all, page), nil
}

// Delete removes a question by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteQuestion(ctx, id)
}

// Search returns the page of questions whose text contains the term.
func (s *Service) Search(ctx context.Context, term string, page int) (PageResult, error) {
	found, err := s.store.SearchQuestions(ctx, term)
	if err != nil {
		return PageResult{}, err
	}
	return paginate(found, page), nil
}

// ByCategory returns the page of questions in a category. An unknown
// category or an empty page is a not-found condition.
func (s *Service) ByCategory(ctx context.Context, categoryID int64, page int) (PageResult, error) {
	if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
		return PageResult{}, err
	}
	found, err := s.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return PageResult{}, err
	}
	result := paginate(found, page)
	if len(result.Questions) == 0 {
		return PageResult{}, storage.ErrNotFound
	}
	return result, nil
}

// NextQuizQuestion picks a random question from the category (0 means all
// categories) that has not been asked yet. It returns nil when every
// candidate has been used, which ends the quiz.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*question.Question, error) {
	candidates, err := s.store.QuizCandidates(ctx, categoryID, previous)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	q := candidates[s.pick(len(candidates))]
	return &q, nil
}
