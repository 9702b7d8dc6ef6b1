// Package storage defines the persistence interfaces for the trivia API.
package storage

import (
	"context"
	"errors"

	"github.com/fullstacklab/appsuite/internal/trivia/domain/category"
	"github.com/fullstacklab/appsuite/internal/trivia/domain/question"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// QuestionStore persists trivia questions.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, q question.Question) (question.Question, error)
	GetQuestion(ctx context.Context, id int64) (question.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	// ListQuestions returns every question ordered by id.
	ListQuestions(ctx context.Context) ([]question.Question, error)
	// SearchQuestions matches the term against the question text,
	// case-insensitively.
	SearchQuestions(ctx context.Context, term string) ([]question.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]question.Question, error)
	// QuizCandidates returns the questions in the category (0 means any)
	// whose ids are not in excluded.
	QuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]question.Question, error)
}

// CategoryStore persists question categories.
type CategoryStore interface {
	// ListCategories returns every category ordered by type.
	ListCategories(ctx context.Context) ([]category.Category, error)
	GetCategory(ctx context.Context, id int64) (category.Category, error)
}

// Store combines all trivia stores.
type Store interface {
	QuestionStore
	CategoryStore
}
