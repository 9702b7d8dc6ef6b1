// Package postgres implements the trivia stores backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fullstacklab/appsuite/internal/trivia/domain/category"
	"github.com/fullstacklab/appsuite/internal/trivia/domain/question"
	"github.com/fullstacklab/appsuite/internal/trivia/storage"
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

const questionColumns = `id, question, answer, category, difficulty`

func (s *Store) CreateQuestion(ctx context.Context, q question.Question) (question.Question, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, q.Question, q.Answer, q.Category, q.Difficulty).Scan(&q.ID)
	if err != nil {
		return question.Question{}, err
	}
	return q, nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (question.Question, error) {
	var q question.Question
	err := s.db.GetContext(ctx, &q, `
		SELECT `+questionColumns+` FROM questions WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, storage.ErrNotFound
	}
	if err != nil {
		return question.Question{}, err
	}
	return q, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListQuestions(ctx context.Context) ([]question.Question, error) {
	var out []question.Question
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+questionColumns+` FROM questions ORDER BY id
	`)
	return out, err
}

func (s *Store) SearchQuestions(ctx context.Context, term string) ([]question.Question, error) {
	var out []question.Question
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+questionColumns+` FROM questions WHERE question ILIKE $1 ORDER BY id
	`, "%"+term+"%")
	return out, err
}

func (s *Store) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]question.Question, error) {
	var out []question.Question
	err := s.db.SelectContext(ctx, &out, `
		SELECT `+questionColumns+` FROM questions WHERE category = $1 ORDER BY id
	`, categoryID)
	return out, err
}

func (s *Store) QuizCandidates(ctx context.Context, categoryID int64, excluded []int64) ([]question.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE 1=1`
	args := []interface{}{}
	if categoryID > 0 {
		query += ` AND category = ?`
		args = append(args, categoryID)
	}
	if len(excluded) > 0 {
		query += ` AND id NOT IN (?)`
		args = append(args, excluded)
	}
	query += ` ORDER BY id`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	var out []question.Question
	err = s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...)
	return out, err
}

func (s *Store) ListCategories(ctx context.Context) ([]category.Category, error) {
	var out []category.Category
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, type FROM categories ORDER BY type
	`)
	return out, err
}

func (s *Store) GetCategory(ctx context.Context, id int64) (category.Category, error) {
	var c category.Category
	err := s.db.GetContext(ctx, &c, `
		SELECT id, type FROM categories WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return category.Category{}, storage.ErrNotFound
	}
	if err != nil {
		return category.Category{}, err
	}
	return c, nil
}
