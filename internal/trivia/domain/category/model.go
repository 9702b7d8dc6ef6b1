// Package category defines the trivia category record.
package category

// Category is a question category such as Science or Art.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Type string `json:"type" db:"type"`
}
