// Package question defines the trivia question record.
package question

// Question is a single trivia question.
type Question struct {
	ID         int64  `json:"id" db:"id"`
	Question   string `json:"question" db:"question"`
	Answer     string `json:"answer" db:"answer"`
	Category   int64  `json:"category" db:"category"`
	Difficulty int    `json:"difficulty" db:"difficulty"`
}
