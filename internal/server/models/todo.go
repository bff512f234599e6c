package models

import "time"

// Todo is a single task owned by exactly one user. UserID is set at creation
// and never reassigned; every read and write is filtered by it.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"todo"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"-"`
}
