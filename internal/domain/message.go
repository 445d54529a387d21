package domain

import "time"

// Message is an inbox notification addressed to the active role.
type Message struct {
	ID        string    `json:"id"        yaml:"id"`
	Title     string    `json:"title"     yaml:"title"`
	Body      string    `json:"body"      yaml:"body"`
	Read      bool      `json:"read"      yaml:"read"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}
