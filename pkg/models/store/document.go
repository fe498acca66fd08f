package store

import "time"

// Document is a built report definition as persisted for later resolution.
type Document struct {
	ID        string
	Session   string
	Dataset   string
	Request   []byte
	Body      []byte
	CreatedAt time.Time
}
