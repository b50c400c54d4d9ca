package domain

import "time"

// Track is a learning track a student registers into.
type Track struct {
	Slug        string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
