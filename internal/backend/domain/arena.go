package domain

import "time"

// Arena is a physical competition area, optionally streamed, belonging to
// one category.
type Arena struct {
	ID          string
	Name        string
	YoutubeLink string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
