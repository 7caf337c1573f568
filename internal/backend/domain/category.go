package domain

import "time"

// Category is a competition class (line follower, sumo, ...) with its own
// scoring rules. Arenas and teams reference categories.
type Category struct {
	ID          string
	Name        string
	Description string
	ScoreRules  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
