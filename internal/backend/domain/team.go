package domain

import "time"

// Team is a registered competitor with a single robot, competing in one
// category.
type Team struct {
	ID         string
	Name       string
	RobotName  string
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
