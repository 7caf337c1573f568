package domain

import "time"

// MatchStatus tracks the referee-driven lifecycle of a match.
type MatchStatus string

const (
	MatchScheduled  MatchStatus = "SCHEDULED"
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchFinished   MatchStatus = "FINISHED"
	MatchCancelled  MatchStatus = "CANCELLED"
)

// MatchResult is the outcome of a finished (or in-progress) match. Empty
// means no result recorded yet.
type MatchResult string

const (
	ResultTeamA MatchResult = "TEAM_A"
	ResultTeamB MatchResult = "TEAM_B"
	ResultDraw  MatchResult = "DRAW"
)

// Valid reports whether r is a known result.
func (r MatchResult) Valid() bool {
	switch r {
	case ResultTeamA, ResultTeamB, ResultDraw:
		return true
	}
	return false
}

// Match is a scheduled confrontation between two teams in an arena.
type Match struct {
	ID          string
	TeamAID     string
	TeamBID     string
	ArenaID     string
	Date        time.Time
	Status      MatchStatus
	StartTime   *time.Time
	EndTime     *time.Time
	Observation string
	Result      MatchResult
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
