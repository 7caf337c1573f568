package http

import (
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
)

// Response DTOs. Domain structs stay transport-agnostic; these carry the
// wire shape, and the user one strips every hash.

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ScoreRules  string    `json:"score_rules,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ScoreRules:  c.ScoreRules,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type arenaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	YoutubeLink string    `json:"youtube_link,omitempty"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toArenaResponse(a domain.Arena) arenaResponse {
	return arenaResponse{
		ID:          a.ID,
		Name:        a.Name,
		YoutubeLink: a.YoutubeLink,
		CategoryID:  a.CategoryID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type teamResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	RobotName  string    `json:"robot_name"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toTeamResponse(t domain.Team) teamResponse {
	return teamResponse{
		ID:         t.ID,
		Name:       t.Name,
		RobotName:  t.RobotName,
		CategoryID: t.CategoryID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

type matchResponse struct {
	ID          string     `json:"id"`
	TeamAID     string     `json:"team_a_id"`
	TeamBID     string     `json:"team_b_id"`
	ArenaID     string     `json:"arena_id"`
	Date        time.Time  `json:"date"`
	Status      string     `json:"status"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Observation string     `json:"observation,omitempty"`
	Result      string     `json:"result,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toMatchResponse(m domain.Match) matchResponse {
	return matchResponse{
		ID:          m.ID,
		TeamAID:     m.TeamAID,
		TeamBID:     m.TeamBID,
		ArenaID:     m.ArenaID,
		Date:        m.Date,
		Status:      string(m.Status),
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Observation: m.Observation,
		Result:      string(m.Result),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
