package http

import (
	"context"
	"net/http"
	"time"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/pkg/httpx"
)

type matchRequest struct {
	TeamAID     string    `json:"team_a_id"`
	TeamBID     string    `json:"team_b_id"`
	ArenaID     string    `json:"arena_id"`
	Date        time.Time `json:"date"`
	Observation string    `json:"observation"`
}

func (req matchRequest) input() service.MatchInput {
	return service.MatchInput{
		TeamAID:     req.TeamAID,
		TeamBID:     req.TeamBID,
		ArenaID:     req.ArenaID,
		Date:        req.Date,
		Observation: req.Observation,
	}
}

func (rt *Router) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := rt.svc.Matches.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMatchResponse(m))
}

func (rt *Router) handleListMatches(w http.ResponseWriter, r *http.Request) {
	list, err := rt.svc.Matches.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toMatchResponse))
}

func (rt *Router) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	m, err := rt.svc.Matches.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMatchResponse(m))
}

func (rt *Router) handleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := rt.svc.Matches.Update(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMatchResponse(m))
}

func (rt *Router) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := rt.svc.Matches.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	rt.transition(w, r, rt.svc.Matches.Start)
}

func (rt *Router) handlePauseMatch(w http.ResponseWriter, r *http.Request) {
	rt.transition(w, r, rt.svc.Matches.Pause)
}

func (rt *Router) handleEndMatch(w http.ResponseWriter, r *http.Request) {
	rt.transition(w, r, rt.svc.Matches.End)
}

func (rt *Router) handleCancelMatch(w http.ResponseWriter, r *http.Request) {
	rt.transition(w, r, rt.svc.Matches.Cancel)
}

func (rt *Router) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, id string) (domain.Match, error),
) {
	m, err := fn(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMatchResponse(m))
}

type matchResultRequest struct {
	Result      string `json:"result"`
	Observation string `json:"observation"`
}

func (rt *Router) handleSetMatchResult(w http.ResponseWriter, r *http.Request) {
	var req matchResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := rt.svc.Matches.SetResult(r.Context(), r.PathValue("id"),
		domain.MatchResult(req.Result), req.Observation)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMatchResponse(m))
}
