package http

import (
	"net/http"

	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/pkg/httpx"
)

type teamRequest struct {
	Name       string `json:"name"`
	RobotName  string `json:"robot_name"`
	CategoryID string `json:"category_id"`
}

func (rt *Router) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tm, err := rt.svc.Teams.Create(r.Context(), service.TeamInput{
		Name:       req.Name,
		RobotName:  req.RobotName,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTeamResponse(tm))
}

func (rt *Router) handleListTeams(w http.ResponseWriter, r *http.Request) {
	list, err := rt.svc.Teams.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toTeamResponse))
}

func (rt *Router) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	tm, err := rt.svc.Teams.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTeamResponse(tm))
}

func (rt *Router) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tm, err := rt.svc.Teams.Update(r.Context(), r.PathValue("id"), service.TeamInput{
		Name:       req.Name,
		RobotName:  req.RobotName,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTeamResponse(tm))
}

func (rt *Router) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := rt.svc.Teams.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
