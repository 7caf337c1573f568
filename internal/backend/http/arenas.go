package http

import (
	"net/http"

	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/pkg/httpx"
)

type arenaRequest struct {
	Name        string `json:"name"`
	YoutubeLink string `json:"youtube_link"`
	CategoryID  string `json:"category_id"`
}

func (rt *Router) handleCreateArena(w http.ResponseWriter, r *http.Request) {
	var req arenaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := rt.svc.Arenas.Create(r.Context(), service.ArenaInput{
		Name:        req.Name,
		YoutubeLink: req.YoutubeLink,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toArenaResponse(a))
}

func (rt *Router) handleListArenas(w http.ResponseWriter, r *http.Request) {
	list, err := rt.svc.Arenas.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toArenaResponse))
}

func (rt *Router) handleGetArena(w http.ResponseWriter, r *http.Request) {
	a, err := rt.svc.Arenas.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toArenaResponse(a))
}

func (rt *Router) handleUpdateArena(w http.ResponseWriter, r *http.Request) {
	var req arenaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := rt.svc.Arenas.Update(r.Context(), r.PathValue("id"), service.ArenaInput{
		Name:        req.Name,
		YoutubeLink: req.YoutubeLink,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toArenaResponse(a))
}

func (rt *Router) handleDeleteArena(w http.ResponseWriter, r *http.Request) {
	if err := rt.svc.Arenas.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
