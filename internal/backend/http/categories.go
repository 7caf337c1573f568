package http

import (
	"net/http"

	"github.com/robochamp/backend/internal/backend/service"
	"github.com/robochamp/backend/pkg/httpx"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ScoreRules  string `json:"score_rules"`
}

func (rt *Router) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := rt.svc.Categories.Create(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ScoreRules:  req.ScoreRules,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (rt *Router) handleListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := rt.svc.Categories.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toCategoryResponse))
}

func (rt *Router) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := rt.svc.Categories.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (rt *Router) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := rt.svc.Categories.Update(r.Context(), r.PathValue("id"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ScoreRules:  req.ScoreRules,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (rt *Router) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := rt.svc.Categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
