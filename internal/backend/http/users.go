package http

import (
	"net/http"

	"github.com/robochamp/backend/internal/backend/domain"
	"github.com/robochamp/backend/pkg/httpx"
)

func (rt *Router) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := rt.svc.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toUserResponse))
}

func (rt *Router) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := rt.svc.Users.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (rt *Router) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := rt.svc.Users.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (rt *Router) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := rt.svc.Users.UpdateRole(r.Context(), r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
