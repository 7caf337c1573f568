package http

import (
	"net/http"

	"github.com/robochamp/backend/pkg/httpx"
	"github.com/robochamp/backend/pkg/slogx"
)

func (rt *Router) handleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := rt.ready(r.Context()); err != nil {
		slogx.FromContext(r.Context()).Warn("readiness check failed", slogx.Err(err))
		httpx.WriteError(w, http.StatusServiceUnavailable, "not_ready", "database unreachable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
