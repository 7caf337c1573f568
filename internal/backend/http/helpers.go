// Package http is the transport layer: route registration, JSON codecs and
// the mapping from service errors to status codes.
package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/robochamp/backend/pkg/httpx"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func httpxError(w http.ResponseWriter, code int, kind string, err error) {
	msg := ""
	if err != nil {
		// The "service:" prefix is an internal convention, not API surface.
		msg = strings.TrimPrefix(err.Error(), "service: ")
	}
	httpx.WriteError(w, code, kind, msg)
}

// decodeJSON parses the request body into v, answering 400 itself on
// failure. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return false
	}
	return true
}
