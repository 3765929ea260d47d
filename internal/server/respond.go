package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const (
	// ContentTypeHTML is sent with every HTML page
	ContentTypeHTML = "text/html;charset=UTF-8"
	// ContentTypeJSON is sent with every JSON response
	ContentTypeJSON = "application/json"
)

// ErrorResponse is the body written for failed API requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes data as the response body with the given status
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError writes {"error": message} with the given status
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, ErrorResponse{Error: message})
}

// WriteHTML writes an HTML page with status 200
func WriteHTML(w http.ResponseWriter, r *http.Request, page []byte) {
	w.Header().Set("Content-Type", ContentTypeHTML)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(page); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write HTML response")
	}
}

// WriteText writes a plain text body with the given status
func WriteText(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(body)); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write response")
	}
}
