package radio

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/boomerverse/boomer/internal/server"
	"github.com/rs/zerolog"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Render writes the station page for snap
func Render(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "index.html.tmpl", snap); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Handler serves the station page on every path
type Handler struct {
	aggregator *Aggregator
	logger     zerolog.Logger
}

// NewHandler creates a Handler backed by aggregator
func NewHandler(aggregator *Aggregator, logger zerolog.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		logger:     logger.With().Str("component", "radio").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.aggregator.Collect(r.Context())

	page, err := Render(snap)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to render station page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	server.WriteHTML(w, r, page)
}
