// Package lore serves the Boomerverse lore site: static pages, tagged image
// search backed by Cloudinary and the Telegram webhook.
package lore

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"net/http"

	"github.com/boomerverse/boomer/internal/server"
	"github.com/boomerverse/boomer/pkg/cloudinary"
	"github.com/boomerverse/boomer/pkg/telegram"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// DefaultPageSize is the number of assets requested per search page
const DefaultPageSize = 100

// MaxUpdateSize caps the webhook body read into memory. Larger bodies get
// 413 Request Entity Too Large.
const MaxUpdateSize = 1 << 20

//go:embed pages/*.html
var pagesFS embed.FS

// Searcher finds image assets by tag
type Searcher interface {
	ByTag(ctx context.Context, tag string, pageSize int) ([]cloudinary.Resource, error)
}

// Notifier replies to a chat. It reports nothing back; delivery problems
// are the notifier's concern.
type Notifier interface {
	Notify(ctx context.Context, chatID telegram.ChatID)
}

// Handler routes lore site requests
type Handler struct {
	searcher Searcher
	notifier Notifier
	pageSize int
	pages    map[string][]byte
	mux      *http.ServeMux
	logger   zerolog.Logger
}

// NewHandler creates the lore router. notifier may be nil, in which case
// webhook updates are acknowledged without a reply.
func NewHandler(searcher Searcher, notifier Notifier, pageSize int, logger zerolog.Logger) (*Handler, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	h := &Handler{
		searcher: searcher,
		notifier: notifier,
		pageSize: pageSize,
		pages:    make(map[string][]byte),
		mux:      http.NewServeMux(),
		logger:   logger.With().Str("component", "lore").Logger(),
	}

	for _, name := range []string{"index", "lore", "history", "movies"} {
		page, err := pagesFS.ReadFile("pages/" + name + ".html")
		if err != nil {
			return nil, err
		}
		h.pages[name] = page
	}

	h.mux.HandleFunc("/telegram", h.handleTelegram)
	h.mux.HandleFunc("/lore", h.servePage("lore"))
	h.mux.HandleFunc("/history", h.servePage("history"))
	h.mux.HandleFunc("/movies", h.servePage("movies"))
	h.mux.HandleFunc("/images", h.handleImages)
	h.mux.HandleFunc("/moviesImages", h.handleImages)
	h.mux.HandleFunc("/", h.servePage("index"))

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		server.WriteHTML(w, r, h.pages[name])
	}
}

type imagesResponse struct {
	Resources []cloudinary.Resource `json:"resources"`
}

// handleImages returns every image carrying the tag query parameter.
// Resources are passed through as Cloudinary returned them.
func (h *Handler) handleImages(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		server.WriteError(w, r, http.StatusBadRequest, "Missing tag")
		return
	}

	resources, err := h.searcher.ByTag(r.Context(), tag, h.pageSize)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("tag", tag).Msg("Image search failed")
		server.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	zerolog.Ctx(r.Context()).Debug().
		Str("tag", tag).
		Str("count", humanize.Comma(int64(len(resources)))).
		Msg("Image search complete")

	server.WriteJSON(w, r, http.StatusOK, imagesResponse{Resources: resources})
}

// handleTelegram acknowledges a webhook update and replies to its chat.
// Bodies over MaxUpdateSize are refused with 413.
func (h *Handler) handleTelegram(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxUpdateSize+1))
	if err != nil {
		server.WriteText(w, r, http.StatusBadRequest, "Bad Request")
		return
	}
	if len(body) > MaxUpdateSize {
		zerolog.Ctx(r.Context()).Warn().
			Str("limit", humanize.Bytes(MaxUpdateSize)).
			Msg("Webhook update too large")
		server.WriteText(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large")
		return
	}
	if !json.Valid(body) {
		server.WriteText(w, r, http.StatusBadRequest, "Bad Request")
		return
	}

	// Valid JSON that is not an update object carries no chat. Chat ids
	// may be numbers or channel usernames.
	var update telegram.Update
	_ = json.Unmarshal(body, &update)

	if chatID, ok := update.ChatID(); ok {
		if h.notifier != nil {
			h.notifier.Notify(r.Context(), chatID)
		} else {
			h.logger.Debug().Str("chat_id", string(chatID)).Msg("No notifier configured, skipping reply")
		}
	}

	server.WriteText(w, r, http.StatusOK, "Done")
}
