// Package roulette serves random images from tagged Cloudinary pools,
// avoiding recently shown images, and converts images to data URLs.
package roulette

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"strings"

	"github.com/boomerverse/boomer/internal/picker"
	"github.com/boomerverse/boomer/internal/server"
	"github.com/boomerverse/boomer/pkg/cloudinary"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// DefaultPageSize is the number of assets requested per search page
const DefaultPageSize = 500

const (
	// DefaultMode is used when the mode parameter is absent
	DefaultMode = "engage"
	// MemeMode returns two images per request
	MemeMode = "meme"
)

// modeTags maps a mode to the Cloudinary tag of its image pool. Unknown
// modes search the empty tag.
var modeTags = map[string]string{
	"engage":   "engage",
	"meme":     "meme template",
	"profiles": "profiles",
}

const (
	msgSearchFailed = "Failed to fetch images from Cloudinary"
	msgNoImages     = "No images found"
	msgMissingImg   = "Missing img param"
)

//go:embed pages/index.html
var indexPage []byte

// TagForMode returns the search tag for mode
func TagForMode(mode string) string {
	return modeTags[mode]
}

// Searcher finds image assets by tag
type Searcher interface {
	ByTag(ctx context.Context, tag string, pageSize int) ([]cloudinary.Resource, error)
}

// Linker builds the delivery URL of an asset
type Linker interface {
	DirectLink(publicID, format string) string
}

// Fetcher converts a remote image to a data URL
type Fetcher interface {
	Fetch(ctx context.Context, imageURL string) (dataURL string, size int, err error)
}

// Handler routes image roulette requests
type Handler struct {
	searcher Searcher
	linker   Linker
	picker   *picker.Picker
	fetcher  Fetcher
	pageSize int
	logger   zerolog.Logger
}

// NewHandler creates the roulette router
func NewHandler(searcher Searcher, linker Linker, p *picker.Picker, fetcher Fetcher, pageSize int, logger zerolog.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Handler{
		searcher: searcher,
		linker:   linker,
		picker:   p,
		fetcher:  fetcher,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "roulette").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		switch r.URL.Path {
		case "/random":
			h.handleRandom(w, r)
			return
		case "/dataurl":
			h.handleDataURL(w, r)
			return
		}
	}
	server.WriteHTML(w, r, indexPage)
}

type randomResponse struct {
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`
}

func (h *Handler) handleRandom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)

	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = DefaultMode
	}
	tag := TagForMode(mode)

	images, err := h.searcher.ByTag(ctx, tag, h.pageSize)
	if err != nil {
		log.Error().Err(err).Str("mode", mode).Str("tag", tag).Msg("Image search failed")
		server.WriteError(w, r, http.StatusInternalServerError, searchFailureMessage(err))
		return
	}

	if len(images) == 0 {
		server.WriteError(w, r, http.StatusOK, msgNoImages)
		return
	}

	count := 1
	if mode == MemeMode {
		count = 2
	}

	picked, err := picker.PickN(ctx, h.picker, images, count, resourceKey)
	if err != nil {
		log.Error().Err(err).Str("mode", mode).Msg("Failed to pick image")
		server.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	links := make([]string, len(picked))
	for i, img := range picked {
		links[i] = h.linker.DirectLink(img.PublicID, img.Format)
	}

	log.Debug().
		Str("mode", mode).
		Str("pool", humanize.Comma(int64(len(images)))).
		Strs("links", links).
		Msg("Picked images")

	if mode == MemeMode {
		server.WriteJSON(w, r, http.StatusOK, randomResponse{Images: links})
		return
	}
	server.WriteJSON(w, r, http.StatusOK, randomResponse{Image: links[0]})
}

type dataURLResponse struct {
	DataURL string `json:"dataUrl"`
}

func (h *Handler) handleDataURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	imageURL := r.URL.Query().Get("img")
	if imageURL == "" {
		server.WriteError(w, r, http.StatusBadRequest, msgMissingImg)
		return
	}

	dataURL, size, err := h.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		event := zerolog.Ctx(ctx).Warn().Err(err)
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			event = event.Str("detail", fetchErr.Detail())
		}
		event.Msg("Image fetch failed")
		server.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	zerolog.Ctx(ctx).Debug().
		Str("url", imageURL).
		Str("size", humanize.Bytes(uint64(size))).
		Msg("Encoded data URL")

	server.WriteJSON(w, r, http.StatusOK, dataURLResponse{DataURL: dataURL})
}

// searchFailureMessage returns the fixed message for an error status from
// Cloudinary and the error text for anything else.
func searchFailureMessage(err error) string {
	var upErr *cloudinary.UpstreamError
	if errors.As(err, &upErr) {
		return msgSearchFailed
	}
	return err.Error()
}

func resourceKey(r cloudinary.Resource) string {
	return r.PublicID
}
