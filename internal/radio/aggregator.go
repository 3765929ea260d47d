// Package radio renders the station page from the RadioKing widget API.
//
// The page data is collected from four track endpoints queried in
// parallel and a playlist manifest. Every piece is a Field: either the
// upstream value or a documented fallback, so collecting never fails.
package radio

import (
	"context"
	"errors"

	"github.com/boomerverse/boomer/pkg/radioking"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Unknown is shown for the title and artist of a track that could not be fetched
const Unknown = "Unknown"

// errEmpty marks an upstream list that decoded but held nothing usable
var errEmpty = errors.New("radio: empty response")

// Source is the subset of the RadioKing client used by the aggregator
type Source interface {
	Current(ctx context.Context) (*radioking.Track, error)
	Next(ctx context.Context, limit int) ([]radioking.Track, error)
	Recent(ctx context.Context, limit int) ([]radioking.Track, error)
	Top(ctx context.Context, limit int) ([]radioking.Track, error)
	ResolveStream(ctx context.Context, manifestURL string) (string, error)
}

// SongInfo is a track as shown on the page
type SongInfo struct {
	Title       string
	Artist      string
	DownloadURL string // empty when the station offers no download
}

// UnknownSong is the fallback for a track that could not be fetched
var UnknownSong = SongInfo{Title: Unknown, Artist: Unknown}

// Field is an upstream value, or its fallback when Err is set
type Field[T any] struct {
	Value T
	Err   error
}

// OK reports whether the value came from upstream
func (f Field[T]) OK() bool {
	return f.Err == nil
}

func resolve[T any](value T, err error, fallback T) Field[T] {
	if err != nil {
		return Field[T]{Value: fallback, Err: err}
	}
	return Field[T]{Value: value}
}

// Snapshot is everything the station page shows
type Snapshot struct {
	Current   Field[SongInfo]
	Next      Field[SongInfo]
	Recent    Field[[]SongInfo]
	Top       Field[[]SongInfo]
	StreamURL Field[string]
}

// Limits bounds how many tracks each list endpoint returns
type Limits struct {
	Next   int
	Recent int
	Top    int
}

// DefaultLimits matches the widget queries used by the station page
var DefaultLimits = Limits{Next: 1, Recent: 3, Top: 5}

// Aggregator collects a Snapshot from a Source
type Aggregator struct {
	source      Source
	manifestURL string
	limits      Limits
	logger      zerolog.Logger
}

// NewAggregator creates an Aggregator. manifestURL is the M3U playlist of
// the live stream and doubles as the stream URL when it cannot be resolved.
func NewAggregator(source Source, manifestURL string, limits Limits, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		source:      source,
		manifestURL: manifestURL,
		limits:      limits,
		logger:      logger.With().Str("component", "radio").Logger(),
	}
}

// Collect queries the four track endpoints concurrently, then resolves the
// stream manifest. Failed pieces keep their fallback value.
func (a *Aggregator) Collect(ctx context.Context) Snapshot {
	var snap Snapshot
	var g errgroup.Group

	// Each goroutine owns one field of snap.
	g.Go(func() error {
		track, err := a.source.Current(ctx)
		var song SongInfo
		if err == nil {
			song = songFromTrack(*track)
		}
		snap.Current = resolve(song, err, UnknownSong)
		return nil
	})
	g.Go(func() error {
		tracks, err := a.source.Next(ctx, a.limits.Next)
		var song SongInfo
		if err == nil {
			if len(tracks) == 0 {
				err = errEmpty
			} else {
				song = songFromTrack(tracks[0])
			}
		}
		snap.Next = resolve(song, err, UnknownSong)
		return nil
	})
	g.Go(func() error {
		tracks, err := a.source.Recent(ctx, a.limits.Recent)
		snap.Recent = resolve(songsFromTracks(tracks), err, []SongInfo{})
		return nil
	})
	g.Go(func() error {
		tracks, err := a.source.Top(ctx, a.limits.Top)
		snap.Top = resolve(songsFromTracks(tracks), err, []SongInfo{})
		return nil
	})
	_ = g.Wait()

	stream, err := a.source.ResolveStream(ctx, a.manifestURL)
	snap.StreamURL = resolve(stream, err, a.manifestURL)

	a.logFallbacks(snap)
	return snap
}

func (a *Aggregator) logFallbacks(snap Snapshot) {
	failures := map[string]error{
		"current": snap.Current.Err,
		"next":    snap.Next.Err,
		"recent":  snap.Recent.Err,
		"top":     snap.Top.Err,
		"stream":  snap.StreamURL.Err,
	}
	for field, err := range failures {
		if err != nil {
			a.logger.Debug().Err(err).Str("field", field).Msg("Using fallback value")
		}
	}
}

func songFromTrack(t radioking.Track) SongInfo {
	return SongInfo{
		Title:       t.Title,
		Artist:      t.Artist,
		DownloadURL: t.URL,
	}
}

func songsFromTracks(tracks []radioking.Track) []SongInfo {
	songs := make([]SongInfo, 0, len(tracks))
	for _, t := range tracks {
		songs = append(songs, songFromTrack(t))
	}
	return songs
}
