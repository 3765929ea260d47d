package radioking

import (
	"context"
	"encoding/json"
	"fmt"
)

// Track is a song as reported by the widget API.
type Track struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album,omitempty"`
	Cover     string `json:"cover,omitempty"`
	URL       string `json:"url,omitempty"` // download link, when the station provides one
	Duration  int    `json:"duration,omitempty"`
	StartedAt string `json:"started_at,omitempty"`
}

// TrackList decodes either a bare JSON array of tracks or an object with
// an "items" array. Any other shape decodes to an empty list.
type TrackList []Track

// UnmarshalJSON implements json.Unmarshaler.
func (l *TrackList) UnmarshalJSON(data []byte) error {
	var arr []Track
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var wrapped struct {
		Items []Track `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*l = wrapped.Items
		return nil
	}

	*l = nil
	return nil
}

// Current returns the track on air. ErrNoTrack is returned when the
// response has no title.
func (c *Client) Current(ctx context.Context) (*Track, error) {
	var t Track
	if err := c.getJSON(ctx, c.trackURL("current", 0), &t); err != nil {
		return nil, fmt.Errorf("current track: %w", err)
	}
	if t.Title == "" {
		return nil, ErrNoTrack
	}
	return &t, nil
}

// Next returns the upcoming tracks.
func (c *Client) Next(ctx context.Context, limit int) ([]Track, error) {
	var tracks []Track
	if err := c.getJSON(ctx, c.trackURL("next", limit), &tracks); err != nil {
		return nil, fmt.Errorf("next tracks: %w", err)
	}
	return tracks, nil
}

// Recent returns the most recently played tracks, newest first.
func (c *Client) Recent(ctx context.Context, limit int) ([]Track, error) {
	var tracks []Track
	if err := c.getJSON(ctx, c.trackURL("ckoi", limit), &tracks); err != nil {
		return nil, fmt.Errorf("recent tracks: %w", err)
	}
	return tracks, nil
}

// Top returns the station's most played tracks.
func (c *Client) Top(ctx context.Context, limit int) ([]Track, error) {
	var tracks TrackList
	if err := c.getJSON(ctx, c.trackURL("top", limit), &tracks); err != nil {
		return nil, fmt.Errorf("top tracks: %w", err)
	}
	return tracks, nil
}
