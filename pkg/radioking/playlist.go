package radioking

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ParseM3U returns the first entry of an M3U playlist: the first line
// that is neither blank nor a comment. The second result is false when
// the playlist has no entries.
func ParseM3U(r io.Reader) (string, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

// ResolveStream downloads the M3U manifest at manifestURL and returns its
// first stream entry.
func (c *Client) ResolveStream(ctx context.Context, manifestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, URL: manifestURL}
	}

	stream, ok := ParseM3U(resp.Body)
	if !ok {
		return "", fmt.Errorf("radioking: manifest %s has no entries", manifestURL)
	}
	return stream, nil
}
