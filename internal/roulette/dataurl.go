package roulette

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// DefaultMIMEType is used when the image response declares no content type
const DefaultMIMEType = "image/jpeg"

// MaxImageSize is the largest image converted to a data URL
const MaxImageSize = 32 << 20

const msgFetchFailed = "Failed to fetch image from Cloudinary"

// FetchError is returned when a remote image cannot be retrieved
type FetchError struct {
	URL        string
	StatusCode int   // set when the server answered with a non-2xx status
	Err        error // set when the request itself failed
}

// Error returns the message shown to callers of the data URL endpoint: a
// fixed message for an error status, the underlying error text otherwise.
func (e *FetchError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return e.Err.Error()
	}
	return msgFetchFailed
}

// Unwrap returns the underlying transport error, if any
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Detail describes the failure for logs
func (e *FetchError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// DataURLFetcher downloads images and encodes them as data URLs
type DataURLFetcher struct {
	httpClient *http.Client
}

// NewDataURLFetcher creates a fetcher using httpClient, or
// http.DefaultClient when nil
func NewDataURLFetcher(httpClient *http.Client) *DataURLFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DataURLFetcher{httpClient: httpClient}
}

// Fetch retrieves imageURL and returns it as data:<mime>;base64,<payload>
// along with the image size in bytes.
func (f *DataURLFetcher) Fetch(ctx context.Context, imageURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return "", 0, &FetchError{URL: imageURL, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", 0, &FetchError{URL: imageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, &FetchError{URL: imageURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return "", 0, &FetchError{URL: imageURL, Err: err}
	}
	if len(data) > MaxImageSize {
		return "", 0, &FetchError{URL: imageURL, Err: fmt.Errorf("image exceeds %d bytes", MaxImageSize)}
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = DefaultMIMEType
	}

	return EncodeDataURL(mime, data), len(data), nil
}

// EncodeDataURL wraps data as a base64 data URL of the given MIME type
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
