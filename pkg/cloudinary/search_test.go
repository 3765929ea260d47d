package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// pagedServer serves pages in order, keyed by the cursor the client sends.
func pagedServer(t *testing.T, pages [][]Resource, requests *[]searchRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/demo/resources/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-key" || pass != "test-secret" {
			t.Errorf("expected basic auth test-key:test-secret, got %q:%q", user, pass)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		*requests = append(*requests, req)

		idx := 0
		if req.NextCursor != "" {
			if _, err := fmt.Sscanf(req.NextCursor, "cursor-%d", &idx); err != nil {
				t.Fatalf("bad cursor %q", req.NextCursor)
			}
		}

		resp := searchResponse{Resources: pages[idx]}
		if idx+1 < len(pages) {
			resp.NextCursor = fmt.Sprintf("cursor-%d", idx+1)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		CloudName: "demo",
		APIKey:    "test-key",
		APISecret: "test-secret",
		BaseURL:   baseURL,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func makeResources(prefix string, n int) []Resource {
	out := make([]Resource, n)
	for i := range out {
		out[i] = Resource{PublicID: fmt.Sprintf("%s-%d", prefix, i), Format: "png"}
	}
	return out
}

func TestSearchService_ByTag(t *testing.T) {
	tests := []struct {
		name  string
		pages [][]Resource
	}{
		{name: "single page", pages: [][]Resource{makeResources("a", 3)}},
		{name: "three pages", pages: [][]Resource{makeResources("a", 2), makeResources("b", 2), makeResources("c", 1)}},
		{name: "empty result", pages: [][]Resource{{}}},
		{name: "empty middle page", pages: [][]Resource{makeResources("a", 1), {}, makeResources("c", 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests []searchRequest
			server := pagedServer(t, tt.pages, &requests)
			defer server.Close()

			client := newTestClient(t, server.URL)
			got, err := client.Search().ByTag(context.Background(), "engage", 100)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var want []Resource
			for _, p := range tt.pages {
				want = append(want, p...)
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d resources, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i].PublicID != want[i].PublicID {
					t.Errorf("resource %d: expected %q, got %q", i, want[i].PublicID, got[i].PublicID)
				}
			}

			if len(requests) != len(tt.pages) {
				t.Fatalf("expected %d requests, got %d", len(tt.pages), len(requests))
			}
			for i, req := range requests {
				if req.Expression != "tags:engage" {
					t.Errorf("request %d: expected expression tags:engage, got %q", i, req.Expression)
				}
				if req.MaxResults != 100 {
					t.Errorf("request %d: expected max_results 100, got %d", i, req.MaxResults)
				}
				if req.ResourceType != "image" {
					t.Errorf("request %d: expected resource_type image, got %q", i, req.ResourceType)
				}
				if i == 0 && req.NextCursor != "" {
					t.Errorf("first request must not carry a cursor, got %q", req.NextCursor)
				}
				if i > 0 && req.NextCursor != fmt.Sprintf("cursor-%d", i) {
					t.Errorf("request %d: expected cursor-%d, got %q", i, i, req.NextCursor)
				}
			}
		})
	}
}

func TestSearchService_ByTag_OmitsCursorOnFirstPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if _, ok := raw["next_cursor"]; ok {
			t.Error("expected next_cursor to be omitted")
		}
		_, _ = w.Write([]byte(`{"resources":[{"public_id":"x","format":"gif"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	got, err := client.Search().ByTag(context.Background(), "profiles", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Format != "gif" {
		t.Errorf("unexpected resources: %+v", got)
	}
}

func TestSearchService_ByTag_FailureDiscardsPartialResults(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = w.Write([]byte(`{"resources":[{"public_id":"a","format":"jpg"}],"next_cursor":"more"}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate Limit Exceeded"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	got, err := client.Search().ByTag(context.Background(), "engage", 500)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got != nil {
		t.Errorf("expected no partial results, got %d", len(got))
	}

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
	if upErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", upErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Rate Limit Exceeded") {
		t.Errorf("expected upstream message in error, got %q", err.Error())
	}
	if !errors.Is(err, &UpstreamError{}) {
		t.Error("expected errors.Is to match any UpstreamError")
	}
	if calls != 2 {
		t.Errorf("expected no retries (2 calls), got %d", calls)
	}
}

func TestSearchService_ByTag_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Search().ByTag(context.Background(), "engage", 100)

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if !upErr.Unauthorized() {
		t.Error("expected Unauthorized() to be true")
	}
	if err.Error() != "Cloudinary search failed (status 401)" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSearchService_ByTag_InvalidPageSize(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	for _, size := range []int{0, -1, 501} {
		if _, err := client.Search().ByTag(context.Background(), "x", size); !errors.Is(err, ErrInvalidPageSize) {
			t.Errorf("page size %d: expected ErrInvalidPageSize, got %v", size, err)
		}
	}
}

func TestSearchService_ByTag_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"resources":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Search().ByTag(ctx, "engage", 100)
	if err == nil {
		t.Fatal("expected context deadline error, got nil")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "complete", cfg: Config{CloudName: "c", APIKey: "k", APISecret: "s"}},
		{name: "missing cloud name", cfg: Config{APIKey: "k", APISecret: "s"}, wantErr: true},
		{name: "missing key", cfg: Config{CloudName: "c", APISecret: "s"}, wantErr: true},
		{name: "missing secret", cfg: Config{CloudName: "c", APIKey: "k"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg)
			if tt.wantErr && !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestClient_DirectLink(t *testing.T) {
	client, err := NewClient(Config{CloudName: "boomer", APIKey: "k", APISecret: "s"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if got := client.DirectLink("folder/pic", "png"); got != "https://res.cloudinary.com/boomer/image/upload/folder/pic.png" {
		t.Errorf("unexpected link %q", got)
	}
	if got := client.DirectLink("pic", ""); got != "https://res.cloudinary.com/boomer/image/upload/pic.jpg" {
		t.Errorf("expected jpg fallback, got %q", got)
	}
}

func TestResource_KeepsRawObject(t *testing.T) {
	const asset = `{"public_id":"a","format":"png","context":{"caption":"Year 1"},"version":1712,"width":0}`

	var r Resource
	if err := json.Unmarshal([]byte(asset), &r); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if r.PublicID != "a" || r.Format != "png" {
		t.Errorf("unexpected known fields: %+v", r)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if string(out) != asset {
		t.Errorf("expected %s, got %s", asset, out)
	}
}

func TestResource_MarshalWithoutRaw(t *testing.T) {
	out, err := json.Marshal(Resource{PublicID: "b", Format: "jpg"})
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if string(out) != `{"public_id":"b","format":"jpg"}` {
		t.Errorf("unexpected encoding %s", out)
	}
}
