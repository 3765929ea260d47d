package radioking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Slug: "boomerfm-web3", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, server
}

func TestClient_Current(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantTitle string
		wantErr   error
	}{
		{name: "track on air", status: 200, body: `{"title":"Hey Jude","artist":"The Beatles","url":"https://dl/1"}`, wantTitle: "Hey Jude"},
		{name: "empty title", status: 200, body: `{"title":"","artist":"x"}`, wantErr: ErrNoTrack},
		{name: "server error", status: 500, body: `oops`, wantErr: &StatusError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/widget/radio/boomerfm-web3/track/current" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			track, err := client.Current(context.Background())
			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var se *StatusError
				if _, isStatus := tt.wantErr.(*StatusError); isStatus {
					if !errors.As(err, &se) {
						t.Errorf("expected *StatusError, got %v", err)
					}
				} else if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if track.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, track.Title)
			}
		})
	}
}

func TestClient_NextAndRecent_SendLimit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/widget/radio/boomerfm-web3/track/next":
			if r.URL.Query().Get("limit") != "1" {
				t.Errorf("expected limit=1, got %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`[{"title":"Next","artist":"A"}]`))
		case "/widget/radio/boomerfm-web3/track/ckoi":
			if r.URL.Query().Get("limit") != "3" {
				t.Errorf("expected limit=3, got %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`[{"title":"R1","artist":"A"},{"title":"R2","artist":"B"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	next, err := client.Next(context.Background(), 1)
	if err != nil || len(next) != 1 || next[0].Title != "Next" {
		t.Errorf("Next() = %+v, %v", next, err)
	}

	recent, err := client.Recent(context.Background(), 3)
	if err != nil || len(recent) != 2 {
		t.Errorf("Recent() = %+v, %v", recent, err)
	}
}

func TestClient_Top_AcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: `[{"title":"a"},{"title":"b"}]`, want: 2},
		{name: "items object", body: `{"items":[{"title":"a"},{"title":"b"},{"title":"c"}]}`, want: 3},
		{name: "unexpected object", body: `{"foo":1}`, want: 0},
		{name: "scalar", body: `42`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			top, err := client.Top(context.Background(), 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(top) != tt.want {
				t.Errorf("expected %d tracks, got %d", tt.want, len(top))
			}
		})
	}
}

func TestParseM3U(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "extended m3u", input: "#EXTM3U\n#EXTINF:-1,Boomer FM\nhttps://listen.radioking.com/radio/1/stream/2\n", want: "https://listen.radioking.com/radio/1/stream/2", wantOK: true},
		{name: "crlf and padding", input: "#EXTM3U\r\n\r\n   http://a/stream  \r\nhttp://b/stream\r\n", want: "http://a/stream", wantOK: true},
		{name: "comments only", input: "#EXTM3U\n#EXTINF:-1,x\n"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseM3U(strings.NewReader(tt.input))
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseM3U() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClient_ResolveStream(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listen.m3u":
			_, _ = w.Write([]byte("#EXTM3U\nhttps://stream.example/boomer.mp3\n"))
		case "/empty.m3u":
			_, _ = w.Write([]byte("#EXTM3U\n"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	got, err := client.ResolveStream(context.Background(), server.URL+"/listen.m3u")
	if err != nil || got != "https://stream.example/boomer.mp3" {
		t.Errorf("ResolveStream() = %q, %v", got, err)
	}

	if _, err := client.ResolveStream(context.Background(), server.URL+"/empty.m3u"); err == nil {
		t.Error("expected error for manifest without entries")
	}

	if _, err := client.ResolveStream(context.Background(), server.URL+"/missing.m3u"); err == nil {
		t.Error("expected error for 404 manifest")
	}
}
