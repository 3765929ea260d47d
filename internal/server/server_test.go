package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	var ctxLogger *zerolog.Logger
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = zerolog.Ctx(r.Context())
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/kettle", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	require.NotNil(t, ctxLogger)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/kettle", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "15 B", entry["size"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry["request_id"])
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	handler := RequestLogger(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteJSON(rec, req, http.StatusCreated, map[string]string{"image": "a.jpg"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"image":"a.jpg"}`, rec.Body.String())
	})

	t.Run("error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, req, http.StatusBadRequest, "Missing tag")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing tag"}`, rec.Body.String())
	})

	t.Run("html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteHTML(rec, req, []byte("<p>hi</p>"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ContentTypeHTML, rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", rec.Body.String())
	})

	t.Run("text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteText(rec, req, http.StatusBadRequest, "Bad Request")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Bad Request", rec.Body.String())
	})
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(Config{ShutdownTimeout: time.Second}, "test", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
