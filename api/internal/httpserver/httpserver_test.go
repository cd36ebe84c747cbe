package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	ok := func(context.Context) error { return nil }
	mux := NewMux(map[string]Check{"db": ok})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	bad := func(context.Context) error { return errors.New("connection refused") }
	mux = NewMux(map[string]Check{"db": ok, "redis": bad})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis: not ok")
	assert.NotContains(t, rec.Body.String(), "db:")
}

func TestMetricsAndRoot(t *testing.T) {
	mux := NewMux(nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookQueuesUpdate(t *testing.T) {
	out := make(chan tgbotapi.Update, 1)
	parse := func(r *http.Request) (*tgbotapi.Update, error) {
		return &tgbotapi.Update{UpdateID: 9}, nil
	}
	h := Webhook(parse, out, nil)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/webhook/x", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, out, 1)
	assert.Equal(t, 9, (<-out).UpdateID)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/webhook/x", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWebhookBadBody(t *testing.T) {
	parse := func(r *http.Request) (*tgbotapi.Update, error) { return nil, errors.New("bad json") }
	rec := httptest.NewRecorder()
	Webhook(parse, make(chan tgbotapi.Update), nil)(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: NewMux(nil)}
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, nil) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}
