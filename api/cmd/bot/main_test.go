package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestRetryDelayFromError(t *testing.T) {
	assert.Equal(t, time.Duration(0), retryDelayFromError(nil))
	assert.Equal(t, 7*time.Second, retryDelayFromError(errors.New("Too Many Requests: retry after 7")))
	assert.Equal(t, 3*time.Second, retryDelayFromError(errors.New("too many requests")))
	assert.Equal(t, 2*time.Second, retryDelayFromError(timeoutErr{}))
	assert.Equal(t, 1*time.Second, retryDelayFromError(errors.New("boom")))
}

func TestShortHashStable(t *testing.T) {
	a := shortHash("123:abc")
	assert.Len(t, a, 16)
	assert.Equal(t, a, shortHash("123:abc"))
	assert.NotEqual(t, a, shortHash("123:abd"))
}

func TestSafeDSNSummaryHidesPassword(t *testing.T) {
	s := safeDSNSummary("postgres://aquabot:secret@db:5432/aquabot?sslmode=disable")
	assert.Equal(t, "host=db port=5432 db=aquabot user=aquabot", s)
	assert.NotContains(t, s, "secret")
	assert.Equal(t, "host=db db=x user=u", safeDSNSummary("postgres://u@db/x"))
}

type scriptedSource struct {
	mu      sync.Mutex
	calls   int
	offsets []int
	cancel  context.CancelFunc
}

func (s *scriptedSource) GetUpdates(c tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.offsets = append(s.offsets, c.Offset)
	switch s.calls {
	case 1:
		return []tgbotapi.Update{{UpdateID: 10}, {UpdateID: 11}}, nil
	case 2:
		return nil, errors.New("bad gateway")
	default:
		s.cancel()
		return nil, nil
	}
}

func TestRunPollingAdvancesOffsetAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &scriptedSource{cancel: cancel}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var got []int
	done := make(chan struct{})
	go func() {
		runPolling(ctx, src, logger, func(u tgbotapi.Update) { got = append(got, u.UpdateID) })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runPolling did not stop")
	}
	assert.Equal(t, []int{10, 11}, got)
	assert.Equal(t, []int{0, 12, 12}, src.offsets)
}

func TestDrainWaitsForWork(t *testing.T) {
	release := make(chan struct{})
	cancelled := false
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(release)
	}()
	ok := drain(func() { <-release }, time.Second, func() { cancelled = true })
	assert.True(t, ok)
	assert.False(t, cancelled)
}

func TestDrainCancelsAfterTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ok := drain(func() { <-ctx.Done() }, 20*time.Millisecond, cancel)
	assert.False(t, ok)
	assert.Error(t, ctx.Err())
}

func TestWorkContextSurvivesSignal(t *testing.T) {
	sig, stop := context.WithCancel(context.Background())
	work, cancelWork := context.WithCancel(context.WithoutCancel(sig))
	defer cancelWork()
	stop()
	assert.NoError(t, work.Err())
	cancelWork()
	assert.Error(t, work.Err())
}
