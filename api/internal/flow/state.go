package flow

import (
	"context"
	"errors"
	"sync"

	"aqua-bot/api/internal/metrics"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Error
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "idle"
}

var (
	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("flow: request already in flight")
	// ErrStale marks a response that arrived after the state was reset.
	ErrStale = errors.New("flow: stale response discarded")
	// ErrNoImage is wrapped by the validation error of upload flows.
	ErrNoImage = errors.New("flow: no image selected")
)

// ValidationError is a local input failure. Message is already localized
// and no request was sent.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// tracker is the request lifecycle shared by all orchestrators. Callers hold
// mu while touching it and their own fields.
type tracker struct {
	mu    sync.Mutex
	name  string
	phase Phase
	gen   uint64
}

// begin moves to Loading and returns the generation the response must match.
func (t *tracker) begin() (uint64, error) {
	if t.phase == Loading {
		return 0, ErrBusy
	}
	t.phase = Loading
	return t.gen, nil
}

// invalidate makes any in-flight response stale. The phase stays Loading
// until that response arrives so that only one request is ever outstanding.
func (t *tracker) invalidate() {
	t.gen++
	if t.phase != Loading {
		t.phase = Idle
	}
}

// settle checks a response against the current generation. A stale response
// releases the Loading phase but must not be applied.
func (t *tracker) settle(gen uint64) error {
	if gen != t.gen {
		if t.phase == Loading {
			t.phase = Idle
		}
		metrics.RecordFlow(t.name, "stale")
		return ErrStale
	}
	return nil
}

func (t *tracker) succeed() {
	t.phase = Success
	metrics.RecordFlow(t.name, "success")
}

func (t *tracker) fail() {
	t.phase = Error
	metrics.RecordFlow(t.name, "error")
}

// reject records a local validation failure.
func (t *tracker) reject() {
	t.phase = Error
	metrics.RecordFlow(t.name, "invalid")
}

// Pending is a request that already holds the Loading phase. Do sends it and
// applies the response; call it exactly once.
type Pending[T any] struct {
	send func(ctx context.Context) (T, error)
}

func (p *Pending[T]) Do(ctx context.Context) (T, error) { return p.send(ctx) }
