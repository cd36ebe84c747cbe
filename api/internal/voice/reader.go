package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/metrics"
	"aqua-bot/api/internal/util"
)

const (
	MaxChars            = 500
	DefaultStartTimeout = 2 * time.Second
	DefaultSynthTimeout = 30 * time.Second
)

type State int

const (
	Idle State = iota
	Loading
	Speaking
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Speaking:
		return "speaking"
	}
	return "idle"
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, v Voice) ([]byte, error)
}

// Utterance is what a Player receives.
type Utterance struct {
	Text  string
	Voice Voice
	Lang  i18n.Language
	Audio []byte
}

// Player delivers audio. It calls started once playback has begun and
// returns when it has ended.
type Player interface {
	Play(ctx context.Context, u Utterance, started func()) error
}

// Reader reads text aloud, one utterance at a time. Loading covers synthesis,
// bounded by SynthTimeout, and then the hand-off to the Player, bounded by
// StartTimeout.
type Reader struct {
	Synth        Synthesizer
	Player       Player
	Voices       []Voice
	StartTimeout time.Duration
	SynthTimeout time.Duration
	Log          *slog.Logger
	// OnChange, when set, is called after every state transition. It runs
	// without the reader lock held.
	OnChange func(State)

	mu       sync.Mutex
	state    State
	seq      uint64
	text     string
	cancel   context.CancelFunc
	watchdog *time.Timer
}

func NewReader(synth Synthesizer, player Player, log *slog.Logger) *Reader {
	if log == nil {
		log = slog.Default()
	}
	return &Reader{
		Synth:        synth,
		Player:       player,
		Voices:       Catalogue,
		StartTimeout: DefaultStartTimeout,
		SynthTimeout: DefaultSynthTimeout,
		Log:          log,
	}
}

func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Prepare truncates text to MaxChars runes, adding "..." when cut.
func Prepare(text string) string {
	return util.Truncate(text, MaxChars, "...")
}

// Speak starts reading text and returns at once. Speaking the text that is
// already active stops it instead; any other text replaces it.
func (r *Reader) Speak(ctx context.Context, text string, lang i18n.Language) {
	text = Prepare(text)

	r.mu.Lock()
	if r.state != Idle && r.text == text {
		r.stopLocked()
		r.mu.Unlock()
		metrics.RecordVoice("stopped")
		r.notify(Idle)
		return
	}
	r.stopLocked()

	v, ok := Select(r.Voices, lang)
	if !ok {
		r.Log.Debug("no voice for language, using default", "lang", lang, "voice", v.Name)
	}
	r.seq++
	id := r.seq
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.text = text
	r.state = Loading
	r.mu.Unlock()
	r.notify(Loading)

	go r.run(ctx, id, Utterance{Text: text, Voice: v, Lang: lang})
}

func (r *Reader) run(ctx context.Context, id uint64, u Utterance) {
	synthTimeout := r.SynthTimeout
	if synthTimeout <= 0 {
		synthTimeout = DefaultSynthTimeout
	}
	sctx, cancel := context.WithTimeout(ctx, synthTimeout)
	audio, err := r.Synth.Synthesize(sctx, u.Text, u.Voice)
	cancel()
	if err != nil {
		switch {
		case ctx.Err() != nil:
		case errors.Is(err, context.DeadlineExceeded):
			r.Log.Info("speech synthesis timed out", "voice", u.Voice.Name, "timeout", synthTimeout)
			r.finish(id, "synth_timeout")
			return
		default:
			r.Log.Warn("speech synthesis failed", "voice", u.Voice.Name, "err", err)
		}
		r.finish(id, "synth_error")
		return
	}
	if !r.armWatchdog(id) {
		return
	}
	u.Audio = audio
	started := func() { r.transition(id, Loading, Speaking) }
	if err := r.Player.Play(ctx, u, started); err != nil {
		if ctx.Err() == nil {
			r.Log.Warn("speech playback failed", "err", err)
		}
		r.finish(id, "play_error")
		return
	}
	r.finish(id, "spoken")
}

// armWatchdog starts the playback-start timer for a still-current utterance.
func (r *Reader) armWatchdog(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq != id || r.state != Loading {
		return false
	}
	timeout := r.StartTimeout
	if timeout <= 0 {
		timeout = DefaultStartTimeout
	}
	r.watchdog = time.AfterFunc(timeout, func() { r.expire(id) })
	return true
}

// expire fires when playback has not started in time.
func (r *Reader) expire(id uint64) {
	r.mu.Lock()
	if r.seq != id || r.state != Loading {
		r.mu.Unlock()
		return
	}
	r.stopLocked()
	r.mu.Unlock()
	metrics.RecordVoice("timeout")
	r.Log.Info("speech playback did not start in time", "timeout", r.StartTimeout)
	r.notify(Idle)
}

func (r *Reader) transition(id uint64, from, to State) bool {
	r.mu.Lock()
	if r.seq != id || r.state != from {
		r.mu.Unlock()
		return false
	}
	if r.watchdog != nil {
		r.watchdog.Stop()
		r.watchdog = nil
	}
	r.state = to
	r.mu.Unlock()
	r.notify(to)
	return true
}

func (r *Reader) finish(id uint64, outcome string) {
	r.mu.Lock()
	if r.seq != id || r.state == Idle {
		r.mu.Unlock()
		return
	}
	r.stopLocked()
	r.mu.Unlock()
	metrics.RecordVoice(outcome)
	r.notify(Idle)
}

// Stop cancels the active utterance, if any.
func (r *Reader) Stop() {
	r.mu.Lock()
	was := r.state
	r.stopLocked()
	r.mu.Unlock()
	if was != Idle {
		metrics.RecordVoice("stopped")
		r.notify(Idle)
	}
}

// Close cancels unconditionally; the reader can still be reused.
func (r *Reader) Close() {
	r.mu.Lock()
	r.stopLocked()
	r.mu.Unlock()
}

func (r *Reader) stopLocked() {
	if r.watchdog != nil {
		r.watchdog.Stop()
		r.watchdog = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.state = Idle
	r.text = ""
}

func (r *Reader) notify(s State) {
	if r.OnChange != nil {
		r.OnChange(s)
	}
}
