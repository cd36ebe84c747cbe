package voice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqua-bot/api/internal/i18n"
)

type fakeSynth struct {
	delay time.Duration
	err   error

	mu    sync.Mutex
	texts []string
	voice []Voice
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string, v Voice) ([]byte, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.voice = append(f.voice, v)
	f.mu.Unlock()
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3"), nil
}

// holdPlayer reports start, unless stall is set, then blocks in Play until
// the context is cancelled or release fires.
type holdPlayer struct {
	release chan struct{}
	stall   bool

	mu    sync.Mutex
	plays []Utterance
}

func (p *holdPlayer) Play(ctx context.Context, u Utterance, started func()) error {
	p.mu.Lock()
	p.plays = append(p.plays, u)
	p.mu.Unlock()
	if !p.stall {
		started()
	}
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *holdPlayer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.plays)
}

func waitState(t *testing.T, r *Reader, want State) {
	t.Helper()
	assert.Eventually(t, func() bool { return r.State() == want }, time.Second, 5*time.Millisecond)
}

func TestSelectVoice(t *testing.T) {
	v, ok := Select(Catalogue, i18n.Telugu)
	assert.True(t, ok)
	assert.Equal(t, "te-IN", v.Tag)

	v, ok = Select(Catalogue, i18n.English)
	assert.True(t, ok)
	assert.Equal(t, "en-US-AriaNeural", v.Name)

	v, ok = Select([]Voice{{Name: "te-IN-MohanNeural", Tag: "te-IN"}}, i18n.English)
	assert.False(t, ok)
	assert.Equal(t, DefaultVoice, v)
}

func TestPrepareTruncates(t *testing.T) {
	long := strings.Repeat("అ", 600)
	got := Prepare(long)
	assert.Equal(t, 503, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "short", Prepare("short"))
}

func TestSpeakLifecycle(t *testing.T) {
	synth := &fakeSynth{}
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(synth, player, nil)

	var mu sync.Mutex
	var seen []State
	r.OnChange = func(s State) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}

	r.Speak(context.Background(), "Columnaris detected", i18n.English)
	waitState(t, r, Speaking)
	close(player.release)
	waitState(t, r, Idle)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{Loading, Speaking, Idle}, seen)
}

func TestSpeakSameTextToggles(t *testing.T) {
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(&fakeSynth{}, player, nil)

	r.Speak(context.Background(), "hello", i18n.English)
	waitState(t, r, Speaking)
	r.Speak(context.Background(), "hello", i18n.English)
	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 1, player.count())
}

func TestSpeakNewTextReplaces(t *testing.T) {
	synth := &fakeSynth{}
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(synth, player, nil)

	r.Speak(context.Background(), "first", i18n.English)
	waitState(t, r, Speaking)
	r.Speak(context.Background(), "second", i18n.Telugu)
	assert.Eventually(t, func() bool { return player.count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, Speaking, r.State())

	player.mu.Lock()
	require.Len(t, player.plays, 2)
	assert.Equal(t, "second", player.plays[1].Text)
	assert.Equal(t, "te-IN", player.plays[1].Voice.Tag)
	player.mu.Unlock()
	r.Close()
	assert.Equal(t, Idle, r.State())
}

func TestWatchdogReturnsToIdle(t *testing.T) {
	player := &holdPlayer{release: make(chan struct{}), stall: true}
	r := NewReader(&fakeSynth{}, player, nil)
	r.StartTimeout = 20 * time.Millisecond

	r.Speak(context.Background(), "never starts", i18n.English)
	assert.Equal(t, Loading, r.State())
	assert.Eventually(t, func() bool { return player.count() == 1 }, time.Second, 5*time.Millisecond)
	waitState(t, r, Idle)
}

func TestSlowSynthesisIsNotAStartTimeout(t *testing.T) {
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(&fakeSynth{delay: 150 * time.Millisecond}, player, nil)
	r.StartTimeout = 20 * time.Millisecond

	r.Speak(context.Background(), strings.Repeat("a", MaxChars), i18n.English)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, Loading, r.State())
	waitState(t, r, Speaking)
	require.Equal(t, 1, player.count())
	close(player.release)
	waitState(t, r, Idle)
}

func TestSynthTimeoutIsSoft(t *testing.T) {
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(&fakeSynth{delay: 500 * time.Millisecond}, player, nil)
	r.SynthTimeout = 20 * time.Millisecond

	r.Speak(context.Background(), "slow", i18n.English)
	assert.Equal(t, Loading, r.State())
	waitState(t, r, Idle)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, player.count())
}

func TestStopWhileLoading(t *testing.T) {
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(&fakeSynth{delay: 200 * time.Millisecond}, player, nil)

	r.Speak(context.Background(), "text", i18n.English)
	r.Stop()
	assert.Equal(t, Idle, r.State())
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 0, player.count())
	assert.Equal(t, Idle, r.State())
}

func TestSynthErrorIsSoft(t *testing.T) {
	player := &holdPlayer{release: make(chan struct{})}
	r := NewReader(&fakeSynth{err: errors.New("no route")}, player, nil)

	r.Speak(context.Background(), "text", i18n.English)
	waitState(t, r, Idle)
	assert.Equal(t, 0, player.count())
}

func TestLongName(t *testing.T) {
	assert.Equal(t, "Microsoft Server Speech Text to Speech Voice (te-IN, ShrutiNeural)", LongName("te-IN-ShrutiNeural"))
	assert.Equal(t, "custom", LongName("custom"))
}
