package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wujunwei928/edge-tts-go/edge_tts"
)

// EdgeSynthesizer renders speech with the Microsoft Edge read-aloud service.
type EdgeSynthesizer struct {
	Log *slog.Logger
	// ReceiveTimeout bounds each websocket read, in seconds.
	ReceiveTimeout int
}

func NewEdgeSynthesizer(log *slog.Logger) *EdgeSynthesizer {
	if log == nil {
		log = slog.Default()
	}
	return &EdgeSynthesizer{Log: log, ReceiveTimeout: 10}
}

type synthResult struct {
	audio []byte
	err   error
}

// Synthesize returns mp3 audio. The underlying client has no context
// support, so cancellation only abandons the result.
func (e *EdgeSynthesizer) Synthesize(ctx context.Context, text string, v Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("edge tts: empty text")
	}
	name := v.Name
	if name == "" {
		name = DefaultVoice.Name
	}

	done := make(chan synthResult, 1)
	go func() {
		start := time.Now()
		c, err := edge_tts.NewCommunicate(text,
			edge_tts.SetVoice(LongName(name)),
			edge_tts.SetReceiveTimeout(e.ReceiveTimeout),
		)
		if err != nil {
			done <- synthResult{err: fmt.Errorf("edge tts: communicator: %w", err)}
			return
		}
		audio, err := c.Stream()
		if err != nil {
			done <- synthResult{err: fmt.Errorf("edge tts: synthesis: %w", err)}
			return
		}
		if len(audio) == 0 {
			done <- synthResult{err: fmt.Errorf("edge tts: no audio for voice %s", name)}
			return
		}
		e.Log.Debug("edge tts done", "voice", name, "bytes", len(audio), "duration", time.Since(start))
		done <- synthResult{audio: audio}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.audio, res.err
	}
}

// LongName expands a short voice name such as "te-IN-ShrutiNeural" to the
// form the service expects in SSML. Other names pass through.
func LongName(short string) string {
	parts := strings.Split(short, "-")
	if len(parts) != 3 {
		return short
	}
	return fmt.Sprintf("Microsoft Server Speech Text to Speech Voice (%s-%s, %s)", parts[0], parts[1], parts[2])
}
