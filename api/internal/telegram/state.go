package telegram

import (
	"context"
	"sync"

	"aqua-bot/api/internal/flow"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/voice"
)

type page int

const (
	pageDetect page = iota
	pageTemperature
	pageLocation
	pageSeed
)

// session is the per-chat state. Orchestrators lock themselves; mu guards
// the fields below it.
type session struct {
	chatID int64

	detection *flow.Detection
	temp      *flow.Temperature
	location  *flow.Location
	seed      *flow.SeedCount
	reader    *voice.Reader

	mu     sync.Mutex
	active page
	// resultMsgID is the message carrying the read-aloud button.
	resultMsgID int
}

func (s *session) currentPage() page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *session) setPage(p page) {
	s.mu.Lock()
	s.active = p
	s.mu.Unlock()
}

func (s *session) resultMsg() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultMsgID
}

func (s *session) setResultMsg(id int) {
	s.mu.Lock()
	s.resultMsgID = id
	s.mu.Unlock()
}

func (s *session) lang() i18n.Language { return s.detection.Language() }

// sessionFor returns the chat's session, creating it with the stored language
// on first use.
func (r *Router) sessionFor(ctx context.Context, chatID int64) *session {
	if v, ok := r.sessions.Load(chatID); ok {
		return v.(*session)
	}

	lang := i18n.Default
	if r.Prefs != nil {
		l, err := r.Prefs.Language(ctx, chatID)
		if err != nil {
			r.log().Warn("load language failed", "chat_id", chatID, "err", err)
		} else {
			lang = l
		}
	}

	s := &session{
		chatID:    chatID,
		detection: flow.NewDetection(chatID, r.Service, r.Prefs, lang, r.log()),
		temp:      flow.NewTemperature(r.Service, r.log()),
		location:  flow.NewLocation(r.Service, r.log()),
		seed:      flow.NewSeedCount(r.Service, r.log()),
	}
	if r.Synth != nil {
		s.reader = voice.NewReader(r.Synth, &voicePlayer{bot: r.Bot, chatID: chatID}, r.log())
		if r.VoiceStartTimeout > 0 {
			s.reader.StartTimeout = r.VoiceStartTimeout
		}
		if r.VoiceSynthTimeout > 0 {
			s.reader.SynthTimeout = r.VoiceSynthTimeout
		}
		s.reader.OnChange = func(st voice.State) { r.refreshVoiceButton(s, st) }
	}

	v, loaded := r.sessions.LoadOrStore(chatID, s)
	if loaded && s.reader != nil {
		s.reader.Close()
	}
	return v.(*session)
}
