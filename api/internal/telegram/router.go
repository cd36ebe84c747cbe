package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/flow"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/metrics"
	"aqua-bot/api/internal/store"
	"aqua-bot/api/internal/util"
	"aqua-bot/api/internal/voice"
)

// Bot is the part of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Service is the remote inference API.
type Service interface {
	flow.Predictor
	flow.TemperatureAssessor
	flow.WeatherChecker
	flow.SeedCounter
	SpeciesList(ctx context.Context) (aqua.SpeciesList, error)
	Health(ctx context.Context) (aqua.Health, error)
}

type Router struct {
	Bot     Bot
	Service Service
	Prefs   store.Preferences
	// Synth enables read-aloud when set.
	Synth             voice.Synthesizer
	VoiceStartTimeout time.Duration
	VoiceSynthTimeout time.Duration
	HTTP              *http.Client
	Log               *slog.Logger

	sessions sync.Map // chatID -> *session
	wg       sync.WaitGroup
}

func (r *Router) log() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// Wait blocks until background requests started by handlers have finished.
func (r *Router) Wait() { r.wg.Wait() }

// async runs fn off the update loop so that a slow request does not hold
// back other chats or a Stop tap.
func (r *Router) async(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		metrics.RecordUpdate("callback")
		r.handleCallback(ctx, *upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	msg := upd.Message

	switch {
	case msg.IsCommand():
		metrics.RecordUpdate("command")
		r.HandleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		metrics.RecordUpdate("photo")
		r.acceptPhoto(ctx, msg)
	case msg.Document != nil:
		metrics.RecordUpdate("document")
		r.acceptDocument(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		metrics.RecordUpdate("text")
		r.handleText(ctx, msg)
	}
}

func (r *Router) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	s := r.sessionFor(ctx, cid)
	lang := s.lang()
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		r.sendMarkup(cid, i18n.T(lang, "start"), makeLanguageKeyboard(lang))
	case "help":
		r.send(cid, i18n.T(lang, "help"))
	case "detect":
		s.setPage(pageDetect)
		text := i18n.T(lang, "detectTitle") + "\n" + i18n.T(lang, "detectHint")
		if s.detection.Snapshot().HasImage() {
			r.sendMarkup(cid, text, makeDetectKeyboard(lang))
			return
		}
		r.send(cid, text)
	case "temp":
		r.commandTemp(ctx, s, args)
	case "location":
		s.setPage(pageLocation)
		if args == "" {
			r.send(cid, i18n.T(lang, "locationTitle")+"\n"+i18n.T(lang, "locationPrompt"))
			return
		}
		r.runLocation(ctx, s, args)
	case "species":
		r.commandSpecies(ctx, s, args)
	case "seed":
		s.setPage(pageSeed)
		if args != "" {
			if n, err := strconv.Atoi(strings.TrimSuffix(args, "%")); err == nil {
				s.seed.SetSensitivity(n)
			}
		}
		r.sendSeedPanel(s)
	case "lang":
		if args == "" {
			r.sendMarkup(cid, i18n.T(lang, "languageUsage"), makeLanguageKeyboard(lang))
			return
		}
		l, ok := i18n.Parse(args)
		if !ok {
			r.send(cid, i18n.T(lang, "languageUsage"))
			return
		}
		r.setLanguage(ctx, s, l)
	case "clear":
		r.clearImage(s)
	case "health":
		r.async(func() { r.sendHealth(ctx, s) })
	default:
		r.send(cid, i18n.T(lang, "unknownCommand"))
	}
}

// handleText feeds free text to the page waiting for it.
func (r *Router) handleText(ctx context.Context, msg *tgbotapi.Message) {
	s := r.sessionFor(ctx, msg.Chat.ID)
	switch s.currentPage() {
	case pageTemperature:
		r.runTemperature(ctx, s, msg.Text)
	case pageLocation:
		r.runLocation(ctx, s, msg.Text)
	default:
		r.send(s.chatID, i18n.T(s.lang(), "help"))
	}
}

// commandTemp handles /temp [value] [species].
func (r *Router) commandTemp(ctx context.Context, s *session, args string) {
	s.setPage(pageTemperature)
	lang := s.lang()
	fields := strings.Fields(args)
	if len(fields) > 1 {
		name := strings.Join(fields[1:], " ")
		if !s.temp.SetSpecies(name) {
			r.send(s.chatID, fmt.Sprintf(i18n.T(lang, "speciesUnknown"), strings.Join(aqua.Species, ", ")))
			return
		}
		s.location.SetSpecies(name)
	}
	if len(fields) == 0 {
		st := s.temp.Snapshot()
		text := i18n.T(lang, "tempTitle") + "\n" + i18n.T(lang, "tempPrompt") + "\n\n" +
			i18n.T(lang, "species") + ": " + st.Species
		r.sendMarkup(s.chatID, text, makeSpeciesKeyboard(st.Species))
		return
	}
	r.runTemperature(ctx, s, fields[0])
}

func (r *Router) commandSpecies(ctx context.Context, s *session, args string) {
	lang := s.lang()
	if args == "" {
		r.async(func() {
			list, err := r.Service.SpeciesList(ctx)
			if err != nil {
				r.log().Warn("species list failed", "chat_id", s.chatID, "err", err)
				r.sendMarkup(s.chatID, i18n.T(lang, "speciesPrompt"), makeSpeciesKeyboard(s.temp.Snapshot().Species))
				return
			}
			r.sendMarkdown(s.chatID, renderSpecies(list, lang), makeSpeciesKeyboard(s.temp.Snapshot().Species))
		})
		return
	}
	r.setSpecies(s, args)
}

func (r *Router) setSpecies(s *session, name string) {
	lang := s.lang()
	if !s.temp.SetSpecies(name) {
		r.send(s.chatID, fmt.Sprintf(i18n.T(lang, "speciesUnknown"), strings.Join(aqua.Species, ", ")))
		return
	}
	s.location.SetSpecies(name)
	r.send(s.chatID, fmt.Sprintf(i18n.T(lang, "speciesSet"), s.temp.Snapshot().Species))
}

func (r *Router) setLanguage(ctx context.Context, s *session, l i18n.Language) {
	if s.reader != nil {
		s.reader.Stop()
	}
	if err := s.detection.SetLanguage(ctx, l); err != nil {
		r.log().Error("save language failed", "chat_id", s.chatID, "err", err)
	}
	r.send(s.chatID, i18n.T(l, "languageChanged"))
}

func (r *Router) clearImage(s *session) {
	if s.currentPage() == pageSeed {
		s.seed.Clear()
	} else {
		s.detection.Clear()
	}
	r.send(s.chatID, i18n.T(s.lang(), "imageCleared"))
}

func (r *Router) sendHealth(ctx context.Context, s *session) {
	lang := s.lang()
	h, err := r.Service.Health(ctx)
	if err != nil {
		r.send(s.chatID, fmt.Sprintf(i18n.T(lang, "healthDown"), err))
		return
	}
	r.send(s.chatID, fmt.Sprintf(i18n.T(lang, "healthOK"), h.ModelLoaded))
}

// ---------------- Flows -----------------

// The run* helpers call Start on the update loop so that the Loading
// phase is visible to the next update before anything is sent.

func (r *Router) runDetect(ctx context.Context, s *session) {
	p, err := s.detection.Start()
	if r.skip(s, err) {
		return
	}
	if s.reader != nil {
		s.reader.Stop()
	}
	r.send(s.chatID, i18n.T(s.lang(), "analyzing"))
	r.async(func() {
		res, err := p.Do(ctx)
		if r.skip(s, err) {
			return
		}
		st := s.detection.Snapshot()
		if err != nil {
			r.sendMarkup(s.chatID, "❌ "+i18n.T(st.Language, "connectionError")+"\n"+st.Error, makeRetryKeyboard(st.Language))
			return
		}
		m, ok := r.sendMarkdown(s.chatID, renderDetection(res, st.Language),
			makeResultKeyboard(st.Language, voice.Idle, s.reader != nil))
		if ok {
			s.setResultMsg(m.MessageID)
		}
	})
}

func (r *Router) runTemperature(ctx context.Context, s *session, input string) {
	lang := s.lang()
	p, err := s.temp.Start(input, lang)
	if r.skip(s, err) {
		return
	}
	r.send(s.chatID, i18n.T(lang, "assessing"))
	r.async(func() {
		risk, err := p.Do(ctx)
		if r.skip(s, err) {
			return
		}
		if err != nil {
			r.send(s.chatID, "❌ "+s.temp.Snapshot().Error)
			return
		}
		r.sendMarkdown(s.chatID, renderRisk(risk, lang), nil)
	})
}

func (r *Router) runLocation(ctx context.Context, s *session, input string) {
	lang := s.lang()
	p, err := s.location.Start(input, lang)
	if r.skip(s, err) {
		return
	}
	place := strings.TrimSpace(input)
	r.send(s.chatID, i18n.T(lang, "checkingWeather"))
	r.async(func() {
		rep, err := p.Do(ctx)
		if r.skip(s, err) {
			return
		}
		if err != nil {
			r.send(s.chatID, "❌ "+s.location.Snapshot().Error)
			return
		}
		r.sendMarkdown(s.chatID, renderWeather(rep, place, lang), nil)
	})
}

func (r *Router) runSeedCount(ctx context.Context, s *session) {
	lang := s.lang()
	p, err := s.seed.Start(lang)
	if r.skip(s, err) {
		return
	}
	r.send(s.chatID, i18n.T(lang, "counting"))
	r.async(func() {
		n, err := p.Do(ctx)
		if r.skip(s, err) {
			return
		}
		st := s.seed.Snapshot()
		if err != nil {
			r.sendMarkup(s.chatID, "❌ "+st.Error, makeSeedKeyboard(st, lang))
			return
		}
		r.sendMarkdown(s.chatID, renderSeedResult(n, st.Threshold, lang), makeSeedKeyboard(st, lang))
	})
}

// skip reports outcomes that need no reply of their own.
func (r *Router) skip(s *session, err error) bool {
	switch {
	case errors.Is(err, flow.ErrStale):
		return true
	case errors.Is(err, flow.ErrBusy):
		r.send(s.chatID, i18n.T(s.lang(), "busy"))
		return true
	}
	var ve *flow.ValidationError
	if errors.As(err, &ve) {
		r.send(s.chatID, ve.Message)
		return true
	}
	return false
}

func (r *Router) sendSeedPanel(s *session) {
	lang := s.lang()
	st := s.seed.Snapshot()
	r.sendMarkdown(s.chatID, renderSeedPanel(st, lang), makeSeedKeyboard(st, lang))
}

// refreshVoiceButton swaps Read aloud / Loading / Stop on the result card.
func (r *Router) refreshVoiceButton(s *session, st voice.State) {
	id := s.resultMsg()
	if id == 0 {
		return
	}
	kb := makeResultKeyboard(s.lang(), st, true)
	if _, err := r.Bot.Request(tgbotapi.NewEditMessageReplyMarkup(s.chatID, id, kb)); err != nil {
		r.log().Debug("refresh voice button failed", "chat_id", s.chatID, "err", err)
	}
}

// ---------------- Sending -----------------

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, util.Truncate(text, maxMessageLen, "…"))
	if _, err := r.Bot.Send(msg); err != nil {
		r.log().Warn("send failed", "chat_id", chatID, "err", err)
	}
}

func (r *Router) sendMarkup(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, util.Truncate(text, maxMessageLen, "…"))
	msg.ReplyMarkup = kb
	if _, err := r.Bot.Send(msg); err != nil {
		r.log().Warn("send failed", "chat_id", chatID, "err", err)
	}
}

// sendMarkdown sends a rendered card; kb may be nil.
func (r *Router) sendMarkdown(chatID int64, text string, kb any) (tgbotapi.Message, bool) {
	msg := tgbotapi.NewMessage(chatID, util.Truncate(text, maxMessageLen, "…"))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	m, err := r.Bot.Send(msg)
	if err != nil {
		r.log().Warn("send failed", "chat_id", chatID, "err", err)
		return m, false
	}
	return m, true
}
