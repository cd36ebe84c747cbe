package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aqua-bot/api/internal/flow"
	"aqua-bot/api/internal/i18n"
)

func (r *Router) handleCallback(ctx context.Context, cq tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		_, _ = r.Bot.Request(tgbotapi.NewCallback(cq.ID, ""))
		return
	}
	cid := cq.Message.Chat.ID
	mid := cq.Message.MessageID
	s := r.sessionFor(ctx, cid)
	lang := s.lang()
	data := cq.Data

	ack := ""
	switch {
	case data == cbDetect || data == cbRetry:
		if s.detection.Snapshot().Phase == flow.Loading {
			ack = i18n.T(lang, "busy")
			break
		}
		r.removeKeyboard(cid, mid)
		r.runDetect(ctx, s)

	case data == cbClear:
		r.removeKeyboard(cid, mid)
		r.clearImage(s)

	case data == cbSpeak:
		if s.reader == nil {
			break
		}
		st := s.detection.Snapshot()
		if st.Result == nil {
			break
		}
		s.setResultMsg(mid)
		ack = i18n.T(lang, "loading")
		s.reader.Speak(ctx, speechText(*st.Result, st.Language), st.Language)

	case data == cbStop:
		if s.reader != nil {
			s.reader.Stop()
		}

	case strings.HasPrefix(data, cbLang):
		l, ok := i18n.Parse(strings.TrimPrefix(data, cbLang))
		if !ok {
			break
		}
		r.removeKeyboard(cid, mid)
		r.setLanguage(ctx, s, l)
		if st := s.detection.Snapshot(); st.HasImage() && s.currentPage() == pageDetect {
			r.sendMarkup(cid, i18n.T(l, "photoAccepted"), makeDetectKeyboard(l))
		}

	case strings.HasPrefix(data, cbSpecies):
		r.setSpecies(s, strings.TrimPrefix(data, cbSpecies))

	case data == cbSeedDown || data == cbSeedUp:
		n := s.seed.Sensitivity()
		if data == cbSeedDown {
			n -= sensitivityStep
		} else {
			n += sensitivityStep
		}
		s.seed.SetSensitivity(n)
		st := s.seed.Snapshot()
		edit := tgbotapi.NewEditMessageText(cid, mid, renderSeedPanel(st, lang))
		edit.ParseMode = tgbotapi.ModeMarkdown
		kb := makeSeedKeyboard(st, lang)
		edit.ReplyMarkup = &kb
		if _, err := r.Bot.Request(edit); err != nil {
			r.log().Debug("edit seed panel failed", "chat_id", cid, "err", err)
		}

	case data == cbSeedCount:
		if s.seed.Snapshot().Phase == flow.Loading {
			ack = i18n.T(lang, "busy")
			break
		}
		r.removeKeyboard(cid, mid)
		r.runSeedCount(ctx, s)
	}

	_, _ = r.Bot.Request(tgbotapi.NewCallback(cq.ID, ack))
}

// removeKeyboard drops the inline keyboard so the trigger cannot be tapped
// again while the request runs.
func (r *Router) removeKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, emptyKeyboard())
	if _, err := r.Bot.Request(edit); err != nil {
		r.log().Debug("remove keyboard failed", "chat_id", chatID, "err", err)
	}
}
