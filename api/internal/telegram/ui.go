package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/flow"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/voice"
)

// Callback data.
const (
	cbDetect    = "detect"
	cbRetry     = "retry"
	cbClear     = "clear"
	cbSpeak     = "speak"
	cbStop      = "stop"
	cbLang      = "lang:"
	cbSpecies   = "species:"
	cbSeedDown  = "seed:-"
	cbSeedUp    = "seed:+"
	cbSeedCount = "seed:count"
	cbNoop      = "noop"
)

const sensitivityStep = 1

func langButton(lang i18n.Language) tgbotapi.InlineKeyboardButton {
	other := lang.Other()
	return tgbotapi.NewInlineKeyboardButtonData("🌐 "+other.Name(), cbLang+string(other))
}

// Detect / remove buttons under a staged image.
func makeDetectKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "detectButton"), cbDetect),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "clearButton"), cbClear),
		),
		tgbotapi.NewInlineKeyboardRow(langButton(lang)),
	)
}

func makeRetryKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "retryButton"), cbRetry),
		),
	)
}

// Read-aloud control under a result. The caption follows the reader state.
func makeResultKeyboard(lang i18n.Language, st voice.State, voiceOn bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if voiceOn {
		var btn tgbotapi.InlineKeyboardButton
		switch st {
		case voice.Loading:
			btn = tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "loading"), cbStop)
		case voice.Speaking:
			btn = tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "stop"), cbStop)
		default:
			btn = tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "readAloud"), cbSpeak)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(langButton(lang)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func makeLanguageKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(langButton(lang)))
}

// Species picker, three per row; the selected one is marked.
func makeSpeciesKeyboard(selected string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, s := range aqua.Species {
		label := s
		if s == selected {
			label = "✓ " + s
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, cbSpecies+s))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func makeSeedKeyboard(st flow.SeedState, lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", cbSeedDown),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d%%", st.Sensitivity), cbNoop),
			tgbotapi.NewInlineKeyboardButtonData("➕", cbSeedUp),
		),
	}
	if st.Image != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "seedButton"), cbSeedCount),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "clearButton"), cbClear),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}

// esc escapes the legacy Markdown markers in server-provided text.
func esc(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "[", "\\[")
	return s
}
