package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aqua-bot/api/internal/voice"
)

// voicePlayer delivers synthesized speech to the chat as an audio message.
// Playback counts as started once Telegram has accepted the upload.
type voicePlayer struct {
	bot    Bot
	chatID int64
}

func (p *voicePlayer) Play(ctx context.Context, u voice.Utterance, started func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _ = p.bot.Request(tgbotapi.NewChatAction(p.chatID, tgbotapi.ChatRecordVoice))

	audio := tgbotapi.NewAudio(p.chatID, tgbotapi.FileBytes{Name: "speech.mp3", Bytes: u.Audio})
	audio.Title = u.Voice.Name
	audio.Performer = "AquaHealth"
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.bot.Send(audio); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	started()
	return nil
}
