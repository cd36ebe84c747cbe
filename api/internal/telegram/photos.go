package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aqua-bot/api/internal/flow"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/util"
)

const maxDownload = 20 << 20

func (r *Router) acceptPhoto(ctx context.Context, msg *tgbotapi.Message) {
	// largest size is last
	ph := msg.Photo[len(msg.Photo)-1]
	r.stageImage(ctx, msg.Chat.ID, ph.FileID, "image/jpeg", false)
}

// acceptDocument stages images sent as files; other documents are ignored.
func (r *Router) acceptDocument(ctx context.Context, msg *tgbotapi.Message) {
	d := msg.Document
	if !util.IsImageMIME(d.MimeType) {
		return
	}
	r.stageImage(ctx, msg.Chat.ID, d.FileID, d.MimeType, true)
}

func (r *Router) stageImage(ctx context.Context, chatID int64, fileID, declared string, quietReject bool) {
	s := r.sessionFor(ctx, chatID)
	lang := s.lang()

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		r.log().Warn("get file failed", "chat_id", chatID, "err", err)
		r.send(chatID, i18n.T(lang, "errorUpload"))
		return
	}
	blob, err := r.download(ctx, url)
	if err != nil {
		r.log().Warn("download failed", "chat_id", chatID, "err", err)
		r.send(chatID, i18n.T(lang, "errorUpload"))
		return
	}

	img, ok := flow.SelectImage(blob, declared)
	if !ok {
		if !quietReject {
			r.send(chatID, i18n.T(lang, "notImage"))
		}
		return
	}
	r.log().Debug("image staged", "chat_id", chatID, "mime", img.File.Mime, "sha256", util.SHA256Hex(blob)[:12])

	if s.currentPage() == pageSeed {
		s.seed.SelectImage(img)
		r.sendSeedPanel(s)
		return
	}
	s.setPage(pageDetect)
	s.detection.SelectImage(img)
	r.sendMarkup(chatID, i18n.T(lang, "photoAccepted"), makeDetectKeyboard(lang))
}

func (r *Router) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := r.HTTP
	if client == nil {
		client = httpClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownload))
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
