package store

import (
	"context"
	"fmt"
	"sync"

	"aqua-bot/api/internal/i18n"
)

// Preferences keeps per-chat settings. A chat without a stored language
// reads as i18n.Default.
type Preferences interface {
	Language(ctx context.Context, chatID int64) (i18n.Language, error)
	SetLanguage(ctx context.Context, chatID int64, lang i18n.Language) error
}

// Backend names accepted by PREFS_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// decode maps a stored value back to a language; junk reads as default.
func decode(v string) i18n.Language {
	if l, ok := i18n.Parse(v); ok {
		return l
	}
	return i18n.Default
}

type MemoryPreferences struct {
	mu   sync.RWMutex
	lang map[int64]i18n.Language
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{lang: make(map[int64]i18n.Language)}
}

func (m *MemoryPreferences) Language(_ context.Context, chatID int64) (i18n.Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.lang[chatID]; ok {
		return l, nil
	}
	return i18n.Default, nil
}

func (m *MemoryPreferences) SetLanguage(_ context.Context, chatID int64, lang i18n.Language) error {
	if lang.OrDefault() != lang {
		return fmt.Errorf("store: unsupported language %q", lang)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lang[chatID] = lang
	return nil
}
