package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aqua-bot/api/internal/i18n"
)

type PGPreferences struct{ DB *sql.DB }

func NewPGPreferences(db *sql.DB) *PGPreferences { return &PGPreferences{DB: db} }

// Migrate creates the chat_prefs table if it is missing.
func (r *PGPreferences) Migrate(ctx context.Context) error {
	const q = `
create table if not exists chat_prefs(
	chat_id    bigint primary key,
	language   text not null,
	updated_at timestamptz not null default now()
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *PGPreferences) Language(ctx context.Context, chatID int64) (i18n.Language, error) {
	const q = `select language from chat_prefs where chat_id=$1`
	var v string
	if err := r.DB.QueryRowContext(ctx, q, chatID).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return i18n.Default, nil
		}
		return i18n.Default, err
	}
	return decode(v), nil
}

// SetLanguage upserts the chat language. PK: chat_id.
func (r *PGPreferences) SetLanguage(ctx context.Context, chatID int64, lang i18n.Language) error {
	if lang.OrDefault() != lang {
		return fmt.Errorf("store: unsupported language %q", lang)
	}
	const q = `
insert into chat_prefs(chat_id, language)
values ($1,$2)
on conflict (chat_id)
do update set language=excluded.language, updated_at=now()`
	_, err := r.DB.ExecContext(ctx, q, chatID, string(lang))
	return err
}
