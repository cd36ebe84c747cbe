package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqua-bot/api/internal/i18n"
)

// Needs a scratch database: TEST_DATABASE_URL=postgres://... go test ./...
func TestPGPreferences(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p := NewPGPreferences(db)
	require.NoError(t, p.Migrate(ctx))
	const chatID = -424242
	_, _ = db.ExecContext(ctx, `delete from chat_prefs where chat_id=$1`, chatID)

	l, err := p.Language(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, i18n.Default, l)

	require.NoError(t, p.SetLanguage(ctx, chatID, i18n.Telugu))
	require.NoError(t, p.SetLanguage(ctx, chatID, i18n.English))
	l, err = p.Language(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, l)
}
