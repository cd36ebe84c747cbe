package store

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqua-bot/api/internal/i18n"
)

func TestMemoryPreferences(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPreferences()

	l, err := p.Language(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, i18n.Default, l)

	require.NoError(t, p.SetLanguage(ctx, 7, i18n.Telugu))
	l, err = p.Language(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, i18n.Telugu, l)

	assert.Error(t, p.SetLanguage(ctx, 7, i18n.Language("fr")))
}

func TestRedisPreferences(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	p, err := NewRedisPreferences(RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisPreferences error: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	l, err := p.Language(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, i18n.Default, l)

	require.NoError(t, p.SetLanguage(ctx, 100, i18n.Telugu))
	got, err := mr.Get("aqua:lang:100")
	require.NoError(t, err)
	assert.Equal(t, "te", got)
	assert.Equal(t, 0, int(mr.TTL("aqua:lang:100")))

	l, err = p.Language(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, i18n.Telugu, l)

	require.NoError(t, mr.Set("aqua:lang:101", "garbage value"))
	l, err = p.Language(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, i18n.Default, l)

	assert.NoError(t, p.Ping(ctx))
}

func TestRedisPingFailure(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisPreferences(RedisConfig{Addr: addr})
	assert.Error(t, err)
}
