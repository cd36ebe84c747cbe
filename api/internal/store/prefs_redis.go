package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"aqua-bot/api/internal/i18n"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisPreferences stores the language under <prefix>lang:<chatID> with no
// expiry.
type RedisPreferences struct {
	client *redis.Client
	prefix string
}

func NewRedisPreferences(cfg RedisConfig) (*RedisPreferences, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "aqua:"
	}
	return &RedisPreferences{client: client, prefix: prefix}, nil
}

func (r *RedisPreferences) key(chatID int64) string {
	return r.prefix + "lang:" + strconv.FormatInt(chatID, 10)
}

func (r *RedisPreferences) Language(ctx context.Context, chatID int64) (i18n.Language, error) {
	v, err := r.client.Get(ctx, r.key(chatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return i18n.Default, nil
		}
		return i18n.Default, err
	}
	return decode(v), nil
}

func (r *RedisPreferences) SetLanguage(ctx context.Context, chatID int64, lang i18n.Language) error {
	if lang.OrDefault() != lang {
		return fmt.Errorf("store: unsupported language %q", lang)
	}
	return r.client.Set(ctx, r.key(chatID), string(lang), 0).Err()
}

func (r *RedisPreferences) Close() error {
	return r.client.Close()
}

// Ping backs the /healthz check.
func (r *RedisPreferences) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
