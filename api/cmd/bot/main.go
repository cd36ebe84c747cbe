package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"golang.org/x/sync/errgroup"

	"aqua-bot/api/internal/config"
	"aqua-bot/api/internal/httpserver"
	"aqua-bot/api/internal/inference"
	"aqua-bot/api/internal/logging"
	"aqua-bot/api/internal/metrics"
	"aqua-bot/api/internal/store"
	"aqua-bot/api/internal/telegram"
	"aqua-bot/api/internal/voice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr)
	slog.SetDefault(logger)
	metrics.Init()

	baseURL, err := cfg.BaseURL()
	if err != nil {
		logger.Error("inference endpoint", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prefs, checks, closePrefs, err := openPrefs(ctx, cfg, logger)
	if err != nil {
		logger.Error("preferences store", "backend", cfg.PrefsBackend, "err", err)
		os.Exit(1)
	}
	defer closePrefs()

	svc := inference.New(baseURL, cfg.APITimeout, logger)
	logger.Info("inference service", "base_url", baseURL, "timeout", cfg.APITimeout)

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Error("telegram login", "err", err)
		os.Exit(1)
	}
	bot.Debug = false
	logger.Info("telegram authorized", "bot", bot.Self.UserName)

	r := &telegram.Router{
		Bot:               bot,
		Service:           svc,
		Prefs:             prefs,
		VoiceStartTimeout: cfg.VoiceStartTimeout,
		VoiceSynthTimeout: cfg.VoiceSynthTimeout,
		Log:               logger,
	}
	if cfg.VoiceEnabled {
		r.Synth = voice.NewEdgeSynthesizer(logger)
	}

	mux := httpserver.NewMux(checks)
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	// Requests already accepted outlive the signal; drain bounds them.
	work, cancelWork := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelWork()

	// --- Choose mode: Webhook vs Polling ---
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL != "" {
		updates, err := registerWebhook(bot, mux, webhookURL, logger)
		if err != nil {
			logger.Error("webhook setup", "err", err)
			os.Exit(1)
		}
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case upd := <-updates:
					r.HandleUpdate(work, upd)
				}
			}
		})
	} else {
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Warn("delete webhook", "err", err)
		}
		g.Go(func() error {
			runPolling(gctx, bot, logger, func(upd tgbotapi.Update) {
				r.HandleUpdate(work, upd)
			})
			return nil
		})
	}

	g.Go(func() error { return httpserver.Serve(gctx, srv, logger) })

	if err := g.Wait(); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if !drain(r.Wait, cfg.ShutdownTimeout, cancelWork) {
		logger.Warn("in-flight requests cancelled", "after", cfg.ShutdownTimeout)
	}
	logger.Info("bye")
}

// drain waits for wait to return. After timeout it calls cancel and keeps
// waiting; the result reports whether everything finished in time.
func drain(wait func(), timeout time.Duration, cancel func()) bool {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-done:
		return true
	case <-t.C:
		cancel()
		<-done
		return false
	}
}

// registerWebhook points Telegram at a secret path derived from the token and
// mounts the receiving handler on mux.
func registerWebhook(bot *tgbotapi.BotAPI, mux *http.ServeMux, baseURL string, logger *slog.Logger) (<-chan tgbotapi.Update, error) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return nil, err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return nil, err
	}

	updates := make(chan tgbotapi.Update, bot.Buffer)
	mux.Handle(path, httpserver.Webhook(bot.HandleUpdate, updates, logger))
	logger.Info("webhook registered", "path", path)
	return updates, nil
}

// openPrefs picks the preference backend and returns its health checks and
// a close func.
func openPrefs(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Preferences, map[string]httpserver.Check, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.PrefsBackend)) {
	case store.BackendMemory:
		logger.Warn("preferences kept in memory; language choices are lost on restart")
		return store.NewMemoryPreferences(), nil, func() {}, nil

	case store.BackendRedis:
		p, err := store.NewRedisPreferences(store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("redis connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		checks := map[string]httpserver.Check{"redis": p.Ping}
		return p, checks, func() { _ = p.Close() }, nil

	case store.BackendPostgres, "":
		dsn := cfg.DSN()
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		// a handful of chats write a row on each language change
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(1 * time.Hour)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		logger.Info("db connected", "dsn", safeDSNSummary(dsn))

		p := store.NewPGPreferences(db)
		if err := p.Migrate(pingCtx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		checks := map[string]httpserver.Check{"db": db.PingContext}
		return p, checks, func() { _ = db.Close() }, nil
	}
	return nil, nil, nil, errors.New("unknown PREFS_BACKEND " + cfg.PrefsBackend)
}

func shortHash(s string) string {
	// non-cryptographic FNV-1a, stable for a given token
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}

func safeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "dsn: parse error"
	}
	user := u.User.Username()
	host := u.Host
	port := ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	if port == "" {
		return fmt.Sprintf("host=%s db=%s user=%s", host, db, user)
	}
	return fmt.Sprintf("host=%s port=%s db=%s user=%s", host, port, db, user)
}
