package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ugmsa/assistbot/internal/bot"
	"github.com/ugmsa/assistbot/internal/config"
	"github.com/ugmsa/assistbot/internal/knowledge"
	"github.com/ugmsa/assistbot/internal/llm"
	"github.com/ugmsa/assistbot/internal/server"
	"github.com/ugmsa/assistbot/internal/session"
	"github.com/ugmsa/assistbot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Knowledge
	fetcher := knowledge.NewFetcher(cfg.Knowledge.FetchTimeout)
	cache := knowledge.NewCache(fetcher, cfg.Knowledge.DocIDs, cfg.Knowledge.WebsiteURL)

	// Preload so the first chat turn doesn't pay the fetch cost. A failure
	// here is non-fatal; the first turn retries.
	if _, ok := cache.Get(ctx); !ok {
		slog.Warn("knowledge preload failed, will retry on first message")
	}

	// Sessions
	sessions := session.NewStore(session.DefaultMaxTurns)

	// Inference
	completer := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)

	// Transport
	tg := telegram.NewClient(cfg.Telegram.Base(), cfg.Telegram.PollTimeout)

	svc := bot.New(sessions, cache, completer, tg, cfg.Telegram.MainBotURL)

	// Ops server (liveness + metrics), only when a port is configured
	if cfg.Ops.Enabled() {
		srv := server.New(cfg.Ops)
		go func() {
			if err := srv.Start(ctx); err != nil {
				slog.Error("ops server", "error", err)
				stop()
			}
		}()
	}

	if err := svc.Run(ctx); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("bot stopped gracefully")
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
