package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nvelop/pitchdrill/internal/api"
	"github.com/nvelop/pitchdrill/internal/config"
	"github.com/nvelop/pitchdrill/internal/events"
	"github.com/nvelop/pitchdrill/internal/openai"
	"github.com/nvelop/pitchdrill/internal/roleplay"
	"github.com/nvelop/pitchdrill/internal/scriptgen"
	"github.com/nvelop/pitchdrill/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; plain environment variables work too

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("pitchdrill starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	if cfg.SeedOnStart {
		if err := db.SeedCatalog(ctx); err != nil {
			slog.Error("failed to seed catalog", "error", err)
			os.Exit(1)
		}
		slog.Info("catalog seeded")
	}

	// Model client
	if cfg.OpenAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	llm := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if cfg.OpenAIBaseURL != "" {
		llm.SetBaseURL(cfg.OpenAIBaseURL)
	}
	slog.Info("model client ready", "model", cfg.OpenAIModel)

	// Event publisher (optional — sessions work without a bus, just no
	// downstream notifications)
	var publisher roleplay.Publisher
	if cfg.NatsURL != "" {
		natsPub, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsPub.Close()
		publisher = natsPub
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without lifecycle events")
	}

	synth := roleplay.NewSynthesizer(llm, slog.Default())
	engine := roleplay.NewEngine(db, llm, synth, publisher, slog.Default())
	generator := scriptgen.NewGenerator(llm, slog.Default())

	srv := api.NewServer(engine, db, generator, slog.Default(), cfg.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("pitchdrill ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("pitchdrill stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
