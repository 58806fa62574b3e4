package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"intake-api/internal/common/config"
	"intake-api/internal/common/logger"
	"intake-api/internal/common/observability"
	"intake-api/internal/handlers/status"
	"intake-api/internal/handlers/submit"
	"intake-api/internal/notify"
	"intake-api/internal/notion"
	"intake-api/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// One long-lived Notion client shared by every request
	notionClient := notion.NewClient(
		cfg.Notion.Token,
		notion.WithBaseURL(cfg.Notion.BaseURL),
		notion.WithTimeout(config.GetDuration(cfg.Notion.Timeout)),
	)

	notifier, err := notify.NewNotifier(cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("failed to create notifier", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.Intake.Timezone)
	if err != nil {
		zapLog.Fatal("invalid intake timezone", zap.String("timezone", cfg.Intake.Timezone), zap.Error(err))
	}

	submitHandler := submit.NewHandler(submit.LoadConfig(cfg.Notion.DatabaseID), notionClient, notifier, loc, log)
	statusHandler := status.NewHandler(status.LoadConfig(cfg.Notion.DatabaseID), notionClient, log)

	srv := server.New(cfg.Server, server.Handlers{
		Submit: submitHandler.Handle,
		Status: statusHandler.Handle,
	}, obs, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
		if err := srv.Stop(); err != nil {
			zapLog.Error("error during shutdown", zap.Error(err))
		}
	}

	zapLog.Info("intake server stopped gracefully")
}
