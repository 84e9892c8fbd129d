package main

import (
	"net/http"

	"tv-alert-webhook/internal/application/ingestion"
	"tv-alert-webhook/internal/infra/memory"
	"tv-alert-webhook/internal/infrastructure/config"
	"tv-alert-webhook/internal/infrastructure/logging"
	httpapi "tv-alert-webhook/internal/interface/http"
)

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		fallback := logging.NewLogger(logging.Config{})
		fallback.Fatal().Err(err).Msg("load config failed")
	}
	logger := logging.NewLogger(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	var svc *ingestion.Service
	summary, err := logging.OpenAlertLog(cfg.Log.AlertFile)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Log.AlertFile).Msg("alert log unavailable, summaries disabled")
		svc = ingestion.NewService(memory.NewAlertLog(), logger, nil)
	} else {
		defer summary.Close()
		svc = ingestion.NewService(memory.NewAlertLog(), logger, summary)
	}

	server := httpapi.NewServer(svc, logger, cfg.HTTP.DefaultRecent)

	logger.Info().
		Str("addr", cfg.HTTP.Addr).
		Strs("endpoints", []string{"/webhook", "/status", "/alerts", "/test"}).
		Msg("starting TradingView webhook listener")
	if err := http.ListenAndServe(cfg.HTTP.Addr, server.Handler()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
