package main

import (
	"context"
	"os"

	"wastesort-backend/internal/bootstrap"
	"wastesort-backend/internal/shared/config"
	"wastesort-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	router, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		telemetry.Error("startup.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	telemetry.Info("server.listening", map[string]any{
		"addr":     addr,
		"env":      cfg.Env,
		"provider": cfg.LLMProvider,
		"store":    cfg.ObjectStoreType,
	})
	if err := router.Run(addr); err != nil {
		telemetry.Error("server.stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
