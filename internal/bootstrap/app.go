package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"wastesort-backend/internal/classify"
	"wastesort-backend/internal/llm"
	"wastesort-backend/internal/llm/gemini"
	"wastesort-backend/internal/llm/openai"
	"wastesort-backend/internal/shared/config"
	"wastesort-backend/internal/shared/server"
	"wastesort-backend/internal/shared/storage/object"
	locals "wastesort-backend/internal/shared/storage/object/local"
	s3s "wastesort-backend/internal/shared/storage/object/s3"
	"wastesort-backend/internal/shared/telemetry"
	"wastesort-backend/internal/uploads"
)

// Build assembles the application from configuration: object store, model
// provider, pipeline service, handlers and router.
func Build(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build object store: %w", err)
	}

	vision, narrative := buildProvider(ctx, cfg)

	service := classify.NewService(vision, narrative, cfg.LocationHint)

	router := server.NewRouter(server.RouterDeps{
		Env:             cfg.Env,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		Classify:        classify.NewHandler(service),
		Uploads:         uploads.NewHandler(store, cfg.PublicBaseURL),
	})
	return router, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		return s3s.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	}
	return locals.New(cfg.LocalStoreDir), nil
}

// buildProvider picks the model provider from configuration. A provider that
// cannot be constructed falls back to the placeholder, which answers every
// call as unavailable; the pipeline then emits failure records instead of
// crashing at startup.
func buildProvider(ctx context.Context, cfg config.Config) (llm.VisionClient, llm.NarrativeClient) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
		if err != nil {
			telemetry.Warn("provider.unconfigured", map[string]any{"provider": "gemini", "error": err.Error()})
			return llm.PlaceholderClient{}, llm.PlaceholderClient{}
		}
		return client, client
	case "none":
		return llm.PlaceholderClient{}, llm.PlaceholderClient{}
	default:
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			telemetry.Warn("provider.unconfigured", map[string]any{"provider": "openai", "error": err.Error()})
			return llm.PlaceholderClient{}, llm.PlaceholderClient{}
		}
		return client, client
	}
}
