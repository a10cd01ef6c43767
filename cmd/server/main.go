package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/RodrigoAlexander7/law-copilot/internal/adapter/embed"
	"github.com/RodrigoAlexander7/law-copilot/internal/adapter/gemini"
	"github.com/RodrigoAlexander7/law-copilot/internal/adapter/httpapi"
	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
	"github.com/RodrigoAlexander7/law-copilot/internal/index"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/config"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/logger"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/otel"
	"github.com/RodrigoAlexander7/law-copilot/internal/usecase"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Telemetry + Logger
	otelCfg := otel.ConfigFromEnv()
	shutdownOTel, err := otel.InitProvider(context.Background(), otelCfg)
	if err != nil {
		slog.Error("failed to init telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOTel(ctx)
	}()

	log := logger.NewWithOTel(otelCfg.Enabled)
	slog.SetDefault(log)

	// 3. Load Index Artifacts. The service refuses to start without a
	// complete, consistent artifact set.
	flat, manifest, err := index.Load(cfg.IndexDir, cfg.IndexName)
	if err != nil {
		log.Error("failed to load index artifacts",
			"dir", cfg.IndexDir, "name", cfg.IndexName, "error", err)
		os.Exit(1)
	}
	log.Info("index_loaded",
		"records", manifest.TotalRecords,
		"dimension", manifest.Dimension,
		"encoder", manifest.Encoder,
		"sources", manifest.SourceIDs,
	)

	// 4. Initialize Adapters
	var encoder domain.VectorEncoder = embed.NewOllamaEmbedder(
		cfg.OllamaURL,
		cfg.EmbeddingModel,
		cfg.EmbedBatchSize,
		time.Duration(cfg.EmbedTimeout)*time.Second,
		cfg.EmbedRPS,
		log,
	)
	if cfg.EmbedCacheSize > 0 {
		cached, err := embed.NewCachedEncoder(encoder, cfg.EmbedCacheSize)
		if err != nil {
			log.Error("failed to init embed cache", "error", err)
			os.Exit(1)
		}
		encoder = cached
	}
	llm := gemini.NewGenerator(
		cfg.GeminiBaseURL,
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		time.Duration(cfg.LLMTimeout)*time.Second,
		log,
	)

	// 5. Initialize Usecases
	retrievalCfg := usecase.RetrievalConfig{
		TopK:           cfg.TopK,
		ScoreThreshold: float32(cfg.ScoreThreshold),
		RelaxFactor:    float32(cfg.RelaxFactor),
		MaxConcepts:    cfg.MaxConcepts,
		UseRewriting:   cfg.UseRewriting,
	}
	if err := retrievalCfg.Validate(); err != nil {
		log.Error("invalid retrieval config", "error", err)
		os.Exit(1)
	}

	rewriter := usecase.NewRewriteQueryUsecase(llm, cfg.RewriteMaxToken, log)
	retriever := usecase.NewRetrieveUsecase(encoder, flat, rewriter, retrievalCfg, log)
	answerer := usecase.NewAnswerUsecase(llm, float32(cfg.LLMTemperature), cfg.LLMMaxTokens, log)
	legalQuery := usecase.NewLegalQueryUsecase(retriever, answerer, encoder, flat, llm, log)

	// 6. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.ErrorContext(c.Request().Context(), "request_failed",
					"method", v.Method, "uri", v.URI, "status", v.Status,
					"latency_ms", v.Latency.Milliseconds(), "error", v.Error.Error())
				return nil
			}
			log.InfoContext(c.Request().Context(), "request_completed",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency_ms", v.Latency.Milliseconds())
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 7. Register Handlers
	handler := httpapi.NewHandler(legalQuery, log)
	handler.Register(e)

	// 8. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
