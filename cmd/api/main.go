package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"productstudio/internal/adapter/repo"
	"productstudio/internal/fulfillment"
	"productstudio/internal/http/handlers"
	"productstudio/internal/http/httpapi"
	"productstudio/internal/imagegen"
	"productstudio/internal/infra"
	"productstudio/internal/metrics"
	"productstudio/internal/providers/genai"
	"productstudio/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	stores, err := repo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() { _ = stores.Close(context.Background()) }()

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare asset directory")
	}
	cfg.StoragePath = files.BasePath()
	assets := storage.NewAssetStore(files, cfg.PublicAssetBaseURL())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	httpClient := &http.Client{Timeout: cfg.GenerationTimeout + cfg.GenerationTimeout/2}
	gateway, err := imagegen.NewGateway(imagegen.Options{
		Images:         genai.NewClient(genai.Options{APIKey: cfg.ImageAPIKey, BaseURL: cfg.GeminiBaseURL, HTTPClient: httpClient}),
		Text:           genai.NewClient(genai.Options{APIKey: cfg.GeminiAPIKey, BaseURL: cfg.GeminiBaseURL, HTTPClient: httpClient}),
		ImageModels:    cfg.ImageModels,
		TextModel:      cfg.TextModel,
		AttemptTimeout: cfg.GenerationTimeout,
		Logger:         logger,
		Metrics:        m,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build generation gateway")
	}

	app := &handlers.App{
		Config:    cfg,
		Logger:    logger,
		Products:  fulfillment.NewService(stores.Products, assets, logger, m),
		Generator: gateway,
		Assets:    assets,
		History:   stores.History,
		Registry:  registry,
	}
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Strs("image_models", gateway.ImageModels()).
			Str("assets", cfg.StoragePath).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
