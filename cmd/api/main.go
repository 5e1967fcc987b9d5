package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/api"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/api/middleware"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/metrics"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/setup"
	"github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx := context.Background()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}
	defer deps.DB.Close()

	if err := deps.DB.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database unreachable")
	}

	// API
	handler := api.NewHandler(deps.Executor, deps.CheckExecutor, deps.DB, deps.Metrics, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger(&logger))
	container.Filter(middleware.RecoverPanic(&logger))
	api.RegisterRoutes(container, handler)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", corsHandler.Handler(container))

	// Server
	port := os.Getenv("GUARDRAIL_AGENT_API_PORT")
	if port == "" {
		port = "18082"
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("address", addr).Msg("Starting Guardrail Agent API")

	server := http.Server{
		Addr:    addr,
		Handler: mux,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
