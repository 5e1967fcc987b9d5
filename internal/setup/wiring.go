package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/cleaner"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/config"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/contentfilter"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/database"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/embedding"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/executor"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/guardrails"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm/bedrock"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/llm/ollama"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/metrics"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/retrieval"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/rules"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/validator"
	"github.com/rs/zerolog"
)

type Config struct {
	AWSRegion        string
	ClaudeModelID    string
	EmbeddingModelID string
	OllamaBaseURL    string
	BiobyIAModelID   string
	DefaultProvider  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	Stream        string
	Group         string
	ConsumerName  string
}

type Dependencies struct {
	Executor      *executor.Executor
	CheckExecutor *executor.CheckExecutor
	DB            *database.DB
	Metrics       *metrics.Metrics
	Logger        *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:    getEnv("CLAUDE_MODEL_ID", ""),
		EmbeddingModelID: getEnv("EMBEDDING_MODEL_ID", ""),
		OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		BiobyIAModelID:   getEnv("BIOBYIA_MODEL_ID", "biobyia"),
		DefaultProvider:  getEnv("DEFAULT_LLM_PROVIDER", models.ProviderBedrock),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "guardrails"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		Stream:        getEnv("VALIDATION_STREAM", "guardrail:validations"),
		Group:         getEnv("VALIDATION_GROUP", "guardrail-agent"),
		ConsumerName:  getEnv("CONSUMER_NAME", "guardrail-consumer-1"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	guardrailsConfig, err := config.LoadGuardrailsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load guardrails config: %w", err)
	}

	// Core pipeline
	table := rules.NewTable(rules.Options{
		ForbiddenTopics: guardrailsConfig.Rules.ForbiddenTopics,
		JargonTerms:     guardrailsConfig.Rules.JargonTerms,
		FalseClaims:     guardrailsConfig.Rules.FalseClaims,
	})
	v := validator.New(contentfilter.New(), table, logger)

	checks := enabledChecks(guardrailsConfig.Guardrails.DisabledChecks)
	medicalGuardrails := guardrails.NewWithChecks(checks, logger)
	checkExec := executor.NewCheckExecutor(guardrails.NewRegistry(checks), logger)

	// Storage
	db, err := database.New(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	// Retrieval
	embedder, err := embedding.NewBedrockEmbedder(ctx, cfg.AWSRegion, cfg.EmbeddingModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	retriever := retrieval.NewService(embedder, db, guardrailsConfig.Retrieval.TopK, guardrailsConfig.Retrieval.MinScore)

	// Model providers
	clients, err := createLLMClients(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exec := executor.NewExecutor(
		v,
		cleaner.New(logger),
		medicalGuardrails,
		retriever,
		clients,
		db,
		cfg.DefaultProvider,
		guardrailsConfig.Guardrails.DisclaimerEnabled,
		logger,
	)

	return &Dependencies{
		Executor:      exec,
		CheckExecutor: checkExec,
		DB:            db,
		Metrics:       metrics.New(),
		Logger:        logger,
	}, nil
}

func enabledChecks(disabled []string) []guardrails.Check {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	var checks []guardrails.Check
	for _, check := range guardrails.DefaultChecks() {
		if !skip[check.Name()] {
			checks = append(checks, check)
		}
	}
	return checks
}

func createLLMClients(ctx context.Context, cfg *Config) (map[string]llm.LLMClient, error) {
	clients := make(map[string]llm.LLMClient)

	if cfg.ClaudeModelID != "" {
		bedrockClient, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
		}
		clients[models.ProviderBedrock] = bedrockClient
	}

	ollamaClient, err := ollama.NewClient(cfg.OllamaBaseURL, cfg.BiobyIAModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	clients[models.ProviderOllama] = ollamaClient
	clients[models.ProviderBiobyIA] = ollamaClient

	return clients, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
