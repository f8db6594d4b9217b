package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/quorumhall/roundtable/internal/backend"
	"github.com/quorumhall/roundtable/internal/knowledge"
)

// Config aggregates every setting for the consultation system.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Backend   BackendConfig
	Knowledge KnowledgeConfig
	Consult   ConsultConfig
}

// Load reads configuration from environment variables and validates
// it. Invalid values are fatal here; nothing is silently defaulted to
// mask a misconfiguration.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	backendCfg, err := loadBackendConfig()
	if err != nil {
		return nil, err
	}

	knowledgeCfg, err := loadKnowledgeConfig()
	if err != nil {
		return nil, err
	}

	consultCfg, err := loadConsultConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		AI:        ai,
		Backend:   backendCfg,
		Knowledge: knowledgeCfg,
		Consult:   consultCfg,
	}, nil
}

// ServerConfig describes the optional HTTP API.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the live chat-model client.
type AIConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
	MaxTokens *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds the live model client from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + ARK_MODEL or AK/SK pair")
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:   c.BaseURL,
		Region:    c.Region,
		APIKey:    c.APIKey,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		MaxTokens: maxTokens,
	}, nil
}

// BackendConfig tunes the subprocess fallback.
type BackendConfig struct {
	OllamaBinary      string
	SubprocessTimeout time.Duration
}

func loadBackendConfig() (BackendConfig, error) {
	timeout := backend.DefaultSubprocessTimeout
	if override, err := parseOptionalIntEnv("GEN_SUBPROCESS_TIMEOUT"); err != nil {
		return BackendConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return BackendConfig{}, fmt.Errorf("GEN_SUBPROCESS_TIMEOUT must be positive, got %d", *override)
		}
		timeout = time.Duration(*override) * time.Second
	}

	return BackendConfig{
		OllamaBinary:      getEnvOrDefault("OLLAMA_BIN", "ollama"),
		SubprocessTimeout: timeout,
	}, nil
}

// KnowledgeConfig tunes ingestion and retrieval.
type KnowledgeConfig struct {
	ChunkSize     int
	DocumentsDir  string
	EmbedEndpoint string
	EmbedModel    string
}

func loadKnowledgeConfig() (KnowledgeConfig, error) {
	chunkSize := knowledge.DefaultChunkSize
	if override, err := parseOptionalIntEnv("KNOWLEDGE_CHUNK_SIZE"); err != nil {
		return KnowledgeConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return KnowledgeConfig{}, fmt.Errorf("KNOWLEDGE_CHUNK_SIZE must be positive, got %d", *override)
		}
		chunkSize = *override
	}

	return KnowledgeConfig{
		ChunkSize:     chunkSize,
		DocumentsDir:  getEnvOrDefault("KNOWLEDGE_DOCS_DIR", "legal_docs"),
		EmbedEndpoint: getEnvOrDefault("OLLAMA_HOST", "http://localhost:11434"),
		EmbedModel:    getEnvOrDefault("EMBED_MODEL", "nomic-embed-text"),
	}, nil
}

// ConsultConfig tunes the orchestrator.
type ConsultConfig struct {
	SessionsDir string
	RandomSeed  int64
}

func loadConsultConfig() (ConsultConfig, error) {
	var seed int64
	if raw := strings.TrimSpace(os.Getenv("CONSULT_RANDOM_SEED")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ConsultConfig{}, fmt.Errorf("invalid CONSULT_RANDOM_SEED value %q: %w", raw, err)
		}
		seed = parsed
	}

	return ConsultConfig{
		SessionsDir: getEnvOrDefault("CONSULT_SESSION_DIR", "."),
		RandomSeed:  seed,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
