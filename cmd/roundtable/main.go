package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quorumhall/roundtable/internal/backend"
	"github.com/quorumhall/roundtable/internal/config"
	"github.com/quorumhall/roundtable/internal/ingest"
	"github.com/quorumhall/roundtable/internal/knowledge"
	"github.com/quorumhall/roundtable/internal/model/persona"
	"github.com/quorumhall/roundtable/internal/service/agent"
	consultservice "github.com/quorumhall/roundtable/internal/service/consult"
	"github.com/quorumhall/roundtable/internal/service/prompt"
)

func main() {
	root := &cobra.Command{
		Use:           "roundtable",
		Short:         "Multi-AI expert panel with a retrieval-augmented legal knowledge base",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newChatCmd(), newIngestCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// system bundles everything the commands need after bootstrap.
type system struct {
	cfg       *config.Config
	logger    *zap.Logger
	personas  *persona.MemoryStore
	store     *knowledge.Store
	consult   *consultservice.Service
	selection *backend.Selection
}

// signalContext cancels on interrupt so every command can flush state
// before terminating.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// bootstrap loads configuration, probes the generation backend once,
// prepares the knowledge store and assembles the panel.
func bootstrap(ctx context.Context, development bool) (*system, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := buildLogger(development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	store, err := buildKnowledgeStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	roster := persona.Seed()
	personaStore := persona.NewMemoryStore(roster)

	// Only Legal-AI carries the retrieval capability, matching its
	// role as the panel's grounded expert.
	if legal, ok := personaStore.FindByName("Legal-AI"); ok && store != nil {
		legal.BindKnowledge(store)
	}

	selection := selectBackend(ctx, cfg, logger)

	prompts := prompt.NewManager()
	agents := make([]*agent.Agent, 0, len(roster))
	for _, p := range roster {
		agents = append(agents, agent.New(p, prompts, selection, logger))
	}

	consultSvc, err := consultservice.New(agents, cfg.Consult.RandomSeed, logger)
	if err != nil {
		return nil, fmt.Errorf("build orchestrator: %w", err)
	}

	return &system{
		cfg:       cfg,
		logger:    logger,
		personas:  personaStore,
		store:     store,
		consult:   consultSvc,
		selection: selection,
	}, nil
}

func buildLogger(development bool) (*zap.Logger, error) {
	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	return zap.NewProduction()
}

// buildKnowledgeStore prefers the Ollama embedding server and falls
// back to the deterministic lexical embedder so retrieval keeps
// working offline.
func buildKnowledgeStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*knowledge.Store, error) {
	var embedder knowledge.Embedder

	ollama := knowledge.NewOllamaEmbedder(cfg.Knowledge.EmbedEndpoint, cfg.Knowledge.EmbedModel)
	if err := ollama.HealthCheck(ctx); err == nil {
		embedder = ollama
		logger.Info("embedding engine selected", zap.String("engine", ollama.Name()))
	} else {
		embedder = knowledge.NewLexicalEmbedder(0)
		logger.Warn("embedding server unreachable, using lexical fallback", zap.Error(err))
	}

	store, err := knowledge.NewStore(embedder, cfg.Knowledge.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("build knowledge store: %w", err)
	}

	if err := ingest.EnsureSamples(cfg.Knowledge.DocumentsDir); err != nil {
		return nil, fmt.Errorf("prepare sample corpus: %w", err)
	}

	report, err := ingest.LoadDirectory(ctx, store, cfg.Knowledge.DocumentsDir, logger)
	if err != nil {
		return nil, fmt.Errorf("ingest documents: %w", err)
	}
	logger.Info("knowledge base ready",
		zap.Int("documents", report.Documents), zap.Int("chunks", report.Chunks))

	return store, nil
}

func selectBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) *backend.Selection {
	selectCfg := backend.SelectConfig{
		Binary:  cfg.Backend.OllamaBinary,
		Timeout: cfg.Backend.SubprocessTimeout,
		Seed:    cfg.Consult.RandomSeed,
	}

	if cfg.AI.Enabled() {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			logger.Warn("failed to construct live chat model", zap.Error(err))
		} else {
			selectCfg.ChatModel = chatModel
		}
	}

	return backend.Select(ctx, selectCfg, logger)
}
