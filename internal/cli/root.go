package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"docqa/config"
	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/fs"
	"docqa/internal/port"
	"docqa/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "docqa - ask natural-language questions about a document",
	Long: `docqa indexes a document (PDF or plain text) into overlapping chunks with
vector embeddings, then answers questions by trying exact field extraction
first and semantic search second.

Example usage:
  docqa ask resume.pdf -q "What is the CGPA?"
  docqa summary resume.pdf
  docqa serve --addr :8080`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = newLogger(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docqa.yaml)")
}

func newLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}

// newEmbedder builds the configured embedding provider, wrapped in the
// persistent cache when one is configured.
func newEmbedder(cfg *config.Config) (port.Embedder, func(), error) {
	var (
		embedder port.Embedder
		err      error
	)
	switch cfg.Embedding.Provider {
	case "openai":
		embedder, err = embedding.NewOpenAIClient(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model)
	case "ollama":
		embedder, err = embedding.NewOllamaClient(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "mock":
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimension)
	default:
		err = fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if cfg.Embedding.CachePath != "" {
		db, err := bbolt.Open(cfg.Embedding.CachePath, 0600, &bbolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, fmt.Errorf("open embedding cache: %w", err)
		}
		embCache, err := cache.NewEmbeddingCache(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		embedder = cache.NewCachedEmbedder(embedder, embCache)
		cleanup = func() { _ = db.Close() }
	}

	return embedder, cleanup, nil
}

func newChunker(cfg *config.Config) *chunker.PageChunker {
	return chunker.NewPageChunker(cfg.Chunking.Size, cfg.Chunking.Overlap, cfg.Chunking.MaxChunks)
}

// newSession wires a fresh session plus ingestor from the loaded config.
func newSession(cfg *config.Config) (*usecase.Session, *usecase.Ingestor, func(), error) {
	embedder, cleanup, err := newEmbedder(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	ch := newChunker(cfg)
	answers := cache.NewAnswerCache(cfg.Query.CacheSize, time.Duration(cfg.Query.CacheTTLSecs)*time.Second)
	session := usecase.NewSession(ch, embedder, answers, logger, cfg.Ingest.ResetOnUpload)
	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	ingestor := usecase.NewIngestor(session, walker, logger)
	return session, ingestor, cleanup, nil
}
