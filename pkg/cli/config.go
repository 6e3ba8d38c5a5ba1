package cli

import (
	"context"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/adapter"
	"github.com/propdex/propdex/pkg/repository"
	"github.com/propdex/propdex/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Repository
	project    string
	database   string
	collection string

	// Adapters
	geminiAPIKey    string
	generativeModel string
	embeddingModel  string

	logLevel string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "collection",
			Usage:       "Vector index collection name",
			Value:       "propositions",
			Sources:     cli.EnvVars("PROPDEX_COLLECTION"),
			Destination: &cfg.collection,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("PROPDEX_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for LLM-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key (prompted interactively when absent)",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "generative-model",
			Usage:       "Gemini model for proposition extraction",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("PROPDEX_GENERATIVE_MODEL"),
			Destination: &cfg.generativeModel,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Gemini model for embeddings",
			Value:       "gemini-embedding-001",
			Sources:     cli.EnvVars("PROPDEX_EMBEDDING_MODEL"),
			Destination: &cfg.embeddingModel,
		},
	}
}

// loggerContext attaches a logger configured from flags to the context.
func (cfg *config) loggerContext(ctx context.Context) context.Context {
	return logging.With(ctx, logging.New(cfg.logLevel, os.Stderr))
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database, cfg.collection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance. When no API key is
// configured it prompts for one interactively.
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiAPIKey == "" {
		key, err := promptAPIKey()
		if err != nil {
			return nil, err
		}
		cfg.geminiAPIKey = key
	}
	if cfg.geminiAPIKey == "" {
		return nil, goerr.New("gemini-api-key is required")
	}

	return adapter.NewGemini(ctx, cfg.geminiAPIKey,
		adapter.WithGenerativeModel(cfg.generativeModel),
		adapter.WithEmbeddingModel(cfg.embeddingModel),
	)
}

func promptAPIKey() (string, error) {
	rl, err := readline.New("")
	if err != nil {
		return "", goerr.Wrap(err, "failed to open terminal for API key prompt")
	}
	defer rl.Close()

	key, err := rl.ReadPassword("Enter Gemini API key: ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read API key")
	}

	return strings.TrimSpace(string(key)), nil
}
