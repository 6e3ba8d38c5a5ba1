package index

import (
	"context"
	"io"
	"os"

	"github.com/propdex/propdex/pkg/adapter"
	"github.com/propdex/propdex/pkg/repository"
)

// DefaultDimension matches the all-MiniLM class of sentence embeddings.
const DefaultDimension = 384

// Extractor decomposes a paragraph into atomic propositions. The default
// implementation delegates to an LLM; tests inject stubs.
type Extractor interface {
	Extract(ctx context.Context, paragraph string) ([]string, error)
}

// UseCase runs the proposition indexing pipeline.
type UseCase struct {
	repo      repository.Repository
	gemini    adapter.Gemini
	extractor Extractor
	output    io.Writer
	dimension int
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithOutput sets the writer for progress and result lines.
func WithOutput(w io.Writer) Option {
	return func(uc *UseCase) {
		uc.output = w
	}
}

// WithExtractor replaces the LLM-backed extractor.
func WithExtractor(e Extractor) Option {
	return func(uc *UseCase) {
		uc.extractor = e
	}
}

// WithDimension sets the embedding vector length.
func WithDimension(dim int) Option {
	return func(uc *UseCase) {
		uc.dimension = dim
	}
}

// New creates a new indexing UseCase instance
func New(
	repo repository.Repository,
	gemini adapter.Gemini,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		repo:      repo,
		gemini:    gemini,
		output:    os.Stdout,
		dimension: DefaultDimension,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.extractor == nil {
		uc.extractor = NewGeminiExtractor(gemini)
	}

	return uc
}
