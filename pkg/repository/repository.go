package repository

import (
	"context"

	"github.com/propdex/propdex/pkg/model"
)

// Repository defines the vector index operations used by the pipeline.
type Repository interface {
	// Upsert writes a batch of proposition records, overwriting any
	// existing record with the same ID. No transactional guarantee
	// across the batch.
	Upsert(ctx context.Context, props []*model.Proposition) error

	// Fetch returns the stored records for the requested IDs. IDs not
	// found are omitted from the result, not reported as errors.
	Fetch(ctx context.Context, ids []model.PropositionID) ([]*model.Proposition, error)

	// List retrieves stored records ordered by creation time.
	List(ctx context.Context, offset, limit int) ([]*model.Proposition, error)

	// SearchSimilar performs nearest-neighbour search by cosine distance.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*model.Proposition, error)

	// Close releases the underlying client.
	Close() error
}
