package repository

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/propdex/propdex/pkg/model"
)

// Memory is an in-process Repository used by tests and dry runs. It keeps
// records in insertion order and implements the same upsert/fetch
// semantics as the Firestore implementation.
type Memory struct {
	mu      sync.RWMutex
	records map[model.PropositionID]*model.Proposition
	order   []model.PropositionID
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[model.PropositionID]*model.Proposition),
	}
}

func (r *Memory) Upsert(ctx context.Context, props []*model.Proposition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range props {
		if err := p.Validate(); err != nil {
			return err
		}

		clone := *p
		if clone.Metadata == nil {
			clone.Metadata = map[string]any{
				"content":   p.Text,
				"paragraph": p.Paragraph,
				"run_id":    p.RunID,
			}
		}
		if _, exists := r.records[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.records[p.ID] = &clone
	}

	return nil
}

func (r *Memory) Fetch(ctx context.Context, ids []model.PropositionID) ([]*model.Proposition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	props := make([]*model.Proposition, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.records[id]; ok {
			clone := *p
			props = append(props, &clone)
		}
	}

	return props, nil
}

func (r *Memory) List(ctx context.Context, offset, limit int) ([]*model.Proposition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset >= len(r.order) {
		return nil, nil
	}

	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}

	props := make([]*model.Proposition, 0, end-offset)
	for _, id := range r.order[offset:end] {
		clone := *r.records[id]
		props = append(props, &clone)
	}

	return props, nil
}

func (r *Memory) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*model.Proposition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		prop     *model.Proposition
		distance float64
	}

	results := make([]scored, 0, len(r.records))
	for _, id := range r.order {
		p := r.records[id]
		clone := *p
		results = append(results, scored{
			prop:     &clone,
			distance: cosineDistance(embedding, p.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	props := make([]*model.Proposition, len(results))
	for i, s := range results {
		props[i] = s.prop
	}

	return props, nil
}

func (r *Memory) Close() error {
	return nil
}

// Count reports the number of stored records.
func (r *Memory) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func cosineDistance(a []float32, b []float32) float64 {
	if len(a) != len(b) {
		return 2
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 2
	}

	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
