package index

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/model"
)

// SearchOptions contains options for similarity search
type SearchOptions struct {
	Query string // natural language query
	Limit int    // maximum number of propositions to return
}

// Search embeds the query text and returns the nearest stored
// propositions by cosine distance.
func (u *UseCase) Search(ctx context.Context, opts SearchOptions) ([]*model.Proposition, error) {
	if opts.Query == "" {
		return nil, goerr.New("search query is empty")
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}

	embedding, err := u.gemini.Embedding(ctx, opts.Query, u.dimension)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed search query")
	}

	props, err := u.repo.SearchSimilar(ctx, embedding, opts.Limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search similar propositions")
	}

	return props, nil
}
