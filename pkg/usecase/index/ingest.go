package index

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/model"
	"github.com/propdex/propdex/pkg/utils/logging"
)

// IngestOptions contains options for an ingest run
type IngestOptions struct {
	Show   int // how many propositions to echo after upload
	Verify int // how many records to fetch back for verification
}

// IngestResult summarizes a completed run.
type IngestResult struct {
	RunID        string
	Paragraphs   int
	Propositions []*model.Proposition
	Verified     int
}

// Ingest runs the full pipeline on the given text:
// split into paragraphs, extract propositions, embed each one, upsert the
// records, then fetch a handful back to confirm persistence. Any failure
// aborts the run; there is no retry and no partial-result persistence.
func (u *UseCase) Ingest(ctx context.Context, text string, opts IngestOptions) (*IngestResult, error) {
	if opts.Show <= 0 {
		opts.Show = 10
	}
	if opts.Verify <= 0 {
		opts.Verify = 5
	}

	paragraphs := SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil, goerr.New("input text contains no paragraphs")
	}

	logger := logging.From(ctx)
	runID := uuid.New().String()
	logger.Info("starting ingest run", "run_id", runID, "paragraphs", len(paragraphs))

	fmt.Fprintf(u.output, "Extracting propositions...\n\n")

	var texts []string
	var sourceParagraph []int
	for i, paragraph := range paragraphs {
		fmt.Fprintf(u.output, "Processing paragraph %d/%d...\n", i+1, len(paragraphs))

		extracted, err := u.extractor.Extract(ctx, paragraph)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to extract propositions", goerr.V("paragraph", i))
		}

		for _, sentence := range extracted {
			fmt.Fprintf(u.output, "  - %s\n", sentence)
			texts = append(texts, sentence)
			sourceParagraph = append(sourceParagraph, i)
		}

		logger.Debug("paragraph extracted", "paragraph", i, "propositions", len(extracted))
	}

	fmt.Fprintf(u.output, "\nUploading %d propositions...\n", len(texts))

	props := make([]*model.Proposition, 0, len(texts))
	for i, sentence := range texts {
		embedding, err := u.gemini.Embedding(ctx, sentence, u.dimension)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to embed proposition",
				goerr.V("id", model.NewPropositionID(i)))
		}

		props = append(props, &model.Proposition{
			ID:        model.NewPropositionID(i),
			Text:      sentence,
			Paragraph: sourceParagraph[i],
			RunID:     runID,
			Embedding: firestore.Vector32(embedding),
			CreatedAt: time.Now(),
		})
	}

	if err := u.repo.Upsert(ctx, props); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert propositions", goerr.V("run_id", runID))
	}

	fmt.Fprintf(u.output, "Uploaded %d vectors\n", len(props))

	show := opts.Show
	if show > len(props) {
		show = len(props)
	}
	fmt.Fprintf(u.output, "\nTotal propositions: %d\n", len(props))
	if show > 0 {
		fmt.Fprintf(u.output, "First %d:\n", show)
		for _, p := range props[:show] {
			fmt.Fprintf(u.output, "  - %s\n", p.Text)
		}
	}

	verifyCount := opts.Verify
	if verifyCount > len(props) {
		verifyCount = len(props)
	}
	verified, err := u.Verify(ctx, verifyCount)
	if err != nil {
		return nil, err
	}

	logger.Info("ingest run finished",
		"run_id", runID, "propositions", len(props), "verified", verified)

	return &IngestResult{
		RunID:        runID,
		Paragraphs:   len(paragraphs),
		Propositions: props,
		Verified:     verified,
	}, nil
}

// Verify fetches records prop_0..prop_{n-1} back from the index and
// prints their metadata presence and vector length.
func (u *UseCase) Verify(ctx context.Context, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	ids := make([]model.PropositionID, n)
	for i := range ids {
		ids[i] = model.NewPropositionID(i)
	}

	fetched, err := u.repo.Fetch(ctx, ids)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to fetch records for verification")
	}

	fmt.Fprintf(u.output, "\nVerification fetch (%d/%d records):\n", len(fetched), n)
	for _, p := range fetched {
		fmt.Fprintf(u.output, "ID: %s\n", p.ID)
		fmt.Fprintf(u.output, "  - has_metadata: %t\n", len(p.Metadata) > 0)
		fmt.Fprintf(u.output, "  - content: %s\n", p.Text)
		fmt.Fprintf(u.output, "  - values length: %d\n", len(p.Embedding))
	}

	return len(fetched), nil
}
