package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultCollection = "propositions"

// Firestore implements Repository backed by a Firestore collection with
// a vector field.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// propositionDoc is the stored record shape: id, values, metadata.
type propositionDoc struct {
	ID        string             `firestore:"id"`
	Values    firestore.Vector32 `firestore:"values"`
	Metadata  map[string]any     `firestore:"metadata"`
	CreatedAt time.Time          `firestore:"created_at"`
}

// New creates a Firestore-backed repository.
func New(ctx context.Context, projectID, databaseID, collection string) (*Firestore, error) {
	if collection == "" {
		collection = defaultCollection
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{
		client:     client,
		collection: collection,
	}, nil
}

func (r *Firestore) Upsert(ctx context.Context, props []*model.Proposition) error {
	coll := r.client.Collection(r.collection)

	for _, p := range props {
		if err := p.Validate(); err != nil {
			return err
		}

		// Set overwrites the whole document, which gives upsert semantics.
		if _, err := coll.Doc(p.ID.String()).Set(ctx, toDoc(p)); err != nil {
			return goerr.Wrap(err, "failed to upsert proposition", goerr.V("id", p.ID))
		}
	}

	return nil
}

func (r *Firestore) Fetch(ctx context.Context, ids []model.PropositionID) ([]*model.Proposition, error) {
	coll := r.client.Collection(r.collection)

	props := make([]*model.Proposition, 0, len(ids))
	for _, id := range ids {
		snap, err := coll.Doc(id.String()).Get(ctx)
		if status.Code(err) == codes.NotFound {
			continue
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch proposition", goerr.V("id", id))
		}

		p, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	return props, nil
}

func (r *Firestore) List(ctx context.Context, offset, limit int) ([]*model.Proposition, error) {
	iter := r.client.Collection(r.collection).
		OrderBy("created_at", firestore.Asc).
		Offset(offset).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var props []*model.Proposition
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list propositions")
		}

		p, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	return props, nil
}

func (r *Firestore) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*model.Proposition, error) {
	query := r.client.Collection(r.collection).FindNearest(
		"values",
		firestore.Vector32(embedding),
		limit,
		firestore.DistanceMeasureCosine,
		nil,
	)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var props []*model.Proposition
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to search similar propositions")
		}

		p, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}

	return props, nil
}

func (r *Firestore) Close() error {
	return r.client.Close()
}

func toDoc(p *model.Proposition) *propositionDoc {
	metadata := map[string]any{
		"content":   p.Text,
		"paragraph": p.Paragraph,
		"run_id":    p.RunID,
	}
	for k, v := range p.Metadata {
		metadata[k] = v
	}

	return &propositionDoc{
		ID:        p.ID.String(),
		Values:    p.Embedding,
		Metadata:  metadata,
		CreatedAt: p.CreatedAt,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (*model.Proposition, error) {
	var doc propositionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode proposition document", goerr.V("ref", snap.Ref.ID))
	}

	p := &model.Proposition{
		ID:        model.PropositionID(doc.ID),
		Embedding: doc.Values,
		Metadata:  doc.Metadata,
		CreatedAt: doc.CreatedAt,
	}

	if content, ok := doc.Metadata["content"].(string); ok {
		p.Text = content
	}
	if runID, ok := doc.Metadata["run_id"].(string); ok {
		p.RunID = runID
	}
	// Firestore decodes integers as int64.
	if paragraph, ok := doc.Metadata["paragraph"].(int64); ok {
		p.Paragraph = int(paragraph)
	}

	return p, nil
}
