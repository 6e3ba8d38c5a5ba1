package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/propdex/propdex/pkg/model"
	"github.com/propdex/propdex/pkg/repository"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	// Each test run writes into its own collection to avoid id collisions
	// between runs, since record ids are sequential.
	collection := "propositions_test_" + uuid.New().String()

	repo, err := repository.New(context.Background(), projectID, databaseID, collection)
	gt.NoError(t, err)

	return repo
}

func testEmbedding(dim int, base float32) firestore.Vector32 {
	vec := make(firestore.Vector32, dim)
	for i := range vec {
		vec[i] = base + float32(i)/float32(dim)
	}
	return vec
}

func TestFirestoreUpsertAndFetch(t *testing.T) {
	repo := setupFirestore(t)
	defer repo.Close()
	ctx := context.Background()

	runID := uuid.New().String()
	props := make([]*model.Proposition, 0, 3)
	for i := 0; i < 3; i++ {
		props = append(props, &model.Proposition{
			ID:        model.NewPropositionID(i),
			Text:      fmt.Sprintf("Stored fact %d.", i),
			Paragraph: i,
			RunID:     runID,
			Embedding: testEmbedding(384, float32(i)/10),
			CreatedAt: time.Now(),
		})
	}

	gt.NoError(t, repo.Upsert(ctx, props))

	fetched, err := repo.Fetch(ctx, []model.PropositionID{"prop_0", "prop_1", "prop_2"})
	gt.NoError(t, err)
	gt.A(t, fetched).Length(3)

	for i, p := range fetched {
		gt.Equal(t, p.ID, model.NewPropositionID(i))
		gt.Equal(t, p.Text, fmt.Sprintf("Stored fact %d.", i))
		gt.Equal(t, p.RunID, runID)
		gt.A(t, p.Embedding).Length(384)
		gt.Equal(t, p.Metadata["content"], any(p.Text))
	}
}

func TestFirestoreFetchOmitsMissing(t *testing.T) {
	repo := setupFirestore(t)
	defer repo.Close()
	ctx := context.Background()

	gt.NoError(t, repo.Upsert(ctx, []*model.Proposition{{
		ID:        model.NewPropositionID(0),
		Text:      "Only record.",
		Embedding: testEmbedding(8, 0.5),
		CreatedAt: time.Now(),
	}}))

	fetched, err := repo.Fetch(ctx, []model.PropositionID{"prop_0", "prop_99"})
	gt.NoError(t, err)
	gt.A(t, fetched).Length(1)
	gt.Equal(t, fetched[0].ID, model.PropositionID("prop_0"))
}

func TestFirestoreUpsertOverwrites(t *testing.T) {
	repo := setupFirestore(t)
	defer repo.Close()
	ctx := context.Background()

	id := model.NewPropositionID(0)
	gt.NoError(t, repo.Upsert(ctx, []*model.Proposition{{
		ID:        id,
		Text:      "First version.",
		Embedding: testEmbedding(8, 0.1),
		CreatedAt: time.Now(),
	}}))
	gt.NoError(t, repo.Upsert(ctx, []*model.Proposition{{
		ID:        id,
		Text:      "Second version.",
		Embedding: testEmbedding(8, 0.9),
		CreatedAt: time.Now(),
	}}))

	fetched, err := repo.Fetch(ctx, []model.PropositionID{id})
	gt.NoError(t, err)
	gt.A(t, fetched).Length(1)
	gt.Equal(t, fetched[0].Text, "Second version.")
}

func TestFirestoreList(t *testing.T) {
	repo := setupFirestore(t)
	defer repo.Close()
	ctx := context.Background()

	now := time.Now()
	var props []*model.Proposition
	for i := 0; i < 4; i++ {
		props = append(props, &model.Proposition{
			ID:        model.NewPropositionID(i),
			Text:      fmt.Sprintf("Listed fact %d.", i),
			Embedding: testEmbedding(8, float32(i)/10),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}
	gt.NoError(t, repo.Upsert(ctx, props))

	listed, err := repo.List(ctx, 0, 10)
	gt.NoError(t, err)
	gt.A(t, listed).Length(4)

	// created_at ascending
	for i := 0; i < len(listed)-1; i++ {
		if listed[i].CreatedAt.After(listed[i+1].CreatedAt) {
			t.Errorf("records not ordered by created_at: [%d]=%v [%d]=%v",
				i, listed[i].CreatedAt, i+1, listed[i+1].CreatedAt)
		}
	}
}

func TestFirestoreSearchSimilar(t *testing.T) {
	repo := setupFirestore(t)
	defer repo.Close()
	ctx := context.Background()

	gt.NoError(t, repo.Upsert(ctx, []*model.Proposition{
		{
			ID:        model.NewPropositionID(0),
			Text:      "Similar A.",
			Embedding: testEmbedding(64, 0.5),
			CreatedAt: time.Now(),
		},
		{
			ID:        model.NewPropositionID(1),
			Text:      "Similar B.",
			Embedding: testEmbedding(64, 0.51),
			CreatedAt: time.Now(),
		},
		{
			ID:        model.NewPropositionID(2),
			Text:      "Far away.",
			Embedding: testEmbedding(64, -0.9),
			CreatedAt: time.Now(),
		},
	}))

	// Wait for the vector index to catch up.
	time.Sleep(2 * time.Second)

	query := testEmbedding(64, 0.5)
	results, err := repo.SearchSimilar(ctx, []float32(query), 2)
	gt.NoError(t, err)
	gt.A(t, results).Longer(0)

	for _, r := range results {
		if r.ID != "prop_0" && r.ID != "prop_1" {
			t.Errorf("unexpected record in nearest results: %s", r.ID)
		}
	}
}
