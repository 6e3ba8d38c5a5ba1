package model

import (
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyProposition = goerr.New("proposition text is empty")
)

type PropositionID string

// NewPropositionID builds the sequential record ID assigned at upsert
// time. Index is zero-based and global across all paragraphs of a run.
func NewPropositionID(index int) PropositionID {
	return PropositionID(fmt.Sprintf("prop_%d", index))
}

func (id PropositionID) String() string {
	return string(id)
}

// Proposition is an atomic factual sentence extracted from a paragraph,
// together with its embedding vector and record metadata. A proposition
// has no identity until an ID is assigned during the upsert step.
type Proposition struct {
	ID        PropositionID
	Text      string
	Paragraph int
	RunID     string
	Embedding firestore.Vector32
	Metadata  map[string]any

	CreatedAt time.Time
}

// Validate checks the record invariants before upsert.
func (p *Proposition) Validate() error {
	if p.Text == "" {
		return ErrEmptyProposition
	}
	if p.ID == "" {
		return goerr.New("proposition ID is empty")
	}
	if len(p.Embedding) == 0 {
		return goerr.New("proposition has no embedding", goerr.V("id", p.ID))
	}
	return nil
}
