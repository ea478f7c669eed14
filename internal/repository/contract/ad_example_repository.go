package contract

import (
	"context"

	"github.com/google/uuid"
)

// ScoredAdExample is a corpus row with its cosine similarity to the query.
type ScoredAdExample struct {
	Id         uuid.UUID
	Category   string
	Title      string
	Similarity float64
}

// AdExampleRepository is the read contract over the inspiration corpus.
type AdExampleRepository interface {
	// SearchSimilarWithScore returns the rows nearest to the query vector,
	// most similar first. An empty category disables the metadata filter.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, category string) ([]*ScoredAdExample, error)

	// Count reports the corpus size, used for liveness reporting.
	Count(ctx context.Context) (int64, error)
}
