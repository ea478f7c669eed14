package implementation

import (
	"context"

	"adwise-be/internal/model"
	"adwise-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type AdExampleRepositoryImpl struct {
	db *gorm.DB
}

func NewAdExampleRepository(db *gorm.DB) contract.AdExampleRepository {
	return &AdExampleRepositoryImpl{
		db: db,
	}
}

// SearchSimilarWithScore runs a cosine-distance search over the corpus.
// pgvector's <=> operator is cosine distance, so similarity = 1 - distance.
func (r *AdExampleRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, category string) ([]*contract.ScoredAdExample, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.AdExample
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("ad_examples").
		Select("ad_examples.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("ad_examples.deleted_at IS NULL")

	if category != "" {
		query = query.Where("ad_examples.category = ?", category)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredAdExample, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredAdExample{
			Id:         res.Id,
			Category:   res.Category,
			Title:      res.Title,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *AdExampleRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdExample{}).Count(&count).Error
	return count, err
}
