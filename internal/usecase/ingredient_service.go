package usecase

import (
	"context"

	"github.com/ecocart/backend/internal/domain"
)

// IngredientService classifies a product's ingredient list by health impact.
type IngredientService struct {
	repo domain.ProductRepository
}

// NewIngredientService creates an ingredient analysis service.
func NewIngredientService(repo domain.ProductRepository) *IngredientService {
	return &IngredientService{repo: repo}
}

// ClassifyIngredients tallies a product's ingredients into good/caution/
// harmful buckets and returns the enriched entries in declaration order.
// A product with zero recorded ingredients yields DataAvailable=false with
// zero counts, not an error.
func (s *IngredientService) ClassifyIngredients(ctx context.Context, productID int64) (*domain.IngredientAnalysis, error) {
	if _, err := s.repo.GetProductFacts(ctx, productID); err != nil {
		return nil, err
	}

	ingredients, err := s.repo.GetIngredients(ctx, productID)
	if err != nil {
		return nil, err
	}

	if len(ingredients) == 0 {
		return &domain.IngredientAnalysis{
			DataAvailable: false,
			Ingredients:   []domain.AnalyzedIngredient{},
		}, nil
	}

	analysis := &domain.IngredientAnalysis{
		DataAvailable: true,
		Summary:       domain.IngredientSummary{Total: len(ingredients)},
		Ingredients:   make([]domain.AnalyzedIngredient, 0, len(ingredients)),
	}

	for _, ing := range ingredients {
		class := ing.Classification()
		switch class {
		case domain.HealthGood:
			analysis.Summary.Good++
		case domain.HealthCaution:
			analysis.Summary.Caution++
		case domain.HealthHarmful:
			analysis.Summary.Harmful++
		}

		entry := domain.AnalyzedIngredient{
			Name:            ing.Name,
			Classification:  class,
			Rank:            ing.Rank,
			Percent:         ing.PercentEstimate,
			ContainsPalmOil: ing.FromPalmOil,
			Vegan:           ing.VeganStatus,
			Vegetarian:      ing.VegetarianStatus,
		}

		// Concern text only accompanies caution/harmful classes.
		if class != domain.HealthGood && ing.HealthConcerns != "" {
			entry.HealthConcerns = ing.HealthConcerns
		}
		if ing.IsAdditive && ing.AdditiveCode != "" {
			entry.AdditiveCode = ing.AdditiveCode
		}

		analysis.Ingredients = append(analysis.Ingredients, entry)
	}

	return analysis, nil
}
