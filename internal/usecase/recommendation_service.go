package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/ecocart/backend/internal/domain"
)

const (
	// localCandidateLimit caps how many same-category products are pulled
	// from the repository before the catalog is consulted.
	localCandidateLimit = 20
	// maxRecommendations is how many ranked alternatives are returned.
	maxRecommendations = 3
	// healthPenaltyHarmful and healthPenaltyCaution weight the ingredient
	// tallies when reducing the sustainability score.
	healthPenaltyHarmful = 5
	healthPenaltyCaution = 2
)

// RecommendationService retrieves, scores and ranks alternative products.
type RecommendationService struct {
	repo        domain.ProductRepository
	catalog     domain.CatalogClient
	scoring     *ScoringService
	ingredients *IngredientService
}

// NewRecommendationService creates a recommendation service.
func NewRecommendationService(
	repo domain.ProductRepository,
	catalog domain.CatalogClient,
	scoring *ScoringService,
	ingredients *IngredientService,
) *RecommendationService {
	return &RecommendationService{
		repo:        repo,
		catalog:     catalog,
		scoring:     scoring,
		ingredients: ingredients,
	}
}

// RecommendationRequest describes one recommendation computation.
type RecommendationRequest struct {
	ProductID     int64
	Category      string
	BaselineScore float64 // the baseline product's recommendation score
	Destination   *domain.Coordinates
	MinCount      int
}

// ComputeRecommendationScore blends a product's sustainability score with
// its ingredient health tallies into the figure used for ranking.
func (s *RecommendationService) ComputeRecommendationScore(ctx context.Context, productID int64, destination *domain.Coordinates) (*domain.RecommendationScore, error) {
	scores, err := s.scoring.ComputeScores(ctx, productID, destination)
	if err != nil {
		return nil, err
	}

	analysis, err := s.ingredients.ClassifyIngredients(ctx, productID)
	if err != nil {
		return nil, err
	}

	penalty := analysis.Summary.Harmful*healthPenaltyHarmful + analysis.Summary.Caution*healthPenaltyCaution
	recScore := scores.TotalScore - penalty
	if recScore < 0 {
		recScore = 0
	}

	return &domain.RecommendationScore{
		SustainabilityScore: scores.TotalScore,
		Grade:               scores.Grade,
		HarmfulIngredients:  analysis.Summary.Harmful,
		CautionIngredients:  analysis.Summary.Caution,
		HealthPenalty:       penalty,
		Score:               recScore,
	}, nil
}

// GetRecommendations returns up to three strictly-better alternatives in the
// same category, ranked by recommendation score. Candidates come from the
// repository first; when fewer than req.MinCount are available the external
// catalog fills the pool, persisting newly seen products on the way.
// Per-candidate scoring failures exclude that candidate only.
func (s *RecommendationService) GetRecommendations(ctx context.Context, req RecommendationRequest) ([]domain.Recommendation, error) {
	if req.Category == "" {
		return []domain.Recommendation{}, nil
	}

	candidates, err := s.repo.FindByCategory(ctx, req.Category, req.ProductID, localCandidateLimit)
	if err != nil {
		return nil, err
	}
	log.Printf("[Recommendations] Found %d local candidates for %q", len(candidates), req.Category)

	if len(candidates) < req.MinCount {
		needed := req.MinCount - len(candidates)
		candidates = append(candidates, s.fetchAndSaveCandidates(ctx, req.Category, candidates, needed)...)
	}

	type scoredCandidate struct {
		summary domain.ProductSummary
		scores  domain.RecommendationScore
	}

	var scored []scoredCandidate
	for _, candidate := range candidates {
		recScore, err := s.ComputeRecommendationScore(ctx, candidate.ID, req.Destination)
		if err != nil {
			// One candidate's failure never aborts the whole request.
			log.Printf("[Recommendations] Scoring candidate %d failed: %v", candidate.ID, err)
			continue
		}

		if float64(recScore.Score) > req.BaselineScore {
			scored = append(scored, scoredCandidate{summary: candidate, scores: *recScore})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].scores.Score > scored[j].scores.Score
	})
	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}

	recommendations := make([]domain.Recommendation, 0, len(scored))
	for _, c := range scored {
		gap := float64(c.scores.Score) - req.BaselineScore
		recommendations = append(recommendations, domain.Recommendation{
			Product:             c.summary,
			SustainabilityScore: c.scores.SustainabilityScore,
			Grade:               c.scores.Grade,
			HarmfulIngredients:  c.scores.HarmfulIngredients,
			Reason:              buildReason(gap, c.scores.HarmfulIngredients),
			ScoreImprovement:    math.Round(gap*10) / 10,
		})
	}

	log.Printf("[Recommendations] Returning %d recommendations", len(recommendations))
	return recommendations, nil
}

// fetchAndSaveCandidates asks the external catalog for more same-category
// products and persists the ones not seen before. Best-effort: a failed
// fetch contributes nothing rather than an error.
func (s *RecommendationService) fetchAndSaveCandidates(ctx context.Context, category string, existing []domain.ProductSummary, needed int) []domain.ProductSummary {
	categoryTag := strings.ToLower(strings.ReplaceAll(category, " ", "-"))

	// Over-fetch to absorb duplicates against the local pool.
	records, err := s.catalog.SearchByCategory(ctx, categoryTag, needed*2)
	if err != nil {
		log.Printf("[Recommendations] Catalog search for %q failed: %v", categoryTag, err)
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Barcode] = true
	}

	var saved []domain.ProductSummary
	for i := range records {
		record := &records[i]
		code := record.Product.Barcode
		if code == "" || known[code] {
			continue
		}
		known[code] = true

		product, err := s.repo.UpsertProduct(ctx, record)
		if err != nil {
			log.Printf("[Recommendations] Saving candidate %s failed: %v", code, err)
			continue
		}

		saved = append(saved, domain.ProductSummary{
			ID:       product.ID,
			Barcode:  product.Barcode,
			Name:     product.Name,
			Brand:    product.Brand,
			Category: category,
			ImageURL: product.ImageURL,
		})
		if len(saved) >= needed {
			break
		}
	}

	log.Printf("[Recommendations] Saved %d new catalog candidates", len(saved))
	return saved
}

// buildReason synthesizes the human-readable explanation for a recommendation.
func buildReason(scoreGap float64, harmfulCount int) string {
	var qualifier string
	switch {
	case scoreGap >= 20:
		qualifier = "Significantly better"
	case scoreGap >= 10:
		qualifier = "Better"
	default:
		qualifier = "Slightly better"
	}

	reason := fmt.Sprintf("%s sustainability score", qualifier)
	if harmfulCount == 0 {
		reason += " - no harmful ingredients"
	}
	return reason
}
