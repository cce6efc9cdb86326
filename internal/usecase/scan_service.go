package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/ecocart/backend/internal/domain"
)

// ScanResult is the complete response for one scanned barcode.
type ScanResult struct {
	Source          string                     `json:"source"` // "database" or "catalog"
	Product         *domain.Product            `json:"product"`
	Scores          *domain.ScoreResult        `json:"sustainabilityScores"`
	Ingredients     *domain.IngredientAnalysis `json:"ingredientAnalysis"`
	Recommendations []domain.Recommendation    `json:"recommendations"`
}

// ScanService orchestrates the full product-scan flow: local lookup,
// catalog fallback with persistence, scoring, ingredient analysis and
// recommendations.
type ScanService struct {
	repo            domain.ProductRepository
	catalog         domain.CatalogClient
	scoring         *ScoringService
	ingredients     *IngredientService
	recommendations *RecommendationService
	minRecommended  int
}

// NewScanService creates a scan workflow service.
func NewScanService(
	repo domain.ProductRepository,
	catalog domain.CatalogClient,
	scoring *ScoringService,
	ingredients *IngredientService,
	recommendations *RecommendationService,
	minRecommended int,
) *ScanService {
	if minRecommended <= 0 {
		minRecommended = 3
	}
	return &ScanService{
		repo:            repo,
		catalog:         catalog,
		scoring:         scoring,
		ingredients:     ingredients,
		recommendations: recommendations,
		minRecommended:  minRecommended,
	}
}

// Scan resolves a barcode to a product (fetching and persisting it from the
// external catalog when unknown locally), then scores it, classifies its
// ingredients and ranks alternatives. Only an unresolvable barcode is a
// failure; every scoring step degrades gracefully on missing data.
func (s *ScanService) Scan(ctx context.Context, code string, destination *domain.Coordinates) (*ScanResult, error) {
	source := "database"

	product, err := s.repo.FindByBarcode(ctx, code)
	if errors.Is(err, domain.ErrProductNotFound) {
		log.Printf("[Scan] %s not in database, fetching from catalog", code)
		record, fetchErr := s.catalog.FetchProduct(ctx, code)
		if fetchErr != nil {
			if errors.Is(fetchErr, domain.ErrProductNotFound) {
				return nil, domain.ErrProductNotFound
			}
			return nil, fetchErr
		}

		product, err = s.repo.UpsertProduct(ctx, record)
		if err != nil {
			return nil, err
		}
		source = "catalog"
	} else if err != nil {
		return nil, err
	}

	scores, err := s.scoring.ComputeScores(ctx, product.ID, destination)
	if err != nil {
		return nil, err
	}

	analysis, err := s.ingredients.ClassifyIngredients(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	baseline, err := s.recommendations.ComputeRecommendationScore(ctx, product.ID, destination)
	if err != nil {
		return nil, err
	}

	recs, err := s.recommendations.GetRecommendations(ctx, RecommendationRequest{
		ProductID:     product.ID,
		Category:      product.PrimaryCategory,
		BaselineScore: float64(baseline.Score),
		Destination:   destination,
		MinCount:      s.minRecommended,
	})
	if err != nil {
		// Recommendations are an enrichment; a failure here never voids
		// the scores already computed.
		log.Printf("[Scan] Recommendations for %s failed: %v", code, err)
		recs = []domain.Recommendation{}
	}

	return &ScanResult{
		Source:          source,
		Product:         product,
		Scores:          scores,
		Ingredients:     analysis,
		Recommendations: recs,
	}, nil
}
