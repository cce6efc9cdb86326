package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecocart/backend/internal/domain"
	"github.com/ecocart/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	repo            domain.ProductRepository
	scan            *usecase.ScanService
	scoring         *usecase.ScoringService
	ingredients     *usecase.IngredientService
	recommendations *usecase.RecommendationService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	repo domain.ProductRepository,
	scan *usecase.ScanService,
	scoring *usecase.ScoringService,
	ingredients *usecase.IngredientService,
	recommendations *usecase.RecommendationService,
) *Handler {
	return &Handler{
		repo:            repo,
		scan:            scan,
		scoring:         scoring,
		ingredients:     ingredients,
		recommendations: recommendations,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ecocart-backend",
		"version": "1.0.0",
	})
}

// ScanProduct runs the full scan flow for a barcode: lookup (with catalog
// fallback), sustainability scores, ingredient analysis and recommendations.
func (h *Handler) ScanProduct(c *gin.Context) {
	destination, err := parseDestination(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.scan.Scan(c.Request.Context(), c.Param("code"), destination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetScores returns only the sustainability score breakdown for a barcode.
func (h *Handler) GetScores(c *gin.Context) {
	destination, err := parseDestination(c)
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.repo.FindByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	scores, err := h.scoring.ComputeScores(c.Request.Context(), product.ID, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"scores":  scores,
	})
}

// GetIngredients returns the ingredient health analysis for a barcode.
func (h *Handler) GetIngredients(c *gin.Context) {
	product, err := h.repo.FindByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	analysis, err := h.ingredients.ClassifyIngredients(c.Request.Context(), product.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":     product,
		"ingredients": analysis,
	})
}

// GetRecommendations returns better-scoring alternatives for a barcode.
func (h *Handler) GetRecommendations(c *gin.Context) {
	destination, err := parseDestination(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	product, err := h.repo.FindByBarcode(ctx, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	baseline, err := h.recommendations.ComputeRecommendationScore(ctx, product.ID, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	recs, err := h.recommendations.GetRecommendations(ctx, usecase.RecommendationRequest{
		ProductID:     product.ID,
		Category:      product.PrimaryCategory,
		BaselineScore: float64(baseline.Score),
		Destination:   destination,
		MinCount:      3,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":         product,
		"baseline":        baseline,
		"recommendations": recs,
	})
}

// parseDestination reads an optional lat/lon pair from the query string.
// Both must be present together; a lone or malformed value is a bad request.
func parseDestination(c *gin.Context) (*domain.Coordinates, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, domain.ErrInvalidRequest
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}
	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "product catalog unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
