package usecase

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/ecocart/backend/internal/domain"
)

// Point bounds for the sub-scorers.
const (
	rawMaterialsMin = -15
	rawMaterialsMax = 10
	packagingMin    = -15
	packagingMax    = 10
)

// tierMultipliers penalize more heavily processed products. Unknown tiers
// are treated like ultra-processed.
var tierMultipliers = map[int]float64{
	1: 1.0,
	2: 1.1,
	3: 1.2,
	4: 1.5,
}

const unknownTierMultiplier = 1.5

// tierCO2Estimates is the tier-only CO2 fallback (kg CO2e per kg product)
// used when no ingredient carries an emission factor.
var tierCO2Estimates = map[int]float64{
	1: 0.8,
	2: 1.5,
	3: 3.0,
	4: 3.0,
}

const unknownTierCO2Estimate = 3.0

// transportBand classifies a shipping distance into an assumed mode with its
// emission factor in kg CO2 per tonne-km, plus the point delta for the band.
type transportBand struct {
	maxKm          float64
	mode           string
	emissionFactor float64
	points         int
}

var transportBands = []transportBand{
	{100, "local_truck", 0.200, 0},
	{500, "regional_truck", 0.180, -2},
	{2000, "national_truck", 0.150, -5},
	{5000, "rail_truck", 0.100, -8},
	{math.Inf(1), "sea_truck", 0.050, -10},
}

// ClimateConfig holds the climate-efficiency thresholds. The exact cutoffs
// are deliberately configurable; only the behavioral contract (availability
// flag, confidence, bounds) is fixed.
type ClimateConfig struct {
	ExcellentMaxCO2Per100Kcal float64
	GoodMaxCO2Per100Kcal      float64
	ModerateMaxCO2Per100Kcal  float64
	PointsExcellent           int
	PointsGood                int
	PointsModerate            int
	PointsPoor                int
}

// DefaultClimateConfig bounds the climate delta to [-5, +5].
func DefaultClimateConfig() ClimateConfig {
	return ClimateConfig{
		ExcellentMaxCO2Per100Kcal: 0.05,
		GoodMaxCO2Per100Kcal:      0.12,
		ModerateMaxCO2Per100Kcal:  0.25,
		PointsExcellent:           5,
		PointsGood:                2,
		PointsModerate:            0,
		PointsPoor:                -5,
	}
}

// ScoringConfig holds configuration for the scoring service.
type ScoringConfig struct {
	// DefaultDestination is used when the caller supplies no coordinates.
	DefaultDestination domain.Coordinates
	// AssumedProductWeightKg is the flat weight used for transport CO2.
	// Kept constant regardless of actual quantity; recommendation
	// comparisons assume it.
	AssumedProductWeightKg float64
	Climate                ClimateConfig
}

// ScoringService computes sustainability scores. It is stateless across
// requests; all data arrives through the injected collaborators.
type ScoringService struct {
	repo     domain.ProductRepository
	geocoder domain.Geocoder
	cfg      ScoringConfig
}

// NewScoringService creates a scoring service with its collaborators.
func NewScoringService(repo domain.ProductRepository, geocoder domain.Geocoder, cfg ScoringConfig) *ScoringService {
	if cfg.AssumedProductWeightKg <= 0 {
		cfg.AssumedProductWeightKg = 1.0
	}
	if cfg.Climate == (ClimateConfig{}) {
		cfg.Climate = DefaultClimateConfig()
	}
	return &ScoringService{repo: repo, geocoder: geocoder, cfg: cfg}
}

// ComputeScores runs the four sub-scorers for a product and aggregates them
// into a 0-100 score with a letter grade. The result is a pure function of
// repository state plus the optional destination; calling it twice on
// unchanged state yields identical results.
func (s *ScoringService) ComputeScores(ctx context.Context, productID int64, destination *domain.Coordinates) (*domain.ScoreResult, error) {
	product, err := s.repo.GetProductFacts(ctx, productID)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.repo.GetIngredients(ctx, productID)
	if err != nil {
		return nil, err
	}
	packaging, err := s.repo.GetPackaging(ctx, productID)
	if err != nil {
		return nil, err
	}

	dest := s.cfg.DefaultDestination
	if destination != nil {
		dest = *destination
	}

	raw := s.ScoreRawMaterials(product.ProcessingTier, ingredients)
	pack := s.ScorePackaging(packaging)
	transport := s.ScoreTransportation(ctx, product.ManufacturingPlaces, dest)
	climate := s.ScoreClimateEfficiency(product.Nutriments, raw.TotalCO2Kg)

	total, grade := Aggregate(raw.Points, pack.Points, transport.Points, climate.Points)

	result := &domain.ScoreResult{
		TotalScore: total,
		Grade:      grade,
		Metrics: domain.ScoreMetrics{
			RawMaterials:      &raw,
			ClimateEfficiency: &climate,
		},
	}

	// Not-applicable metrics are omitted from the breakdown; their zero
	// delta already participated in the sum.
	if pack.Status != domain.StatusNoPackagingData {
		result.Metrics.Packaging = &pack
	}
	if transport.Status == domain.StatusOK {
		result.Metrics.Transportation = &transport
	}

	return result, nil
}

// Aggregate sums sub-score deltas onto the 50-point baseline, clamps to
// [0,100] and maps the result to a letter grade.
func Aggregate(deltas ...int) (int, string) {
	total := 50
	for _, d := range deltas {
		total += d
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	return total, GradeFor(total)
}

// GradeFor maps a 0-100 score to its letter grade.
func GradeFor(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 60:
		return "B"
	case score >= 40:
		return "C"
	case score >= 20:
		return "D"
	default:
		return "E"
	}
}

// ScoreRawMaterials converts a product's ingredient emission factors into a
// point delta in [-15, +10]. Degrades to a tier-only estimate when no
// emission factors are known.
func (s *ScoringService) ScoreRawMaterials(tier *int, ingredients []domain.Ingredient) domain.RawMaterialsScore {
	if len(ingredients) == 0 {
		return tierOnlyFallback(tier, "tier_only_estimate")
	}

	hasPercentages := false
	hasEmissionFactors := false
	for _, ing := range ingredients {
		if ing.PercentEstimate != nil {
			hasPercentages = true
		}
		if ing.EmissionFactor != nil {
			hasEmissionFactors = true
		}
	}

	if !hasEmissionFactors {
		return tierOnlyFallback(tier, "tier_only_estimate")
	}

	var (
		totalCO2        float64
		totalPercent    float64
		apportionedN    int
		ingredientCount = len(ingredients)
	)

	for _, ing := range ingredients {
		if ing.EmissionFactor == nil {
			continue
		}

		var percent float64
		switch {
		case ing.PercentEstimate != nil:
			percent = *ing.PercentEstimate
		case hasPercentages:
			// Other ingredients declare percentages; this one cannot
			// be safely apportioned.
			continue
		default:
			percent = 100.0 / float64(ingredientCount)
		}

		totalCO2 += (percent / 100.0) * *ing.EmissionFactor
		totalPercent += percent
		apportionedN++
	}

	multiplier := unknownTierMultiplier
	if tier != nil {
		if m, ok := tierMultipliers[*tier]; ok {
			multiplier = m
		}
	}
	finalCO2 := totalCO2 * multiplier

	coverage := float64(apportionedN) / float64(ingredientCount)

	confidence := domain.ConfidenceLow
	switch {
	case hasPercentages && coverage >= 0.8:
		confidence = domain.ConfidenceHigh
	case coverage >= 0.5:
		confidence = domain.ConfidenceMedium
	}

	fallback := ""
	if !hasPercentages || coverage <= 0.8 {
		fallback = "equal_distribution"
	}

	ingredientCO2 := round4(totalCO2)
	return domain.RawMaterialsScore{
		Points:     co2ToPoints(finalCO2),
		TotalCO2Kg: round4(finalCO2),
		Confidence: confidence,
		Breakdown: domain.RawMaterialsBreakdown{
			IngredientCO2Kg: &ingredientCO2,
			ProcessingTier:  tier,
			TierMultiplier:  multiplier,
			FinalCO2Kg:      round4(finalCO2),
		},
		Quality: domain.RawMaterialsDataQuality{
			HasPercentages:      hasPercentages,
			HasEmissionFactors:  true,
			IngredientCoverage:  round2(coverage),
			TotalPercentCovered: round1(totalPercent),
			FallbackUsed:        fallback,
		},
	}
}

// tierOnlyFallback estimates CO2 from the processing tier alone.
func tierOnlyFallback(tier *int, fallback string) domain.RawMaterialsScore {
	estimate := unknownTierCO2Estimate
	if tier != nil {
		if e, ok := tierCO2Estimates[*tier]; ok {
			estimate = e
		}
	}

	return domain.RawMaterialsScore{
		Points:     co2ToPoints(estimate),
		TotalCO2Kg: estimate,
		Confidence: domain.ConfidenceLow,
		Breakdown: domain.RawMaterialsBreakdown{
			ProcessingTier: tier,
			TierMultiplier: 1.0,
			FinalCO2Kg:     estimate,
		},
		Quality: domain.RawMaterialsDataQuality{
			FallbackUsed: fallback,
		},
	}
}

// co2ToPoints converts kg CO2e per kg product to score points.
func co2ToPoints(co2Kg float64) int {
	switch {
	case co2Kg < 1.0:
		return 10
	case co2Kg < 2.0:
		return 5
	case co2Kg < 5.0:
		return 0
	case co2Kg < 10.0:
		return -5
	default:
		return -15
	}
}

// ScorePackaging computes the weight-normalized average of the packaging
// materials' score adjustments, clamped to [-15, +10]. Products without
// packaging data get a distinct observable status, not a silent zero.
func (s *ScoringService) ScorePackaging(components []domain.PackagingComponent) domain.PackagingScore {
	if len(components) == 0 {
		return domain.PackagingScore{
			Points:     0,
			Status:     domain.StatusNoPackagingData,
			Confidence: domain.ConfidenceNone,
		}
	}

	hasWeights := false
	for _, c := range components {
		if c.WeightPercent != nil {
			hasWeights = true
			break
		}
	}

	var (
		weightedSum float64
		totalWeight float64
		totalCO2    float64
		breakdown   []domain.MaterialBreakdown
	)

	for _, c := range components {
		var weight float64
		switch {
		case c.WeightPercent != nil:
			weight = *c.WeightPercent / 100.0
		case hasWeights:
			// Skip undeclared components when others declare weights.
			continue
		default:
			weight = 1.0 / float64(len(components))
		}

		weightedSum += float64(c.Material.ScoreAdjustment) * weight
		totalWeight += weight
		if c.Material.ProductionCO2PerKg != nil {
			totalCO2 += *c.Material.ProductionCO2PerKg * weight
		}

		breakdown = append(breakdown, domain.MaterialBreakdown{
			Material:           c.Material.Name,
			EnvironmentalScore: c.Material.EnvironmentalScore,
			ScoreAdjustment:    c.Material.ScoreAdjustment,
			WeightPercent:      round1(weight * 100),
			CO2PerKg:           c.Material.ProductionCO2PerKg,
		})
	}

	points := 0
	if totalWeight > 0 {
		points = int(math.Round(weightedSum / totalWeight))
	}
	if points < packagingMin {
		points = packagingMin
	}
	if points > packagingMax {
		points = packagingMax
	}

	confidence := domain.ConfidenceLow
	switch {
	case hasWeights && totalWeight >= 0.8:
		confidence = domain.ConfidenceHigh
	case totalWeight >= 0.5:
		confidence = domain.ConfidenceMedium
	}

	var co2 *float64
	if totalCO2 > 0 {
		v := round4(totalCO2)
		co2 = &v
	}

	return domain.PackagingScore{
		Points:        points,
		Status:        domain.StatusOK,
		TotalCO2PerKg: co2,
		Materials:     breakdown,
		Confidence:    confidence,
		Quality: domain.PackagingDataQuality{
			HasWeightPercentages: hasWeights,
			TotalWeightCovered:   round2(totalWeight),
			MaterialCount:        len(components),
		},
	}
}

// ScoreTransportation resolves the manufacturing location, measures the
// great-circle distance to the destination and converts the distance band
// into a point delta in [-15, 0]. Confidence is always medium when a score
// is produced: geocoding and distance are both estimates.
func (s *ScoringService) ScoreTransportation(ctx context.Context, manufacturingPlaces string, destination domain.Coordinates) domain.TransportationScore {
	if manufacturingPlaces == "" {
		return domain.TransportationScore{
			Status:     domain.StatusNoLocationData,
			Confidence: domain.ConfidenceNone,
		}
	}

	origin, err := s.geocoder.Resolve(ctx, manufacturingPlaces)
	if err != nil {
		if !errors.Is(err, domain.ErrLocationNotFound) {
			log.Printf("[Scoring] geocoding %q failed: %v", manufacturingPlaces, err)
		}
		return domain.TransportationScore{
			Status:     domain.StatusGeocodingFailed,
			Origin:     manufacturingPlaces,
			Confidence: domain.ConfidenceNone,
		}
	}

	distance := origin.DistanceKm(destination)
	band := bandFor(distance)

	tonnes := s.cfg.AssumedProductWeightKg / 1000.0
	co2 := distance * tonnes * band.emissionFactor

	return domain.TransportationScore{
		Points:        band.points,
		Status:        domain.StatusOK,
		Origin:        manufacturingPlaces,
		DistanceKm:    round1(distance),
		TransportMode: band.mode,
		CO2Kg:         round4(co2),
		Confidence:    domain.ConfidenceMedium,
	}
}

func bandFor(distanceKm float64) transportBand {
	for _, b := range transportBands {
		if distanceKm < b.maxKm {
			return b
		}
	}
	return transportBands[len(transportBands)-1]
}

// ScoreClimateEfficiency relates the raw-materials CO2 figure to the
// product's nutritional value. Missing calorie data yields a neutral,
// observable result rather than a failure.
func (s *ScoringService) ScoreClimateEfficiency(n domain.Nutriments, rawCO2Kg float64) domain.ClimateScore {
	if n.EnergyKcal100g == nil || *n.EnergyKcal100g <= 0 {
		return domain.ClimateScore{
			Points:        0,
			DataAvailable: false,
			Confidence:    domain.ConfidenceNone,
		}
	}

	calories := *n.EnergyKcal100g
	// kg CO2e per 100 kcal, assuming 1 kg of product (10 x the per-100g facts).
	co2Per100Kcal := round4(rawCO2Kg * 10.0 / calories)

	cfg := s.cfg.Climate
	var (
		points int
		rating string
	)
	switch {
	case co2Per100Kcal <= cfg.ExcellentMaxCO2Per100Kcal:
		points, rating = cfg.PointsExcellent, "excellent"
	case co2Per100Kcal <= cfg.GoodMaxCO2Per100Kcal:
		points, rating = cfg.PointsGood, "good"
	case co2Per100Kcal <= cfg.ModerateMaxCO2Per100Kcal:
		points, rating = cfg.PointsModerate, "moderate"
	default:
		points, rating = cfg.PointsPoor, "poor"
	}

	score := domain.ClimateScore{
		Points:           points,
		DataAvailable:    true,
		Confidence:       domain.ConfidenceMedium,
		CO2Per100Kcal:    &co2Per100Kcal,
		Calories100g:     &calories,
		EfficiencyRating: rating,
	}

	if n.Protein100g != nil && *n.Protein100g > 0 {
		protein := *n.Protein100g
		perProtein := round4(rawCO2Kg * 10.0 / protein)
		score.CO2Per100gProtein = &perProtein
		score.Protein100g = &protein
	}

	return score
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
