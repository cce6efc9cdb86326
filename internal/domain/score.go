package domain

// Confidence describes how much of the required input data was actually
// available when a sub-score was computed.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// MetricStatus marks a sub-score that could not be computed. Missing data is
// a status, never an error: the workflow always completes with whatever data
// was obtainable.
type MetricStatus string

const (
	StatusOK              MetricStatus = "ok"
	StatusNoPackagingData MetricStatus = "no_packaging_data"
	StatusNoLocationData  MetricStatus = "no_location_data"
	StatusGeocodingFailed MetricStatus = "geocoding_failed"
)

// RawMaterialsScore is the raw-materials sub-score. Points lie in [-15, +10].
type RawMaterialsScore struct {
	Points     int                    `json:"points"`
	TotalCO2Kg float64                `json:"totalCo2Kg"` // kg CO2e per kg product
	Confidence Confidence             `json:"confidence"`
	Breakdown  RawMaterialsBreakdown  `json:"breakdown"`
	Quality    RawMaterialsDataQuality `json:"dataQuality"`
}

// RawMaterialsBreakdown records the facts that produced the score.
type RawMaterialsBreakdown struct {
	IngredientCO2Kg *float64 `json:"ingredientCo2Kg,omitempty"` // before the tier multiplier
	ProcessingTier  *int     `json:"processingTier,omitempty"`
	TierMultiplier  float64  `json:"tierMultiplier"`
	FinalCO2Kg      float64  `json:"finalCo2Kg"`
}

// RawMaterialsDataQuality reports input coverage for the raw-materials score.
type RawMaterialsDataQuality struct {
	HasPercentages      bool    `json:"hasPercentages"`
	HasEmissionFactors  bool    `json:"hasEmissionFactors"`
	IngredientCoverage  float64 `json:"ingredientCoverage"` // apportioned / total
	TotalPercentCovered float64 `json:"totalPercentCovered"`
	FallbackUsed        string  `json:"fallbackUsed,omitempty"` // "tier_only_estimate" or "equal_distribution"
}

// PackagingScore is the packaging sub-score. Points lie in [-15, +10].
type PackagingScore struct {
	Points         int                  `json:"points"`
	Status         MetricStatus         `json:"status"`
	TotalCO2PerKg  *float64             `json:"totalCo2PerKg,omitempty"` // production CO2 of the packaging mix
	Materials      []MaterialBreakdown  `json:"materials,omitempty"`
	Confidence     Confidence           `json:"confidence"`
	Quality        PackagingDataQuality `json:"dataQuality"`
}

// MaterialBreakdown is one packaging material's contribution to the score.
type MaterialBreakdown struct {
	Material           string   `json:"material"`
	EnvironmentalScore int      `json:"environmentalScore"`
	ScoreAdjustment    int      `json:"scoreAdjustment"`
	WeightPercent      float64  `json:"weightPercent"`
	CO2PerKg           *float64 `json:"co2PerKg,omitempty"`
}

// PackagingDataQuality reports input coverage for the packaging score.
type PackagingDataQuality struct {
	HasWeightPercentages bool    `json:"hasWeightPercentages"`
	TotalWeightCovered   float64 `json:"totalWeightCovered"`
	MaterialCount        int     `json:"materialCount"`
}

// TransportationScore is the transportation sub-score. Points lie in [-15, 0].
type TransportationScore struct {
	Points        int          `json:"points"`
	Status        MetricStatus `json:"status"`
	Origin        string       `json:"origin,omitempty"`
	DistanceKm    float64      `json:"distanceKm,omitempty"`
	TransportMode string       `json:"transportMode,omitempty"`
	CO2Kg         float64      `json:"co2Kg,omitempty"`
	Confidence    Confidence   `json:"confidence"`
}

// ClimateScore is the climate-efficiency sub-score: CO2 cost per unit of
// nutrition. Missing calorie data yields DataAvailable=false and a neutral
// point contribution, never a failure.
type ClimateScore struct {
	Points            int        `json:"points"`
	DataAvailable     bool       `json:"dataAvailable"`
	Confidence        Confidence `json:"confidence"`
	CO2Per100Kcal     *float64   `json:"co2Per100Kcal,omitempty"`
	Calories100g      *float64   `json:"calories100g,omitempty"`
	EfficiencyRating  string     `json:"efficiencyRating,omitempty"`
	CO2Per100gProtein *float64   `json:"co2Per100gProtein,omitempty"`
	Protein100g       *float64   `json:"protein100g,omitempty"`
}

// ScoreMetrics is the per-metric breakdown of a score result. Sub-scores
// whose status marks them not applicable are omitted (nil), but their zero
// delta still participated in the total.
type ScoreMetrics struct {
	RawMaterials      *RawMaterialsScore   `json:"rawMaterials,omitempty"`
	Packaging         *PackagingScore      `json:"packaging,omitempty"`
	Transportation    *TransportationScore `json:"transportation,omitempty"`
	ClimateEfficiency *ClimateScore        `json:"climateEfficiency"`
}

// ScoreResult is the aggregate sustainability score for one product.
// It is recomputed fresh on every request and never mutated.
type ScoreResult struct {
	TotalScore int          `json:"totalScore"` // 0-100
	Grade      string       `json:"grade"`      // A-E
	Metrics    ScoreMetrics `json:"metrics"`
}

// IngredientSummary tallies a product's ingredients by health class.
type IngredientSummary struct {
	Total   int `json:"total"`
	Good    int `json:"good"`
	Caution int `json:"caution"`
	Harmful int `json:"harmful"`
}

// AnalyzedIngredient is one classified ingredient entry.
type AnalyzedIngredient struct {
	Name            string      `json:"name"`
	Classification  HealthClass `json:"classification"`
	Rank            int         `json:"rank"`
	Percent         *float64    `json:"percent,omitempty"`
	HealthConcerns  string      `json:"healthConcerns,omitempty"`
	AdditiveCode    string      `json:"additiveCode,omitempty"`
	ContainsPalmOil bool        `json:"containsPalmOil,omitempty"`
	Vegan           string      `json:"vegan,omitempty"`
	Vegetarian      string      `json:"vegetarian,omitempty"`
}

// IngredientAnalysis is the health classification of a product's
// ingredient list. DataAvailable is false when no ingredients are recorded.
type IngredientAnalysis struct {
	DataAvailable bool                 `json:"dataAvailable"`
	Summary       IngredientSummary    `json:"summary"`
	Ingredients   []AnalyzedIngredient `json:"ingredients"`
}

// RecommendationScore blends sustainability and ingredient health into the
// single figure used to rank alternatives.
type RecommendationScore struct {
	SustainabilityScore int    `json:"sustainabilityScore"`
	Grade               string `json:"grade"`
	HarmfulIngredients  int    `json:"harmfulIngredients"`
	CautionIngredients  int    `json:"cautionIngredients"`
	HealthPenalty       int    `json:"healthPenalty"`
	Score               int    `json:"recommendationScore"`
}

// Recommendation is one ranked alternative product.
type Recommendation struct {
	Product             ProductSummary `json:"product"`
	SustainabilityScore int            `json:"sustainabilityScore"`
	Grade               string         `json:"grade"`
	HarmfulIngredients  int            `json:"harmfulIngredients"`
	Reason              string         `json:"reason"`
	ScoreImprovement    float64        `json:"scoreImprovement"` // rounded to 1 decimal
}
