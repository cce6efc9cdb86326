package domain

// HealthClass is the stored health classification of an ingredient.
type HealthClass string

const (
	HealthGood    HealthClass = "good"
	HealthCaution HealthClass = "caution"
	HealthHarmful HealthClass = "harmful"
)

// Product represents a grocery item identified by its canonical barcode.
// Identity is the canonical (13-digit, zero-padded) barcode; every other
// field is refreshed on catalog re-ingest.
type Product struct {
	ID                  int64      `json:"id"`
	Barcode             string     `json:"barcode"` // canonical EAN-13 form
	Name                string     `json:"name"`
	Brand               string     `json:"brand,omitempty"`
	Quantity            string     `json:"quantity,omitempty"`
	WeightKg            *float64   `json:"weightKg,omitempty"`
	ManufacturingPlaces string     `json:"manufacturingPlaces,omitempty"`
	PrimaryCategory     string     `json:"primaryCategory,omitempty"`
	CategoryTags        []string   `json:"categoryTags,omitempty"`
	ProcessingTier      *int       `json:"processingTier,omitempty"` // NOVA group 1-4, 4 = ultra-processed
	Nutriments          Nutriments `json:"nutriments"`
	ImageURL            string     `json:"imageUrl,omitempty"`
}

// Nutriments holds nutrient facts per 100 g of product.
type Nutriments struct {
	EnergyKcal100g    *float64 `json:"energyKcal100g,omitempty"`
	Protein100g       *float64 `json:"protein100g,omitempty"`
	Carbohydrates100g *float64 `json:"carbohydrates100g,omitempty"`
	Fat100g           *float64 `json:"fat100g,omitempty"`
	Sugars100g        *float64 `json:"sugars100g,omitempty"`
	Salt100g          *float64 `json:"salt100g,omitempty"`
}

// Ingredient is one entry of a product's ordered ingredient list.
// Rank is the 1-based position in declaration order (1 = most abundant).
// The percent fields come straight from the catalog and may all be absent;
// when present they are mutually consistent (min <= estimate <= max).
type Ingredient struct {
	Tag              string      `json:"tag"`
	Name             string      `json:"name"`
	PercentEstimate  *float64    `json:"percentEstimate,omitempty"`
	PercentMin       *float64    `json:"percentMin,omitempty"`
	PercentMax       *float64    `json:"percentMax,omitempty"`
	Rank             int         `json:"rank"`
	Health           HealthClass `json:"health,omitempty"` // empty means unclassified, treated as good
	HealthConcerns   string      `json:"healthConcerns,omitempty"`
	IsAdditive       bool        `json:"isAdditive,omitempty"`
	AdditiveCode     string      `json:"additiveCode,omitempty"`
	VeganStatus      string      `json:"veganStatus,omitempty"`      // "yes", "no", "maybe" or empty
	VegetarianStatus string      `json:"vegetarianStatus,omitempty"` // same values
	FromPalmOil      bool        `json:"fromPalmOil,omitempty"`
	// EmissionFactor is kg CO2-equivalent per kg of ingredient, looked up
	// from the reference table keyed by ingredient tag. Nil when unknown.
	EmissionFactor *float64 `json:"emissionFactor,omitempty"`
}

// Classification returns the stored health class, defaulting to good.
func (i Ingredient) Classification() HealthClass {
	if i.Health == "" {
		return HealthGood
	}
	return i.Health
}

// Material carries the fixed environmental properties of a packaging material.
type Material struct {
	Tag                string   `json:"tag"`
	Name               string   `json:"name"`
	EnvironmentalScore int      `json:"environmentalScore"` // 0-100
	ScoreAdjustment    int      `json:"scoreAdjustment"`    // -15..+10
	ProductionCO2PerKg *float64 `json:"productionCo2PerKg,omitempty"`
}

// PackagingComponent is one physical piece of a product's packaging.
type PackagingComponent struct {
	Material      Material `json:"material"`
	Shape         string   `json:"shape,omitempty"`
	Recycling     string   `json:"recycling,omitempty"`
	NumberOfUnits int      `json:"numberOfUnits,omitempty"`
	WeightPercent *float64 `json:"weightPercent,omitempty"` // share of total packaging weight
}

// ProductSummary is the lightweight shape used for candidate retrieval.
type ProductSummary struct {
	ID       int64    `json:"id"`
	Barcode  string   `json:"barcode"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand,omitempty"`
	Category string   `json:"category,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// ProductRecord is a fully parsed catalog record: the product plus its
// ingredient list and packaging components, ready for persistence.
type ProductRecord struct {
	Product     Product              `json:"product"`
	Ingredients []Ingredient         `json:"ingredients,omitempty"`
	Packaging   []PackagingComponent `json:"packaging,omitempty"`
}
