package openfoodfacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecocart/backend/internal/domain"
)

func TestParseQuantityKg(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		isNil    bool
	}{
		{"560", 0.56, false},
		{"560g", 0.56, false},
		{"1.5 kg", 1.5, false},
		{"1 lb", 0.453592, false},
		{"12 oz", 0.340194, false},
		{"", 0, true},
		{"a box", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseQuantityKg(tt.input)
			if tt.isNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.InDelta(t, tt.expected, *result, 1e-6)
		})
	}
}

func TestHumanizeTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en:united-states", "United States"},
		{"en:cardboard", "Cardboard"},
		{"en:box", "Box"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, humanizeTag(tt.input))
	}
}

func TestMaterialFor(t *testing.T) {
	t.Run("known material by substring", func(t *testing.T) {
		material := materialFor("en:pet-bottle")
		assert.Equal(t, 28, material.EnvironmentalScore)
		assert.Equal(t, -8, material.ScoreAdjustment)
		require.NotNil(t, material.ProductionCO2PerKg)
		assert.InDelta(t, 3.5, *material.ProductionCO2PerKg, 1e-9)
	})

	t.Run("aluminium alias", func(t *testing.T) {
		us := materialFor("en:aluminum")
		uk := materialFor("en:aluminium")
		assert.Equal(t, us.ScoreAdjustment, uk.ScoreAdjustment)
		assert.Equal(t, 5, uk.ScoreAdjustment)
	})

	t.Run("unknown material gets moderate defaults", func(t *testing.T) {
		material := materialFor("en:mystery-wrap")
		assert.Equal(t, 40, material.EnvironmentalScore)
		assert.Equal(t, -5, material.ScoreAdjustment)
		require.NotNil(t, material.ProductionCO2PerKg)
		assert.InDelta(t, 3.0, *material.ProductionCO2PerKg, 1e-9)
	})
}

func TestClassifyIngredient(t *testing.T) {
	t.Run("harmful additive", func(t *testing.T) {
		ing := domain.Ingredient{Tag: "en:e102"}
		classifyIngredient(&ing)

		assert.True(t, ing.IsAdditive)
		assert.Equal(t, "E102", ing.AdditiveCode)
		assert.Equal(t, domain.HealthHarmful, ing.Health)
		assert.NotEmpty(t, ing.HealthConcerns)
	})

	t.Run("unlisted additive stays unclassified", func(t *testing.T) {
		ing := domain.Ingredient{Tag: "en:e300"}
		classifyIngredient(&ing)

		assert.True(t, ing.IsAdditive)
		assert.Equal(t, "E300", ing.AdditiveCode)
		assert.Equal(t, domain.HealthGood, ing.Classification())
	})

	t.Run("palm oil flagged as caution", func(t *testing.T) {
		ing := domain.Ingredient{Tag: "en:palm-oil"}
		classifyIngredient(&ing)

		assert.Equal(t, domain.HealthCaution, ing.Health)
		assert.False(t, ing.IsAdditive)
	})

	t.Run("palm oil derivative flagged via tag list", func(t *testing.T) {
		ing := domain.Ingredient{Tag: "en:vegetable-fat", FromPalmOil: true}
		classifyIngredient(&ing)

		assert.Equal(t, domain.HealthCaution, ing.Health)
	})

	t.Run("plain ingredient untouched", func(t *testing.T) {
		ing := domain.Ingredient{Tag: "en:oats"}
		classifyIngredient(&ing)

		assert.Equal(t, domain.HealthClass(""), ing.Health)
		assert.Equal(t, domain.HealthGood, ing.Classification())
	})
}

func TestMapProduct(t *testing.T) {
	nova := 4
	pct := 55.0
	raw := &rawProduct{
		Code:                       "722776004623",
		ProductName:                "Choco Crunch",
		Brands:                     "Acme",
		Quantity:                   "400g",
		CategoriesTags:             []string{"en:snacks", "en:chocolate-cereals"},
		NovaGroup:                  &nova,
		ManufacturingPlaces:        "Italy",
		IngredientsFromPalmOilTags: []string{"en:vegetable-fat"},
		Ingredients: []rawIngredient{
			{ID: "en:wheat-flour", Text: "wheat flour", PercentEstimate: &pct},
			{ID: "en:vegetable-fat", Text: "vegetable fat"},
			{ID: "en:e102"},
			{ID: ""},
		},
		Packagings: []rawPackaging{
			{Material: "en:cardboard", Shape: "en:box"},
			{Material: "", Shape: "en:film"},
		},
	}

	record := mapProduct(raw)

	// Barcode is canonicalized to 13 digits.
	assert.Equal(t, "0722776004623", record.Product.Barcode)
	assert.Equal(t, "Chocolate Cereals", record.Product.PrimaryCategory)
	require.NotNil(t, record.Product.WeightKg)
	assert.InDelta(t, 0.4, *record.Product.WeightKg, 1e-9)

	// The empty-id ingredient is dropped; ranks follow source order.
	require.Len(t, record.Ingredients, 3)
	assert.Equal(t, 1, record.Ingredients[0].Rank)
	assert.Equal(t, "en:wheat-flour", record.Ingredients[0].Tag)
	require.NotNil(t, record.Ingredients[0].EmissionFactor)
	assert.InDelta(t, 1.4, *record.Ingredients[0].EmissionFactor, 1e-9)

	assert.True(t, record.Ingredients[1].FromPalmOil)
	assert.Equal(t, domain.HealthCaution, record.Ingredients[1].Health)

	assert.True(t, record.Ingredients[2].IsAdditive)
	assert.Equal(t, "E102", record.Ingredients[2].AdditiveCode)
	// Name falls back to the humanized tag when text is missing.
	assert.Equal(t, "E102", record.Ingredients[2].Name)

	// The material-less packaging entry is dropped, units default to 1.
	require.Len(t, record.Packaging, 1)
	assert.Equal(t, "Box", record.Packaging[0].Shape)
	assert.Equal(t, 1, record.Packaging[0].NumberOfUnits)
}
