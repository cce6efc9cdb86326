package openfoodfacts

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ecocart/backend/internal/barcode"
	"github.com/ecocart/backend/internal/domain"
)

// rawProduct mirrors the subset of the Open Food Facts product payload
// the scorers consume.
type rawProduct struct {
	Code                       string          `json:"code"`
	ProductName                string          `json:"product_name"`
	Brands                     string          `json:"brands"`
	Quantity                   string          `json:"quantity"`
	CategoriesTags             []string        `json:"categories_tags"`
	NovaGroup                  *int            `json:"nova_group"`
	Ingredients                []rawIngredient `json:"ingredients"`
	IngredientsFromPalmOilTags []string        `json:"ingredients_from_palm_oil_tags"`
	Nutriments                 rawNutriments   `json:"nutriments"`
	ManufacturingPlaces        string          `json:"manufacturing_places"`
	Packagings                 []rawPackaging  `json:"packagings"`
	ImageURL                   string          `json:"image_url"`
}

type rawIngredient struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	PercentEstimate *float64 `json:"percent_estimate"`
	PercentMin      *float64 `json:"percent_min"`
	PercentMax      *float64 `json:"percent_max"`
	Vegan           string   `json:"vegan"`
	Vegetarian      string   `json:"vegetarian"`
}

type rawNutriments struct {
	EnergyKcal100g    *float64 `json:"energy-kcal_100g"`
	Proteins100g      *float64 `json:"proteins_100g"`
	Carbohydrates100g *float64 `json:"carbohydrates_100g"`
	Fat100g           *float64 `json:"fat_100g"`
	Sugars100g        *float64 `json:"sugars_100g"`
	Salt100g          *float64 `json:"salt_100g"`
}

type rawPackaging struct {
	Material      string `json:"material"`
	Shape         string `json:"shape"`
	Recycling     string `json:"recycling"`
	NumberOfUnits int    `json:"number_of_units"`
}

// mapProduct converts a raw catalog payload into a domain record: canonical
// barcode, parsed quantity, classified ingredients with emission factors,
// and packaging components resolved against the material reference table.
func mapProduct(raw *rawProduct) *domain.ProductRecord {
	product := domain.Product{
		Barcode:             barcode.Canonical(raw.Code),
		Name:                raw.ProductName,
		Brand:               raw.Brands,
		Quantity:            raw.Quantity,
		WeightKg:            parseQuantityKg(raw.Quantity),
		ManufacturingPlaces: raw.ManufacturingPlaces,
		CategoryTags:        raw.CategoriesTags,
		ProcessingTier:      raw.NovaGroup,
		ImageURL:            raw.ImageURL,
		Nutriments: domain.Nutriments{
			EnergyKcal100g:    raw.Nutriments.EnergyKcal100g,
			Protein100g:       raw.Nutriments.Proteins100g,
			Carbohydrates100g: raw.Nutriments.Carbohydrates100g,
			Fat100g:           raw.Nutriments.Fat100g,
			Sugars100g:        raw.Nutriments.Sugars100g,
			Salt100g:          raw.Nutriments.Salt100g,
		},
	}

	// The most specific (last) category tag drives recommendations.
	if len(raw.CategoriesTags) > 0 {
		product.PrimaryCategory = humanizeTag(raw.CategoriesTags[len(raw.CategoriesTags)-1])
	}

	palmOil := make(map[string]bool, len(raw.IngredientsFromPalmOilTags))
	for _, tag := range raw.IngredientsFromPalmOilTags {
		palmOil[tag] = true
	}

	record := &domain.ProductRecord{Product: product}
	for idx, ing := range raw.Ingredients {
		if ing.ID == "" {
			continue
		}
		mapped := domain.Ingredient{
			Tag:              ing.ID,
			Name:             ingredientName(ing),
			PercentEstimate:  ing.PercentEstimate,
			PercentMin:       ing.PercentMin,
			PercentMax:       ing.PercentMax,
			Rank:             idx + 1,
			VeganStatus:      ing.Vegan,
			VegetarianStatus: ing.Vegetarian,
			FromPalmOil:      palmOil[ing.ID],
		}
		classifyIngredient(&mapped)
		if factor, ok := emissionFactors[ing.ID]; ok {
			f := factor
			mapped.EmissionFactor = &f
		}
		record.Ingredients = append(record.Ingredients, mapped)
	}

	for _, pkg := range raw.Packagings {
		if pkg.Material == "" {
			continue
		}
		units := pkg.NumberOfUnits
		if units <= 0 {
			units = 1
		}
		record.Packaging = append(record.Packaging, domain.PackagingComponent{
			Material:      materialFor(pkg.Material),
			Shape:         humanizeTag(pkg.Shape),
			Recycling:     humanizeTag(pkg.Recycling),
			NumberOfUnits: units,
		})
	}

	return record
}

var additivePattern = regexp.MustCompile(`^en:(e\d{3}[a-z]?)$`)

// classifyIngredient fills the health fields from the additive and
// ingredient-concern reference tables. Unlisted ingredients stay
// unclassified and default to good downstream.
func classifyIngredient(ing *domain.Ingredient) {
	if match := additivePattern.FindStringSubmatch(ing.Tag); match != nil {
		ing.IsAdditive = true
		ing.AdditiveCode = strings.ToUpper(match[1])
		if info, ok := additives[ing.Tag]; ok {
			ing.Health = info.health
			ing.HealthConcerns = info.concerns
		}
		return
	}
	if info, ok := ingredientConcerns[ing.Tag]; ok {
		ing.Health = info.health
		ing.HealthConcerns = info.concerns
		return
	}
	if ing.FromPalmOil {
		ing.Health = domain.HealthCaution
		ing.HealthConcerns = "Contains palm oil"
	}
}

func ingredientName(ing rawIngredient) string {
	if ing.Text != "" {
		return ing.Text
	}
	return humanizeTag(ing.ID)
}

var quantityPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// parseQuantityKg parses label quantities like "560g", "1.5 kg" or "12 oz"
// into kilograms. Returns nil when no number can be extracted.
func parseQuantityKg(quantity string) *float64 {
	if quantity == "" {
		return nil
	}
	qty := strings.ToLower(strings.TrimSpace(quantity))

	match := quantityPattern.FindString(qty)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	var grams float64
	switch {
	case strings.Contains(qty, "kg"):
		grams = value * 1000
	case strings.Contains(qty, "lb") || strings.Contains(qty, "pound"):
		grams = value * 453.592
	case strings.Contains(qty, "oz") || strings.Contains(qty, "ounce"):
		grams = value * 28.3495
	default:
		grams = value
	}

	kg := grams / 1000
	return &kg
}

func tagSlug(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, "en:"))
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// humanizeTag turns "en:united-states" into "United States".
func humanizeTag(tag string) string {
	if tag == "" {
		return ""
	}
	words := strings.Split(strings.ReplaceAll(tagSlug(tag), "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
