package openfoodfacts

import "github.com/ecocart/backend/internal/domain"

// materialEntry pairs a substring key with the fixed environmental
// properties of a packaging material. Matching is by substring on the
// material tag slug, so "en:pet-bottle" hits the "pet" entry.
type materialEntry struct {
	key      string
	score    int
	adjust   int
	co2PerKg float64
}

// Ordered: more specific keys before the generic ones they contain
// ("pet" and "hdpe" before "plastic" would not matter for substring hits,
// but "aluminium" aliases "aluminum" and "steel"/"tin" must precede "metal").
var materialTable = []materialEntry{
	{"cardboard", 87, 10, 0.7},
	{"paper", 87, 10, 0.5},
	{"pet", 28, -8, 3.5},
	{"hdpe", 26, -10, 2.8},
	{"plastic", 23, -15, 4.0},
	{"glass", 51, 0, 0.9},
	{"aluminium", 68, 5, 8.5},
	{"aluminum", 68, 5, 8.5},
	{"steel", 65, 3, 2.0},
	{"tin", 65, 3, 2.2},
	{"metal", 68, 5, 6.0},
}

const (
	defaultMaterialScore  = 40
	defaultMaterialAdjust = -5
	defaultMaterialCO2    = 3.0
)

// materialFor resolves a packaging material tag to its reference properties,
// falling back to moderate defaults for unrecognized materials.
func materialFor(tag string) domain.Material {
	slug := tagSlug(tag)
	for _, entry := range materialTable {
		if contains(slug, entry.key) {
			co2 := entry.co2PerKg
			return domain.Material{
				Tag:                tag,
				Name:               humanizeTag(tag),
				EnvironmentalScore: entry.score,
				ScoreAdjustment:    entry.adjust,
				ProductionCO2PerKg: &co2,
			}
		}
	}
	co2 := defaultMaterialCO2
	return domain.Material{
		Tag:                tag,
		Name:               humanizeTag(tag),
		EnvironmentalScore: defaultMaterialScore,
		ScoreAdjustment:    defaultMaterialAdjust,
		ProductionCO2PerKg: &co2,
	}
}

// emissionFactors maps ingredient tags to kg CO2-equivalent per kg of
// ingredient (cradle-to-gate production averages). Unlisted ingredients
// have no factor; the scorer falls back to processing-tier estimates.
var emissionFactors = map[string]float64{
	"en:beef":            27.0,
	"en:lamb":            22.9,
	"en:cheese":          13.5,
	"en:pork":            12.1,
	"en:chicken":         6.9,
	"en:chicken-meat":    6.9,
	"en:egg":             4.8,
	"en:eggs":            4.8,
	"en:rice":            4.0,
	"en:fish":            5.1,
	"en:milk":            3.2,
	"en:whole-milk":      3.2,
	"en:skimmed-milk":    3.0,
	"en:butter":          9.0,
	"en:cream":           5.6,
	"en:yogurt":          2.2,
	"en:palm-oil":        7.6,
	"en:sunflower-oil":   3.5,
	"en:rapeseed-oil":    3.8,
	"en:olive-oil":       5.4,
	"en:coconut-oil":     3.1,
	"en:sugar":           3.2,
	"en:cane-sugar":      3.2,
	"en:chocolate":       18.7,
	"en:cocoa":           18.7,
	"en:cocoa-butter":    18.7,
	"en:cocoa-paste":     18.7,
	"en:coffee":          16.5,
	"en:wheat":           1.4,
	"en:wheat-flour":     1.4,
	"en:flour":           1.4,
	"en:oat":             0.9,
	"en:oats":            0.9,
	"en:oat-flakes":      0.9,
	"en:corn":            1.1,
	"en:maize":           1.1,
	"en:soy":             2.0,
	"en:soybeans":        2.0,
	"en:tomato":          1.4,
	"en:tomatoes":        1.4,
	"en:potato":          0.5,
	"en:potatoes":        0.5,
	"en:apple":           0.4,
	"en:banana":          0.8,
	"en:orange":          0.4,
	"en:onion":           0.5,
	"en:carrot":          0.4,
	"en:pea":             0.9,
	"en:peas":            0.9,
	"en:lentils":         0.9,
	"en:chickpea":        0.8,
	"en:chickpeas":       0.8,
	"en:almond":          2.3,
	"en:almonds":         2.3,
	"en:hazelnut":        2.1,
	"en:hazelnuts":       2.1,
	"en:peanut":          3.2,
	"en:peanuts":         3.2,
	"en:water":           0.001,
	"en:salt":            0.05,
	"en:honey":           1.8,
}

// additiveInfo is the health classification of a food additive.
type additiveInfo struct {
	health   domain.HealthClass
	concerns string
}

// additives maps E-number tags to health classifications. The list covers
// the additives that actually move a recommendation: azo dyes, contested
// preservatives and sweeteners. Everything absent defaults to good.
var additives = map[string]additiveInfo{
	"en:e102":  {domain.HealthHarmful, "Tartrazine, linked to hyperactivity in children"},
	"en:e104":  {domain.HealthHarmful, "Quinoline yellow, linked to hyperactivity"},
	"en:e110":  {domain.HealthHarmful, "Sunset yellow, linked to hyperactivity"},
	"en:e122":  {domain.HealthHarmful, "Azorubine, azo dye linked to hyperactivity"},
	"en:e124":  {domain.HealthHarmful, "Ponceau 4R, azo dye linked to hyperactivity"},
	"en:e129":  {domain.HealthHarmful, "Allura red, azo dye linked to hyperactivity"},
	"en:e150d": {domain.HealthCaution, "Caramel color IV, contains 4-MEI"},
	"en:e171":  {domain.HealthHarmful, "Titanium dioxide, banned as food additive in the EU"},
	"en:e211":  {domain.HealthCaution, "Sodium benzoate, may form benzene with vitamin C"},
	"en:e220":  {domain.HealthCaution, "Sulfur dioxide, can trigger asthma"},
	"en:e249":  {domain.HealthHarmful, "Potassium nitrite, forms nitrosamines"},
	"en:e250":  {domain.HealthHarmful, "Sodium nitrite, forms nitrosamines"},
	"en:e251":  {domain.HealthCaution, "Sodium nitrate, converts to nitrite"},
	"en:e320":  {domain.HealthHarmful, "BHA, possible human carcinogen"},
	"en:e321":  {domain.HealthCaution, "BHT, suspected endocrine disruptor"},
	"en:e407":  {domain.HealthCaution, "Carrageenan, linked to digestive inflammation"},
	"en:e421":  {domain.HealthCaution, "Mannitol, laxative effect in quantity"},
	"en:e433":  {domain.HealthCaution, "Polysorbate 80, emulsifier linked to gut effects"},
	"en:e466":  {domain.HealthCaution, "Carboxymethylcellulose, emulsifier linked to gut effects"},
	"en:e621":  {domain.HealthCaution, "Monosodium glutamate, sensitivity reactions"},
	"en:e950":  {domain.HealthCaution, "Acesulfame K, artificial sweetener"},
	"en:e951":  {domain.HealthCaution, "Aspartame, classified possibly carcinogenic by IARC"},
	"en:e954":  {domain.HealthCaution, "Saccharin, artificial sweetener"},
	"en:e955":  {domain.HealthCaution, "Sucralose, artificial sweetener"},
}

// ingredientConcerns classifies non-additive ingredients that still warrant
// a caution flag.
var ingredientConcerns = map[string]additiveInfo{
	"en:palm-oil":                   {domain.HealthCaution, "High in saturated fat, production drives deforestation"},
	"en:hydrogenated-oil":           {domain.HealthHarmful, "Source of trans fats"},
	"en:hydrogenated-palm-oil":      {domain.HealthHarmful, "Source of trans fats"},
	"en:partially-hydrogenated-oil": {domain.HealthHarmful, "Source of trans fats"},
	"en:high-fructose-corn-syrup":   {domain.HealthCaution, "Added sugar linked to metabolic effects"},
	"en:glucose-fructose-syrup":     {domain.HealthCaution, "Added sugar linked to metabolic effects"},
}
