package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ecocart/backend/internal/domain"
)

// MockProductRepository is an in-memory implementation of domain.ProductRepository.
type MockProductRepository struct {
	products    map[int64]*domain.Product
	ingredients map[int64][]domain.Ingredient
	packaging   map[int64][]domain.PackagingComponent
	byCategory  []domain.ProductSummary
	categoryErr error
	upserts     []*domain.ProductRecord
	nextID      int64
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:    make(map[int64]*domain.Product),
		ingredients: make(map[int64][]domain.Ingredient),
		packaging:   make(map[int64][]domain.PackagingComponent),
		nextID:      1000,
	}
}

func (m *MockProductRepository) AddProduct(p *domain.Product, ingredients []domain.Ingredient, packaging []domain.PackagingComponent) {
	m.products[p.ID] = p
	m.ingredients[p.ID] = ingredients
	m.packaging[p.ID] = packaging
}

func (m *MockProductRepository) GetProductFacts(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Barcode == code {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) GetIngredients(ctx context.Context, id int64) ([]domain.Ingredient, error) {
	return m.ingredients[id], nil
}

func (m *MockProductRepository) GetPackaging(ctx context.Context, id int64) ([]domain.PackagingComponent, error) {
	return m.packaging[id], nil
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string, excludeID int64, limit int) ([]domain.ProductSummary, error) {
	if m.categoryErr != nil {
		return nil, m.categoryErr
	}
	var out []domain.ProductSummary
	for _, s := range m.byCategory {
		if s.ID != excludeID && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockProductRepository) UpsertProduct(ctx context.Context, record *domain.ProductRecord) (*domain.Product, error) {
	m.upserts = append(m.upserts, record)
	for _, p := range m.products {
		if p.Barcode == record.Product.Barcode {
			return p, nil
		}
	}
	m.nextID++
	stored := record.Product
	stored.ID = m.nextID
	m.AddProduct(&stored, record.Ingredients, record.Packaging)
	return &stored, nil
}

// MockGeocoder is a table-backed implementation of domain.Geocoder.
type MockGeocoder struct {
	locations map[string]domain.Coordinates
	err       error
	calls     int
}

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{locations: make(map[string]domain.Coordinates)}
}

func (m *MockGeocoder) Resolve(ctx context.Context, text string) (domain.Coordinates, error) {
	m.calls++
	if m.err != nil {
		return domain.Coordinates{}, m.err
	}
	if c, ok := m.locations[text]; ok {
		return c, nil
	}
	return domain.Coordinates{}, domain.ErrLocationNotFound
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func newTestScoringService(repo *MockProductRepository, geocoder *MockGeocoder) *ScoringService {
	return NewScoringService(repo, geocoder, ScoringConfig{
		DefaultDestination:     domain.Coordinates{Lat: 44.6488, Lon: -63.5752},
		AssumedProductWeightKg: 1.0,
	})
}

func TestScoreRawMaterials(t *testing.T) {
	svc := newTestScoringService(NewMockProductRepository(), NewMockGeocoder())

	t.Run("weighted percents with tier 1", func(t *testing.T) {
		ingredients := []domain.Ingredient{
			{Tag: "en:oats", Rank: 1, PercentEstimate: floatPtr(60), EmissionFactor: floatPtr(0.5)},
			{Tag: "en:sugar", Rank: 2, PercentEstimate: floatPtr(40), EmissionFactor: floatPtr(1.5)},
		}
		result := svc.ScoreRawMaterials(intPtr(1), ingredients)

		// 0.6*0.5 + 0.4*1.5 = 0.9, multiplier 1.0
		if result.TotalCO2Kg != 0.9 {
			t.Errorf("TotalCO2Kg = %v, want 0.9", result.TotalCO2Kg)
		}
		if result.Points != 10 {
			t.Errorf("Points = %v, want 10", result.Points)
		}
		if result.Confidence != domain.ConfidenceHigh {
			t.Errorf("Confidence = %v, want high", result.Confidence)
		}
	})

	t.Run("tier multiplier penalizes processing", func(t *testing.T) {
		ingredients := []domain.Ingredient{
			{Tag: "en:milk", Rank: 1, PercentEstimate: floatPtr(100), EmissionFactor: floatPtr(1.0)},
		}
		result := svc.ScoreRawMaterials(intPtr(4), ingredients)
		if result.TotalCO2Kg != 1.5 {
			t.Errorf("TotalCO2Kg = %v, want 1.5", result.TotalCO2Kg)
		}
		if result.Points != 5 {
			t.Errorf("Points = %v, want 5", result.Points)
		}
	})

	t.Run("unknown tier uses the ultra-processed multiplier", func(t *testing.T) {
		ingredients := []domain.Ingredient{
			{Tag: "en:milk", Rank: 1, PercentEstimate: floatPtr(100), EmissionFactor: floatPtr(2.0)},
		}
		result := svc.ScoreRawMaterials(nil, ingredients)
		if result.TotalCO2Kg != 3.0 {
			t.Errorf("TotalCO2Kg = %v, want 3.0", result.TotalCO2Kg)
		}
		if result.Breakdown.TierMultiplier != 1.5 {
			t.Errorf("TierMultiplier = %v, want 1.5", result.Breakdown.TierMultiplier)
		}
	})

	t.Run("no ingredients falls back to tier estimate", func(t *testing.T) {
		result := svc.ScoreRawMaterials(intPtr(1), nil)
		if result.TotalCO2Kg != 0.8 {
			t.Errorf("TotalCO2Kg = %v, want 0.8", result.TotalCO2Kg)
		}
		if result.Points != 10 {
			t.Errorf("Points = %v, want 10", result.Points)
		}
		if result.Confidence != domain.ConfidenceLow {
			t.Errorf("Confidence = %v, want low", result.Confidence)
		}
		if result.Quality.FallbackUsed != "tier_only_estimate" {
			t.Errorf("FallbackUsed = %q, want tier_only_estimate", result.Quality.FallbackUsed)
		}
	})

	t.Run("ingredients without emission factors fall back to tier estimate", func(t *testing.T) {
		ingredients := []domain.Ingredient{
			{Tag: "en:mystery", Rank: 1},
			{Tag: "en:other", Rank: 2},
		}
		result := svc.ScoreRawMaterials(intPtr(3), ingredients)
		if result.TotalCO2Kg != 3.0 {
			t.Errorf("TotalCO2Kg = %v, want 3.0", result.TotalCO2Kg)
		}
		if result.Confidence != domain.ConfidenceLow {
			t.Errorf("Confidence = %v, want low", result.Confidence)
		}
	})

	t.Run("uniform distribution when no percents declared", func(t *testing.T) {
		ingredients := []domain.Ingredient{
			{Tag: "en:a", Rank: 1, EmissionFactor: floatPtr(2.0)},
			{Tag: "en:b", Rank: 2, EmissionFactor: floatPtr(4.0)},
		}
		result := svc.ScoreRawMaterials(intPtr(1), ingredients)
		// 50% each: 0.5*2 + 0.5*4 = 3.0
		if result.TotalCO2Kg != 3.0 {
			t.Errorf("TotalCO2Kg = %v, want 3.0", result.TotalCO2Kg)
		}
		if result.Points != 0 {
			t.Errorf("Points = %v, want 0", result.Points)
		}
		// Full coverage but no declared percents: never high.
		if result.Confidence != domain.ConfidenceMedium {
			t.Errorf("Confidence = %v, want medium", result.Confidence)
		}
	})

	t.Run("mixed percent coverage skips unapportionable ingredients", func(t *testing.T) {
		ingredients := []domain.Ingredient{
			{Tag: "en:a", Rank: 1, PercentEstimate: floatPtr(80), EmissionFactor: floatPtr(1.0)},
			{Tag: "en:b", Rank: 2, EmissionFactor: floatPtr(50.0)}, // no percent, must be skipped
		}
		result := svc.ScoreRawMaterials(intPtr(1), ingredients)
		if result.TotalCO2Kg != 0.8 {
			t.Errorf("TotalCO2Kg = %v, want 0.8", result.TotalCO2Kg)
		}
		// 1 of 2 apportioned -> coverage 0.5 -> medium
		if result.Confidence != domain.ConfidenceMedium {
			t.Errorf("Confidence = %v, want medium", result.Confidence)
		}
	})

	t.Run("points stay within bounds", func(t *testing.T) {
		cases := [][]domain.Ingredient{
			{{Tag: "en:beef", Rank: 1, PercentEstimate: floatPtr(100), EmissionFactor: floatPtr(60.0)}},
			{{Tag: "en:water", Rank: 1, PercentEstimate: floatPtr(100), EmissionFactor: floatPtr(0.001)}},
			nil,
		}
		for _, ingredients := range cases {
			result := svc.ScoreRawMaterials(intPtr(2), ingredients)
			if result.Points < rawMaterialsMin || result.Points > rawMaterialsMax {
				t.Errorf("Points = %v, out of [-15,10]", result.Points)
			}
		}
	})
}

func TestScorePackaging(t *testing.T) {
	svc := newTestScoringService(NewMockProductRepository(), NewMockGeocoder())

	t.Run("no packaging yields distinct status", func(t *testing.T) {
		result := svc.ScorePackaging(nil)
		if result.Status != domain.StatusNoPackagingData {
			t.Errorf("Status = %v, want no_packaging_data", result.Status)
		}
		if result.Points != 0 {
			t.Errorf("Points = %v, want 0", result.Points)
		}
		if result.Confidence != domain.ConfidenceNone {
			t.Errorf("Confidence = %v, want none", result.Confidence)
		}
	})

	t.Run("weighted average of adjustments", func(t *testing.T) {
		components := []domain.PackagingComponent{
			{Material: domain.Material{Name: "Cardboard", ScoreAdjustment: 10}, WeightPercent: floatPtr(70)},
			{Material: domain.Material{Name: "Plastic", ScoreAdjustment: -15}, WeightPercent: floatPtr(30)},
		}
		result := svc.ScorePackaging(components)
		// 0.7*10 + 0.3*(-15) = 2.5 -> rounds to 3
		if result.Points != 3 {
			t.Errorf("Points = %v, want 3", result.Points)
		}
		if result.Confidence != domain.ConfidenceHigh {
			t.Errorf("Confidence = %v, want high", result.Confidence)
		}
	})

	t.Run("uniform distribution when no weights declared", func(t *testing.T) {
		components := []domain.PackagingComponent{
			{Material: domain.Material{Name: "Glass", ScoreAdjustment: 0}},
			{Material: domain.Material{Name: "Aluminium", ScoreAdjustment: 5}},
		}
		result := svc.ScorePackaging(components)
		if result.Points != 3 { // (0+5)/2 = 2.5 -> 3
			t.Errorf("Points = %v, want 3", result.Points)
		}
		if result.Quality.HasWeightPercentages {
			t.Error("HasWeightPercentages = true, want false")
		}
	})

	t.Run("skips unweighted components when others declare weights", func(t *testing.T) {
		components := []domain.PackagingComponent{
			{Material: domain.Material{Name: "Cardboard", ScoreAdjustment: 10}, WeightPercent: floatPtr(60)},
			{Material: domain.Material{Name: "Plastic", ScoreAdjustment: -15}},
		}
		result := svc.ScorePackaging(components)
		if result.Points != 10 {
			t.Errorf("Points = %v, want 10", result.Points)
		}
		// 60% coverage -> medium
		if result.Confidence != domain.ConfidenceMedium {
			t.Errorf("Confidence = %v, want medium", result.Confidence)
		}
	})

	t.Run("result clamped to bounds", func(t *testing.T) {
		components := []domain.PackagingComponent{
			{Material: domain.Material{Name: "Mixed Plastic", ScoreAdjustment: -15}, WeightPercent: floatPtr(100)},
		}
		result := svc.ScorePackaging(components)
		if result.Points < packagingMin || result.Points > packagingMax {
			t.Errorf("Points = %v, out of [-15,10]", result.Points)
		}
	})
}

func TestScoreTransportation(t *testing.T) {
	ctx := context.Background()
	dest := domain.Coordinates{Lat: 0, Lon: 0}

	t.Run("missing location yields status", func(t *testing.T) {
		svc := newTestScoringService(NewMockProductRepository(), NewMockGeocoder())
		result := svc.ScoreTransportation(ctx, "", dest)
		if result.Status != domain.StatusNoLocationData {
			t.Errorf("Status = %v, want no_location_data", result.Status)
		}
		if result.Points != 0 {
			t.Errorf("Points = %v, want 0", result.Points)
		}
	})

	t.Run("unresolvable location yields geocoding_failed", func(t *testing.T) {
		svc := newTestScoringService(NewMockProductRepository(), NewMockGeocoder())
		result := svc.ScoreTransportation(ctx, "Atlantis", dest)
		if result.Status != domain.StatusGeocodingFailed {
			t.Errorf("Status = %v, want geocoding_failed", result.Status)
		}
	})

	t.Run("distance bands map to points", func(t *testing.T) {
		// Longitudes chosen so the equatorial haversine distance hits
		// each band: deg = km / 6371 * 180 / pi.
		tests := []struct {
			name       string
			originLon  float64
			wantPoints int
			wantMode   string
		}{
			{"local", 0.4496608, 0, "local_truck"},
			{"regional", 2.6979648, -2, "regional_truck"},
			{"national", 13.4898241, -5, "national_truck"},
			{"continental", 26.9796482, -8, "rail_truck"},
			{"intercontinental", 71.9457285, -10, "sea_truck"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				geocoder := NewMockGeocoder()
				geocoder.locations["Origin"] = domain.Coordinates{Lat: 0, Lon: tt.originLon}
				svc := newTestScoringService(NewMockProductRepository(), geocoder)

				result := svc.ScoreTransportation(ctx, "Origin", dest)
				if result.Status != domain.StatusOK {
					t.Fatalf("Status = %v, want ok", result.Status)
				}
				if result.Points != tt.wantPoints {
					t.Errorf("Points = %v, want %v (distance %v)", result.Points, tt.wantPoints, result.DistanceKm)
				}
				if result.TransportMode != tt.wantMode {
					t.Errorf("TransportMode = %v, want %v", result.TransportMode, tt.wantMode)
				}
				if result.Confidence != domain.ConfidenceMedium {
					t.Errorf("Confidence = %v, want medium", result.Confidence)
				}
				if result.Points < -15 || result.Points > 0 {
					t.Errorf("Points = %v, out of [-15,0]", result.Points)
				}
			})
		}
	})

	t.Run("haversine matches reference distance", func(t *testing.T) {
		paris := domain.Coordinates{Lat: 48.8566, Lon: 2.3522}
		london := domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
		got := paris.DistanceKm(london)
		const want = 343.556
		if diff := got - want; diff > 0.1 || diff < -0.1 {
			t.Errorf("DistanceKm = %v, want %v ± 0.1", got, want)
		}
	})
}

func TestScoreClimateEfficiency(t *testing.T) {
	svc := newTestScoringService(NewMockProductRepository(), NewMockGeocoder())

	t.Run("missing calories yields unavailable result", func(t *testing.T) {
		result := svc.ScoreClimateEfficiency(domain.Nutriments{}, 2.0)
		if result.DataAvailable {
			t.Error("DataAvailable = true, want false")
		}
		if result.Points != 0 {
			t.Errorf("Points = %v, want 0", result.Points)
		}
		if result.Confidence != domain.ConfidenceNone {
			t.Errorf("Confidence = %v, want none", result.Confidence)
		}
	})

	t.Run("computes co2 per 100 kcal", func(t *testing.T) {
		n := domain.Nutriments{EnergyKcal100g: floatPtr(250)}
		result := svc.ScoreClimateEfficiency(n, 2.0)
		if !result.DataAvailable {
			t.Fatal("DataAvailable = false, want true")
		}
		if result.CO2Per100Kcal == nil || *result.CO2Per100Kcal != 0.08 {
			t.Errorf("CO2Per100Kcal = %v, want 0.08", result.CO2Per100Kcal)
		}
		if result.EfficiencyRating == "" {
			t.Error("EfficiencyRating is empty")
		}
		if result.Confidence != domain.ConfidenceMedium {
			t.Errorf("Confidence = %v, want medium", result.Confidence)
		}
	})

	t.Run("includes protein efficiency when available", func(t *testing.T) {
		n := domain.Nutriments{EnergyKcal100g: floatPtr(100), Protein100g: floatPtr(20)}
		result := svc.ScoreClimateEfficiency(n, 1.0)
		if result.CO2Per100gProtein == nil || *result.CO2Per100gProtein != 0.5 {
			t.Errorf("CO2Per100gProtein = %v, want 0.5", result.CO2Per100gProtein)
		}
	})

	t.Run("rating monotonically worsens with co2", func(t *testing.T) {
		n := domain.Nutriments{EnergyKcal100g: floatPtr(100)}
		order := map[string]int{"excellent": 0, "good": 1, "moderate": 2, "poor": 3}
		prev := -1
		prevPoints := 100
		for _, co2 := range []float64{0.1, 0.5, 1.5, 5.0} {
			result := svc.ScoreClimateEfficiency(n, co2)
			rank, ok := order[result.EfficiencyRating]
			if !ok {
				t.Fatalf("unknown rating %q", result.EfficiencyRating)
			}
			if rank < prev {
				t.Errorf("rating improved as co2 rose: %v after rank %v", result.EfficiencyRating, prev)
			}
			if result.Points > prevPoints {
				t.Errorf("points rose with co2: %v", result.Points)
			}
			prev, prevPoints = rank, result.Points
		}
	})

	t.Run("points stay within configured bound", func(t *testing.T) {
		n := domain.Nutriments{EnergyKcal100g: floatPtr(50)}
		for _, co2 := range []float64{0, 0.5, 2, 20, 100} {
			result := svc.ScoreClimateEfficiency(n, co2)
			if result.Points < -5 || result.Points > 5 {
				t.Errorf("Points = %v for co2 %v, out of [-5,5]", result.Points, co2)
			}
		}
	})
}

func TestAggregate(t *testing.T) {
	t.Run("baseline with zero deltas is 50 C", func(t *testing.T) {
		total, grade := Aggregate(0, 0, 0, 0)
		if total != 50 || grade != "C" {
			t.Errorf("Aggregate = %v %v, want 50 C", total, grade)
		}
	})

	t.Run("clamps to bounds", func(t *testing.T) {
		total, _ := Aggregate(-100)
		if total != 0 {
			t.Errorf("total = %v, want 0", total)
		}
		total, _ = Aggregate(100)
		if total != 100 {
			t.Errorf("total = %v, want 100", total)
		}
	})

	t.Run("grade boundaries", func(t *testing.T) {
		tests := []struct {
			score int
			want  string
		}{
			{80, "A"}, {79, "B"}, {60, "B"}, {59, "C"},
			{40, "C"}, {39, "D"}, {20, "D"}, {19, "E"}, {0, "E"}, {100, "A"},
		}
		for _, tt := range tests {
			if got := GradeFor(tt.score); got != tt.want {
				t.Errorf("GradeFor(%d) = %q, want %q", tt.score, got, tt.want)
			}
		}
	})
}

func TestComputeScores(t *testing.T) {
	ctx := context.Background()

	setupRepo := func() *MockProductRepository {
		repo := NewMockProductRepository()
		repo.AddProduct(
			&domain.Product{
				ID:                  1,
				Barcode:             "0722776004623",
				Name:                "Granola",
				ManufacturingPlaces: "Italy",
				ProcessingTier:      intPtr(1),
				Nutriments:          domain.Nutriments{EnergyKcal100g: floatPtr(400)},
			},
			[]domain.Ingredient{
				{Tag: "en:oats", Rank: 1, PercentEstimate: floatPtr(60), EmissionFactor: floatPtr(0.5)},
				{Tag: "en:sugar", Rank: 2, PercentEstimate: floatPtr(40), EmissionFactor: floatPtr(1.5)},
			},
			[]domain.PackagingComponent{
				{Material: domain.Material{Name: "Cardboard", ScoreAdjustment: 10}, WeightPercent: floatPtr(100)},
			},
		)
		return repo
	}

	t.Run("returns not found for unknown product", func(t *testing.T) {
		svc := newTestScoringService(NewMockProductRepository(), NewMockGeocoder())
		_, err := svc.ComputeScores(ctx, 999, nil)
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("aggregates all four metrics", func(t *testing.T) {
		repo := setupRepo()
		geocoder := NewMockGeocoder()
		geocoder.locations["Italy"] = domain.Coordinates{Lat: 41.8719, Lon: 12.5674}
		svc := newTestScoringService(repo, geocoder)

		result, err := svc.ComputeScores(ctx, 1, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TotalScore < 0 || result.TotalScore > 100 {
			t.Errorf("TotalScore = %v, out of [0,100]", result.TotalScore)
		}
		if result.Metrics.RawMaterials == nil || result.Metrics.Packaging == nil ||
			result.Metrics.Transportation == nil || result.Metrics.ClimateEfficiency == nil {
			t.Fatalf("expected all four metrics, got %+v", result.Metrics)
		}
		// raw +10, packaging +10, transport -10 (Italy->Halifax ~5933km), climate in [-5,5]
		if result.Metrics.Transportation.Points != -10 {
			t.Errorf("Transportation.Points = %v, want -10", result.Metrics.Transportation.Points)
		}
		if result.Grade != GradeFor(result.TotalScore) {
			t.Errorf("Grade = %q inconsistent with score %d", result.Grade, result.TotalScore)
		}
	})

	t.Run("omits not-applicable metrics but keeps their zero in the sum", func(t *testing.T) {
		repo := NewMockProductRepository()
		repo.AddProduct(&domain.Product{ID: 2, Barcode: "0000000000002", Name: "Bare"}, nil, nil)
		svc := newTestScoringService(repo, NewMockGeocoder())

		result, err := svc.ComputeScores(ctx, 2, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Metrics.Packaging != nil {
			t.Error("Packaging metric should be omitted without packaging data")
		}
		if result.Metrics.Transportation != nil {
			t.Error("Transportation metric should be omitted without location data")
		}
		if result.Metrics.ClimateEfficiency == nil || result.Metrics.ClimateEfficiency.DataAvailable {
			t.Error("ClimateEfficiency should be present with DataAvailable=false")
		}
		// Only the raw-materials tier fallback contributes: 50 + 0 (unknown tier -> 3.0 kg -> 0 points).
		if result.TotalScore != 50 {
			t.Errorf("TotalScore = %v, want 50", result.TotalScore)
		}
	})

	t.Run("idempotent on unchanged repository state", func(t *testing.T) {
		repo := setupRepo()
		geocoder := NewMockGeocoder()
		geocoder.locations["Italy"] = domain.Coordinates{Lat: 41.8719, Lon: 12.5674}
		svc := newTestScoringService(repo, geocoder)

		first, err := svc.ComputeScores(ctx, 1, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.ComputeScores(ctx, 1, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		if string(a) != string(b) {
			t.Errorf("results differ:\n%s\n%s", a, b)
		}
	})

	t.Run("caller destination overrides the default", func(t *testing.T) {
		repo := setupRepo()
		geocoder := NewMockGeocoder()
		geocoder.locations["Italy"] = domain.Coordinates{Lat: 41.8719, Lon: 12.5674}
		svc := newTestScoringService(repo, geocoder)

		rome := &domain.Coordinates{Lat: 41.9, Lon: 12.5}
		result, err := svc.ComputeScores(ctx, 1, rome)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Metrics.Transportation == nil {
			t.Fatal("expected transportation metric")
		}
		if result.Metrics.Transportation.Points != 0 {
			t.Errorf("Points = %v, want 0 for a local origin", result.Metrics.Transportation.Points)
		}
	})
}
