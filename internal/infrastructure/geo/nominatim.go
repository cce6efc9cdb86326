package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/ecocart/backend/internal/domain"
)

// Cache stores resolved coordinates keyed by normalized location text.
type Cache interface {
	Get(ctx context.Context, key string) (domain.Coordinates, error)
	Set(ctx context.Context, key string, coords domain.Coordinates) error
}

// commonLocations short-circuits geocoding for the manufacturing origins
// that dominate real-world label data.
var commonLocations = map[string]domain.Coordinates{
	"usa":            {Lat: 37.0902, Lon: -95.7129},
	"united states":  {Lat: 37.0902, Lon: -95.7129},
	"canada":         {Lat: 56.1304, Lon: -106.3468},
	"mexico":         {Lat: 23.6345, Lon: -102.5528},
	"italy":          {Lat: 41.8719, Lon: 12.5674},
	"france":         {Lat: 46.2276, Lon: 2.2137},
	"spain":          {Lat: 40.4637, Lon: -3.7492},
	"germany":        {Lat: 51.1657, Lon: 10.4515},
	"uk":             {Lat: 55.3781, Lon: -3.4360},
	"united kingdom": {Lat: 55.3781, Lon: -3.4360},
	"china":          {Lat: 35.8617, Lon: 104.1954},
	"japan":          {Lat: 36.2048, Lon: 138.2529},
	"india":          {Lat: 20.5937, Lon: 78.9629},
	"brazil":         {Lat: -14.2350, Lon: -51.9253},
	"australia":      {Lat: -25.2744, Lon: 133.7751},
}

// NominatimGeocoder resolves free-form location text through the Nominatim
// (OpenStreetMap) search API. Nominatim's usage policy allows at most one
// request per second, so every remote lookup passes through a rate limiter;
// a builtin table and a cache keep most lookups local.
type NominatimGeocoder struct {
	client      *resty.Client
	rateLimiter *rate.Limiter
	cache       Cache
}

// NewNominatimGeocoder creates a geocoder against baseURL (e.g.
// "https://nominatim.openstreetmap.org"). cache may be nil.
func NewNominatimGeocoder(baseURL string, cache Cache) *NominatimGeocoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "EcoCart/1.0 (Sustainability Tracking)").
		SetTimeout(5 * time.Second)

	return &NominatimGeocoder{
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 1),
		cache:       cache,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve converts location text to coordinates. The builtin table and the
// cache are consulted before the API; an unknown location returns
// ErrLocationNotFound.
func (g *NominatimGeocoder) Resolve(ctx context.Context, locationText string) (domain.Coordinates, error) {
	normalized := strings.ToLower(strings.TrimSpace(locationText))
	if normalized == "" {
		return domain.Coordinates{}, domain.ErrLocationNotFound
	}

	if coords, ok := commonLocations[normalized]; ok {
		return coords, nil
	}

	if g.cache != nil {
		if coords, err := g.cache.Get(ctx, normalized); err == nil {
			return coords, nil
		}
	}

	if err := g.rateLimiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              locationText,
			"format":         "json",
			"limit":          "1",
			"addressdetails": "1",
		}).
		Get("/search")
	if err != nil {
		log.Printf("[Geocoder] Request error for %q: %v", locationText, err)
		return domain.Coordinates{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("[Geocoder] API error for %q - Status: %d", locationText, resp.StatusCode())
		return domain.Coordinates{}, fmt.Errorf("geocoding failed: status %d", resp.StatusCode())
	}

	var results []nominatimResult
	if err := json.Unmarshal(resp.Body(), &results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		log.Printf("[Geocoder] No results for %q", locationText)
		return domain.Coordinates{}, domain.ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if g.cache != nil {
		if err := g.cache.Set(ctx, normalized, coords); err != nil {
			log.Printf("[Geocoder] Cache write for %q failed: %v", normalized, err)
		}
	}

	log.Printf("[Geocoder] Resolved %q -> (%.4f, %.4f)", locationText, lat, lon)
	return coords, nil
}
