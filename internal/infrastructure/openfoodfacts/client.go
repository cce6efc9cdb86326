package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ecocart/backend/internal/domain"
)

// requiredFields trims the product payload to what the scorers consume.
var requiredFields = strings.Join([]string{
	"code",
	"product_name",
	"brands",
	"quantity",
	"categories_tags",
	"nova_group",
	"ingredients",
	"ingredients_from_palm_oil_tags",
	"nutriments",
	"manufacturing_places",
	"packagings",
	"image_url",
}, ",")

// Client handles communication with the Open Food Facts API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates an Open Food Facts API client. The public instance asks
// for at most 100 product requests per minute, so the limiter runs well
// under that.
func NewClient(baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(1.5), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// doRequest executes an HTTP GET request with proper headers and error handling.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "EcoCart/1.0 (Sustainability Tracking)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// productEnvelope is the v2 product endpoint response. Status 1 means found.
type productEnvelope struct {
	Status  int        `json:"status"`
	Product rawProduct `json:"product"`
}

// FetchProduct retrieves and maps one product by barcode.
func (c *Client) FetchProduct(ctx context.Context, code string) (*domain.ProductRecord, error) {
	log.Printf("[OFF] FetchProduct called with barcode: %s", code)

	endpoint := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(code))
	params := url.Values{}
	params.Add("fields", requiredFields)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[OFF] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("[OFF] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var envelope productEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		if envelope.Status != 1 {
			log.Printf("[OFF] Product not found: %s", code)
			return nil, domain.ErrProductNotFound
		}

		record := mapProduct(&envelope.Product)
		log.Printf("[OFF] Fetched product %s: %q", code, record.Product.Name)
		return record, nil
	}

	log.Printf("[OFF] All retries failed for barcode: %s", code)
	return nil, lastErr
}

// searchEnvelope is the v2 search endpoint response.
type searchEnvelope struct {
	Products []rawProduct `json:"products"`
	Count    int          `json:"count"`
}

// SearchByCategory retrieves products in a category, most complete records
// first. An empty result is not an error.
func (c *Client) SearchByCategory(ctx context.Context, categoryTag string, pageSize int) ([]domain.ProductRecord, error) {
	log.Printf("[OFF] SearchByCategory called with tag: %q", categoryTag)

	if pageSize <= 0 {
		pageSize = 10
	}

	endpoint := fmt.Sprintf("%s/api/v2/search", c.baseURL)
	params := url.Values{}
	params.Add("categories_tags", categoryTag)
	params.Add("fields", requiredFields)
	params.Add("page_size", fmt.Sprintf("%d", pageSize))
	params.Add("sort_by", "completeness")
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]domain.ProductRecord, 0, len(envelope.Products))
	for i := range envelope.Products {
		raw := &envelope.Products[i]
		if raw.Code == "" {
			continue
		}
		records = append(records, *mapProduct(raw))
	}

	log.Printf("[OFF] Found %d products for tag: %q", len(records), categoryTag)
	return records, nil
}
