package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"foodfacts/explorer/internal/config"
	"foodfacts/explorer/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// fieldProjection is the fixed set of fields requested on every list
// query. Keeping the projection small keeps feed pages cheap.
const fieldProjection = "code,product_name,image_url,image_front_url,image_small_url," +
	"categories_tags,nutrition_grades,nutrition_grade_fr,ingredients_text"

// CatalogClient reads the remote product catalog. Transport and decode
// failures never cross this boundary: list queries degrade to an empty
// slice and the single-item lookup to "not found", with the failure
// logged for diagnostics only.
type CatalogClient interface {
	// Feed returns one page of the default feed, ordered by the
	// source's popularity metric. An empty page signals end-of-feed.
	Feed(ctx context.Context, page int) []domain.Product
	// Search returns a single bounded page of free-text matches.
	Search(ctx context.Context, term string) []domain.Product
	// ByCategory returns a single bounded page of category members.
	ByCategory(ctx context.Context, tag string) []domain.Product
	// Lookup fetches the product with the exact code. The second
	// return is false when the product is absent or the query failed.
	Lookup(ctx context.Context, code string) (domain.Product, bool)
	// Categories returns all known categories.
	Categories(ctx context.Context) []domain.Category
}

type openFoodFactsClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	pageSize   int
	httpClient *resty.Client
}

func NewOpenFoodFactsClient(cfg config.APIConfig) CatalogClient {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return &openFoodFactsClient{
		rl:         rl,
		baseURL:    cfg.BaseURL,
		pageSize:   pageSize,
		httpClient: httpClient,
	}
}

// searchResponse is the envelope of both the feed and free-text queries
// as well as the category member listing.
type searchResponse struct {
	Products []domain.SourceProduct `json:"products"`
}

// productResponse is the envelope of the exact-code lookup. Product is
// null when the code is unknown.
type productResponse struct {
	Status  int                   `json:"status"`
	Product *domain.SourceProduct `json:"product"`
}

type categoriesResponse struct {
	Tags []domain.Category `json:"tags"`
}

func (c *openFoodFactsClient) Feed(ctx context.Context, page int) []domain.Product {
	u := fmt.Sprintf("%s/cgi/search.pl?action=process&json=true&page=%d&page_size=%d&sort_by=unique_scans_n&fields=%s",
		c.baseURL, page, c.pageSize, fieldProjection)

	return c.fetchProducts(ctx, u, fmt.Sprintf("feed page %d", page))
}

func (c *openFoodFactsClient) Search(ctx context.Context, term string) []domain.Product {
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&json=true&page_size=%d&fields=%s",
		c.baseURL, url.QueryEscape(term), c.pageSize, fieldProjection)

	return c.fetchProducts(ctx, u, fmt.Sprintf("search %q", term))
}

func (c *openFoodFactsClient) ByCategory(ctx context.Context, tag string) []domain.Product {
	u := fmt.Sprintf("%s/category/%s.json?page_size=%d&fields=%s",
		c.baseURL, url.PathEscape(tag), c.pageSize, fieldProjection)

	return c.fetchProducts(ctx, u, fmt.Sprintf("category %q", tag))
}

func (c *openFoodFactsClient) Lookup(ctx context.Context, code string) (domain.Product, bool) {
	u := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(code))

	body, err := c.fetchJSON(ctx, u)
	if err != nil {
		log.Warnf("Lookup of product %s failed: %v", code, err)
		return domain.Product{}, false
	}

	var resp productResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warnf("Failed to decode product %s: %v", code, err)
		return domain.Product{}, false
	}

	if resp.Product == nil {
		return domain.Product{}, false
	}

	return domain.Normalize(*resp.Product), true
}

func (c *openFoodFactsClient) Categories(ctx context.Context) []domain.Category {
	u := fmt.Sprintf("%s/categories.json", c.baseURL)

	body, err := c.fetchJSON(ctx, u)
	if err != nil {
		log.Warnf("Failed to fetch categories: %v", err)
		return nil
	}

	var resp categoriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warnf("Failed to decode categories: %v", err)
		return nil
	}

	return resp.Tags
}

// fetchProducts runs one list query and coerces every failure mode to an
// empty result. Records are normalized before they leave the package.
func (c *openFoodFactsClient) fetchProducts(ctx context.Context, url, what string) []domain.Product {
	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		log.Warnf("Failed to fetch %s: %v", what, err)
		return nil
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Warnf("Failed to decode %s: %v", what, err)
		return nil
	}

	products := domain.NormalizeAll(resp.Products)
	log.Debugf("Fetched %s: %d products", what, len(products))
	return products
}

func (c *openFoodFactsClient) fetchJSON(ctx context.Context, url string) ([]byte, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return []byte(resp.String()), nil
}
