package service

import (
	"context"

	"foodfacts/explorer/internal/browser"
	"foodfacts/explorer/internal/cart"
	"foodfacts/explorer/internal/client"
	"foodfacts/explorer/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxCategoryOptions caps the category filter list.
const maxCategoryOptions = 10

// Service is the session facade the CLI drives: it coordinates the
// catalog client, the browser and the cart store.
type Service struct {
	client  client.CatalogClient
	browser *browser.Browser
	cart    *cart.Store
}

func New(catalogClient client.CatalogClient, b *browser.Browser, cartStore *cart.Store) *Service {
	return &Service{
		client:  catalogClient,
		browser: b,
		cart:    cartStore,
	}
}

// Warmup primes the feed and fetches the category filter options
// concurrently. Neither query can fail past the client boundary, so
// Warmup never errors; an unreachable catalog yields an empty feed and
// no categories.
func (s *Service) Warmup(ctx context.Context) []domain.Category {
	g, ctx := errgroup.WithContext(ctx)

	var categories []domain.Category
	g.Go(func() error {
		categories = s.CategoryOptions(ctx)
		return nil
	})
	g.Go(func() error {
		s.browser.Reset(ctx)
		return nil
	})

	_ = g.Wait()
	return categories
}

// CategoryOptions returns the first category options for the filter UI,
// with display names falling back to the raw tag.
func (s *Service) CategoryOptions(ctx context.Context) []domain.Category {
	tags := s.client.Categories(ctx)
	if len(tags) > maxCategoryOptions {
		tags = tags[:maxCategoryOptions]
	}

	options := make([]domain.Category, len(tags))
	for i, tag := range tags {
		options[i] = domain.Category{ID: tag.ID, Name: tag.DisplayName()}
	}

	log.Debugf("Loaded %d category options", len(options))
	return options
}

// ProductDetail looks up one product by its exact code. Repeated calls
// re-query the source; there is no caching. A failed query is
// indistinguishable from "not found".
func (s *Service) ProductDetail(ctx context.Context, code string) (domain.Product, bool) {
	return s.client.Lookup(ctx, code)
}

// AddToCartByCode looks the product up and adds it to the cart. The cart
// is left untouched when the code is unknown.
func (s *Service) AddToCartByCode(ctx context.Context, code string) (domain.Product, bool) {
	product, ok := s.client.Lookup(ctx, code)
	if !ok {
		return domain.Product{}, false
	}

	s.cart.Add(ctx, product)
	return product, true
}

func (s *Service) Browser() *browser.Browser {
	return s.browser
}

func (s *Service) Cart() *cart.Store {
	return s.cart
}
