package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
)

// ErrEmptyCatalog is returned when the feed answers with no products.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Fetcher loads the product list from an external feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// HTTPFetcher reads a JSON array of products from URL.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with its own client bounded by timeout.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Fetch performs a single GET; there is no retry.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}
	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	if err := Validate(products); err != nil {
		return nil, err
	}
	return products, nil
}

// Validate checks that a product list is usable: non-empty, unique ids and
// non-negative prices.
func Validate(products []Product) error {
	if len(products) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[ProductID]bool, len(products))
	for _, p := range products {
		if seen[p.ID] {
			return errors.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
		if p.Price.IsNegative() {
			return errors.Errorf("product %d has negative price %s", p.ID, p.Price)
		}
	}
	return nil
}

// Source tells where the loaded catalog came from.
type Source string

const (
	SourceFeed     Source = "feed"
	SourceFallback Source = "fallback"
)

// FetchOrFallback returns the fetched products, or the static fallback list
// if the fetch fails for any reason. The fetch error is returned alongside the
// fallback so the caller can warn about it; the product list is always usable.
func FetchOrFallback(ctx context.Context, f Fetcher) ([]Product, Source, error) {
	products, err := f.Fetch(ctx)
	if err != nil {
		return Fallback(), SourceFallback, err
	}
	return products, SourceFeed, nil
}
