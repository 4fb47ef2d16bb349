// Package storefront is the cart, balance and checkout engine. A Store owns
// the session state and is the only way to change it; every operation runs
// to completion under the store's mutex before the next one starts.
package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/ledger"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/otel"
	"storefront/pkg/persist"
	"storefront/pkg/pricing"
)

// Config holds the storefront's fixed parameters.
type Config struct {
	StartingBalance decimal.Decimal
	TopUpAmount     decimal.Decimal
	Currency        string
	Pricing         pricing.Config
}

// DefaultConfig starts the wallet at 1000 BDT and tops up by the same amount.
func DefaultConfig() Config {
	return Config{
		StartingBalance: decimal.NewFromInt(1000),
		TopUpAmount:     decimal.NewFromInt(1000),
		Currency:        "BDT",
		Pricing:         pricing.DefaultConfig(),
	}
}

// Store holds one session's catalog view, cart, coupon and balance.
type Store struct {
	mu sync.Mutex

	cfg     Config
	engine  pricing.Engine
	catalog *catalog.Catalog
	persist *persist.Adapter
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	cart       *cart.Cart
	coupon     pricing.CouponState
	ledger     *ledger.Ledger
	newsletter []string

	query string
	sort  catalog.SortMode
	view  []catalog.Product
}

// Snapshot is a read-only copy of the state the presentation layer renders.
type Snapshot struct {
	Lines         []cart.Line     `json:"lines"`
	Totals        pricing.Totals  `json:"totals"`
	Balance       decimal.Decimal `json:"balance"`
	Count         int             `json:"count"`
	CouponApplied bool            `json:"coupon_applied"`
	CanCheckout   bool            `json:"can_checkout"`
}

// New restores the persisted balance and cart against cat and returns a
// ready store. cat must already be loaded; see LoadCatalog. Restore problems
// are logged and fall back to defaults. m may be nil.
func New(ctx context.Context, cfg Config, cat *catalog.Catalog, adapter *persist.Adapter, log *logger.Logger, m *metrics.Metrics) (*Store, error) {
	if err := cfg.Pricing.Validate(); err != nil {
		return nil, err
	}
	if cfg.StartingBalance.IsNegative() {
		return nil, newErrorf(KindInvalidAmount, "starting balance must not be negative, got %s", cfg.StartingBalance)
	}

	s := &Store{
		cfg:     cfg,
		engine:  pricing.NewEngine(cfg.Pricing),
		catalog: cat,
		persist: adapter,
		log:     log,
		metrics: m,
		now:     time.Now,
		sort:    catalog.SortDefault,
		view:    cat.Products(),
	}

	bal, err := adapter.LoadBalance(ctx, cfg.StartingBalance)
	if err != nil {
		log.Warn(ctx, "failed to load balance", "error", err)
	}
	s.ledger = ledger.New(bal, adapter)

	c, err := adapter.LoadCart(ctx, cat)
	if err != nil {
		log.Warn(ctx, "failed to load cart", "error", err)
	}
	s.cart = c

	s.newsletter, err = adapter.LoadNewsletter(ctx)
	if err != nil {
		log.Warn(ctx, "failed to load newsletter list", "error", err)
	}

	log.Info(ctx, "storefront ready",
		"products", cat.Len(),
		"cart_lines", s.cart.Len(),
		"balance", s.ledger.Balance().String(),
	)
	s.metrics.State(s.ledger.Balance(), s.cart.Count())
	return s, nil
}

// LoadCatalog fetches the product feed once. On failure it logs a warning and
// returns the fallback catalog; the session never retries.
func LoadCatalog(ctx context.Context, f catalog.Fetcher, log *logger.Logger, m *metrics.Metrics) *catalog.Catalog {
	ctx, span := otel.AddSpan(ctx, "storefront.LoadCatalog")
	defer span.End()

	products, src, err := catalog.FetchOrFallback(ctx, f)
	if err != nil {
		ferr := &Error{Kind: KindCatalogFetchFailure, Message: ErrMsgCatalogFetch, Cause: err}
		log.Warn(ctx, "catalog fetch failed", "error", ferr)
	}
	span.SetAttributes(attribute.String("catalog.source", string(src)), attribute.Int("catalog.products", len(products)))
	m.CatalogLoaded(string(src))
	return catalog.New(products)
}

// Snapshot returns the current cart, totals and balance.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Totals prices the current cart.
func (s *Store) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals()
}

// Balance returns the current balance.
func (s *Store) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balance()
}

// Count returns the cart badge count.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

// Config returns the store configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Catalog returns the loaded catalog.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Store) snapshot() Snapshot {
	t := s.totals()
	return Snapshot{
		Lines:         s.cart.Lines(),
		Totals:        t,
		Balance:       s.ledger.Balance(),
		Count:         s.cart.Count(),
		CouponApplied: s.coupon.Applied,
		CanCheckout:   t.Final.IsPositive() && s.ledger.CanAfford(t.Final),
	}
}

func (s *Store) totals() pricing.Totals {
	return s.engine.Calculate(s.cart, s.coupon)
}

func (s *Store) saveCart(ctx context.Context) {
	if err := s.persist.SaveCart(ctx, s.cart); err != nil {
		s.persistFailed(ctx, persist.KeyCart, err)
	}
}

// persistFailed records a write failure. The in-memory change it belongs to
// is kept.
func (s *Store) persistFailed(ctx context.Context, key string, err error) {
	perr := &Error{Kind: KindPersistenceWriteFailure, Message: ErrMsgPersistence, Cause: err}
	s.log.Error(ctx, "persistence write failed", "key", key, "error", perr)
	s.metrics.PersistFailure(key)
}

// finish logs and counts an operation outcome and refreshes the gauges.
func (s *Store) finish(ctx context.Context, op Op, err error) {
	s.metrics.Operation(string(op), resultLabel(err))
	s.metrics.State(s.ledger.Balance(), s.cart.Count())
	if err != nil {
		s.log.Info(ctx, "operation rejected", "op", string(op), "reason", resultLabel(err), "error", err)
		return
	}
	s.log.Debug(ctx, "operation committed", "op", string(op))
}
