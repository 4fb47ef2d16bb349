// Package persist serializes the cart, the balance and the newsletter list to
// a storage.KV and restores them, reconciling cached cart lines against the
// freshly loaded catalog.
package persist

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/logger"
	"storefront/pkg/money"
	"storefront/pkg/storage"
)

// Storage keys.
const (
	KeyBalance    = "balance"
	KeyCart       = "cart"
	KeyNewsletter = "newsletter_emails"
)

// StoredLine is the persisted form of a cart line. Title, price and image are
// a cache used when the product has left the catalog.
type StoredLine struct {
	Qty   int         `json:"qty"`
	Title string      `json:"title"`
	Price json.Number `json:"price"`
	Image string      `json:"image"`
}

// Adapter reads and writes storefront state. Every Save is a synchronous
// write-through.
type Adapter struct {
	kv  storage.KV
	log *logger.Logger
}

// New returns an adapter over kv.
func New(kv storage.KV, log *logger.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// LoadBalance returns the stored balance. When nothing is stored the starting
// balance is written and returned; an unreadable value is replaced the same
// way.
func (a *Adapter) LoadBalance(ctx context.Context, starting decimal.Decimal) (decimal.Decimal, error) {
	raw, err := a.kv.Get(ctx, KeyBalance)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return starting, a.SaveBalance(ctx, starting)
	case err != nil:
		return starting, errors.Wrap(err, "load balance")
	}
	bal, err := money.Parse(raw)
	if err != nil || bal.IsNegative() {
		a.log.Warn(ctx, "stored balance unreadable, resetting", "value", raw)
		return starting, a.SaveBalance(ctx, starting)
	}
	return bal, nil
}

// SaveBalance writes the balance as a decimal string.
func (a *Adapter) SaveBalance(ctx context.Context, balance decimal.Decimal) error {
	if err := a.kv.Set(ctx, KeyBalance, balance.String()); err != nil {
		return errors.Wrap(err, "save balance")
	}
	return nil
}

// EncodeCart renders c in the persisted layout, keyed by string product id.
func EncodeCart(c *cart.Cart) ([]byte, error) {
	payload := make(map[string]StoredLine, c.Len())
	for _, l := range c.Lines() {
		payload[strconv.Itoa(int(l.Product.ID))] = StoredLine{
			Qty:   l.Qty,
			Title: l.Product.Title,
			Price: json.Number(l.Product.Price.String()),
			Image: l.Product.Image,
		}
	}
	return json.Marshal(payload)
}

// SaveCart writes c.
func (a *Adapter) SaveCart(ctx context.Context, c *cart.Cart) error {
	raw, err := EncodeCart(c)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := a.kv.Set(ctx, KeyCart, string(raw)); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}

// DecodeCart rebuilds a cart from raw. Each line takes the live product from
// cat when the id is still listed, otherwise a product assembled from the
// cached title, price and image. Lines with a bad key, a bad price or a
// non-positive quantity are dropped. Lines are restored in ascending id order.
func DecodeCart(raw []byte, cat *catalog.Catalog) (*cart.Cart, error) {
	var payload map[string]StoredLine
	if err := json.Unmarshal(raw, &payload); err != nil {
		return cart.New(), errors.Wrap(err, "decode cart")
	}

	type entry struct {
		id   catalog.ProductID
		line StoredLine
	}
	entries := make([]entry, 0, len(payload))
	for k, sl := range payload {
		n, err := strconv.Atoi(k)
		if err != nil || sl.Qty <= 0 {
			continue
		}
		entries = append(entries, entry{id: catalog.ProductID(n), line: sl})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	c := cart.New()
	for _, e := range entries {
		p, ok := cat.Lookup(e.id)
		if !ok {
			price, err := decimal.NewFromString(e.line.Price.String())
			if err != nil {
				continue
			}
			p = catalog.Product{ID: e.id, Title: e.line.Title, Price: price, Image: e.line.Image}
		}
		c.Set(p, e.line.Qty)
	}
	return c, nil
}

// LoadCart restores the cart against cat. A missing entry yields an empty
// cart; a corrupt one yields an empty cart and the decode error.
func (a *Adapter) LoadCart(ctx context.Context, cat *catalog.Catalog) (*cart.Cart, error) {
	raw, err := a.kv.Get(ctx, KeyCart)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return cart.New(), nil
	case err != nil:
		return cart.New(), errors.Wrap(err, "load cart")
	}
	return DecodeCart([]byte(raw), cat)
}

// LoadNewsletter returns the subscribed emails in subscription order.
func (a *Adapter) LoadNewsletter(ctx context.Context) ([]string, error) {
	raw, err := a.kv.Get(ctx, KeyNewsletter)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "load newsletter")
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, errors.Wrap(err, "decode newsletter")
	}
	return list, nil
}

// SaveNewsletter writes the email list.
func (a *Adapter) SaveNewsletter(ctx context.Context, emails []string) error {
	if emails == nil {
		emails = []string{}
	}
	raw, err := json.Marshal(emails)
	if err != nil {
		return errors.Wrap(err, "encode newsletter")
	}
	if err := a.kv.Set(ctx, KeyNewsletter, string(raw)); err != nil {
		return errors.Wrap(err, "save newsletter")
	}
	return nil
}
