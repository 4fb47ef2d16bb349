package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/logger"
	"storefront/pkg/money"
	"storefront/pkg/pricing"
	"storefront/pkg/storage"
	"storefront/pkg/storage/memory"
)

func newAdapter(t *testing.T) (*Adapter, *memory.Store) {
	t.Helper()
	kv := memory.New()
	var buf bytes.Buffer
	return New(kv, logger.New(&buf, logger.LevelDebug, "test", nil)), kv
}

func TestLoadBalance_DefaultsAndWritesBack(t *testing.T) {
	ctx := context.Background()
	a, kv := newAdapter(t)

	bal, err := a.LoadBalance(ctx, money.MustParse("1000"))
	require.NoError(t, err)
	assert.Equal(t, "1000", bal.String())

	raw, err := kv.Get(ctx, KeyBalance)
	require.NoError(t, err)
	assert.Equal(t, "1000", raw)
}

func TestLoadBalance_RestoresStored(t *testing.T) {
	ctx := context.Background()
	a, kv := newAdapter(t)
	require.NoError(t, kv.Set(ctx, KeyBalance, "420.5"))

	bal, err := a.LoadBalance(ctx, money.MustParse("1000"))
	require.NoError(t, err)
	assert.Equal(t, "420.5", bal.String())
}

func TestLoadBalance_ResetsGarbage(t *testing.T) {
	ctx := context.Background()
	a, kv := newAdapter(t)
	require.NoError(t, kv.Set(ctx, KeyBalance, "NaN"))

	bal, err := a.LoadBalance(ctx, money.MustParse("1000"))
	require.NoError(t, err)
	assert.Equal(t, "1000", bal.String())
}

func TestEncodeCart_Layout(t *testing.T) {
	c := cart.New()
	c.Set(catalog.Product{ID: 7, Title: "Ring", Price: money.MustParse("9.99"), Image: "ring.jpg"}, 2)

	raw, err := EncodeCart(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"7":{"qty":2,"title":"Ring","price":9.99,"image":"ring.jpg"}}`, string(raw))
}

func TestCartRoundTrip_ReproducesTotals(t *testing.T) {
	ctx := context.Background()
	a, _ := newAdapter(t)
	cat := catalog.New(catalog.Fallback())
	engine := pricing.NewEngine(pricing.DefaultConfig())

	c := cart.New()
	for _, id := range []catalog.ProductID{5, 1, 3} {
		p, ok := cat.Lookup(id)
		require.True(t, ok)
		c.Set(p, int(id))
	}
	require.NoError(t, a.SaveCart(ctx, c))

	restored, err := a.LoadCart(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, c.Count(), restored.Count())
	for _, coupon := range []bool{false, true} {
		want := engine.Calculate(c, pricing.CouponState{Applied: coupon})
		got := engine.Calculate(restored, pricing.CouponState{Applied: coupon})
		assert.True(t, want.Final.Equal(got.Final))
		assert.True(t, want.Subtotal.Equal(got.Subtotal))
	}
}

func TestDecodeCart_ReconcilesAgainstCatalog(t *testing.T) {
	live := catalog.New([]catalog.Product{
		{ID: 1, Title: "Mango (new label)", Price: decimal.NewFromInt(200), Image: "new.jpg"},
	})
	raw := []byte(`{
		"1": {"qty": 2, "title": "Mango", "price": 180, "image": "old.jpg"},
		"42": {"qty": 1, "title": "Discontinued", "price": 12.5, "image": "gone.jpg"},
		"43": {"qty": 0, "title": "Zero", "price": 1, "image": ""},
		"abc": {"qty": 1, "title": "Bad key", "price": 1, "image": ""}
	}`)

	c, err := DecodeCart(raw, live)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	l, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Mango (new label)", l.Product.Title)
	assert.Equal(t, "200", l.Product.Price.String())

	l, ok = c.Get(42)
	require.True(t, ok)
	assert.Equal(t, "Discontinued", l.Product.Title)
	assert.Equal(t, "12.5", l.Product.Price.String())
	assert.Equal(t, "gone.jpg", l.Product.Image)
}

func TestLoadCart_Corrupt(t *testing.T) {
	ctx := context.Background()
	a, kv := newAdapter(t)
	require.NoError(t, kv.Set(ctx, KeyCart, "{not json"))

	c, err := a.LoadCart(ctx, catalog.New(catalog.Fallback()))
	assert.Error(t, err)
	assert.Zero(t, c.Len())
}

func TestLoadCart_Missing(t *testing.T) {
	a, _ := newAdapter(t)
	c, err := a.LoadCart(context.Background(), catalog.New(catalog.Fallback()))
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestNewsletterRoundTrip(t *testing.T) {
	ctx := context.Background()
	a, kv := newAdapter(t)

	list, err := a.LoadNewsletter(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, a.SaveNewsletter(ctx, []string{"a@b.co", "c@d.io"}))
	raw, _ := kv.Get(ctx, KeyNewsletter)
	var stored []string
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, []string{"a@b.co", "c@d.io"}, stored)

	list, err = a.LoadNewsletter(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, list)
}

type failingKV struct{ storage.KV }

func (failingKV) Set(context.Context, string, string) error { return errors.New("quota exceeded") }

func TestSaveErrorsAreWrapped(t *testing.T) {
	var buf bytes.Buffer
	a := New(failingKV{KV: memory.New()}, logger.New(&buf, logger.LevelInfo, "test", nil))

	err := a.SaveCart(context.Background(), cart.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save cart")
	assert.Contains(t, err.Error(), "quota exceeded")
}
