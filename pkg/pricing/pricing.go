// Package pricing turns a cart and coupon state into a totals breakdown.
package pricing

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/pkg/cart"
	"storefront/pkg/money"
)

// Coupon is the single recognized discount code.
type Coupon struct {
	Code    string
	Percent decimal.Decimal
}

// Matches reports whether input, trimmed and upper-cased, is this coupon.
func (c Coupon) Matches(input string) bool {
	return c.Code != "" && NormalizeCode(input) == strings.ToUpper(c.Code)
}

// NormalizeCode trims and upper-cases a user-entered code.
func NormalizeCode(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// CouponState records whether the coupon is applied to the current cart.
type CouponState struct {
	Applied bool
}

// Config holds the fixed fees and the coupon.
type Config struct {
	DeliveryFee decimal.Decimal
	ShippingFee decimal.Decimal
	Coupon      Coupon
}

// DefaultConfig mirrors the storefront's published fees: 50 delivery, 30
// shipping and SMART10 for 10% off.
func DefaultConfig() Config {
	return Config{
		DeliveryFee: decimal.NewFromInt(50),
		ShippingFee: decimal.NewFromInt(30),
		Coupon:      Coupon{Code: "SMART10", Percent: decimal.NewFromInt(10)},
	}
}

// Validate rejects configurations under which Final could go negative.
func (c Config) Validate() error {
	if c.DeliveryFee.IsNegative() || c.ShippingFee.IsNegative() {
		return errors.New("fees must not be negative")
	}
	if c.Coupon.Percent.IsNegative() || c.Coupon.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.Errorf("coupon percent must be within 0-100, got %s", c.Coupon.Percent)
	}
	return nil
}

// Totals is the derived breakdown for a cart. It is never stored.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Delivery decimal.Decimal `json:"delivery"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Final    decimal.Decimal `json:"final"`
}

// Engine prices carts under a fixed Config.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine for cfg.
func NewEngine(cfg Config) Engine {
	return Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e Engine) Config() Config {
	return e.cfg
}

// Calculate prices c. Delivery and shipping only apply when the cart has at
// least one line and a positive subtotal, so a cart of free items costs
// nothing. Final is not clamped at zero.
func (e Engine) Calculate(c *cart.Cart, coupon CouponState) Totals {
	subtotal := decimal.Zero
	for _, l := range c.Lines() {
		subtotal = subtotal.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	subtotal = money.Round2(subtotal)

	hasItems := c.Len() > 0 && subtotal.IsPositive()
	delivery, shipping := decimal.Zero, decimal.Zero
	if hasItems {
		delivery = e.cfg.DeliveryFee
		shipping = e.cfg.ShippingFee
	}

	discount := decimal.Zero
	if coupon.Applied {
		discount = money.Round2(subtotal.Mul(e.cfg.Coupon.Percent).Div(decimal.NewFromInt(100)))
	}

	return Totals{
		Subtotal: subtotal,
		Delivery: delivery,
		Shipping: shipping,
		Discount: discount,
		Final:    money.Round2(subtotal.Add(delivery).Add(shipping).Sub(discount)),
	}
}
