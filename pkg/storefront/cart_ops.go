package storefront

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/otel"
	"storefront/pkg/pricing"
)

// AddToCart adds qty units of product id, merging with an existing line. The
// resulting cart is priced first and the change is rejected with
// KindInsufficientBalance if the final total would exceed the balance.
func (s *Store) AddToCart(ctx context.Context, id catalog.ProductID, qty int) error {
	ctx, span := otel.AddSpan(ctx, "storefront.AddToCart",
		attribute.Int("product.id", int(id)), attribute.Int("qty", qty))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.addToCart(ctx, id, qty)
	s.finish(ctx, OpAddToCart, err)
	return err
}

func (s *Store) addToCart(ctx context.Context, id catalog.ProductID, qty int) error {
	if qty <= 0 {
		return newError(KindInvalidQuantity, ErrMsgQuantityPositive)
	}
	p, ok := s.catalog.Lookup(id)
	if !ok {
		return newError(KindProductNotFound, ErrMsgProductNotFound)
	}
	if qty > math.MaxInt-s.cart.Qty(id) {
		return newError(KindInvalidQuantity, ErrMsgQuantityTooLarge)
	}

	next, _, ok := s.tryApply(func(c *cart.Cart) {
		c.Set(p, c.Qty(id)+qty)
	})
	if !ok {
		return newError(KindInsufficientBalance, ErrMsgExceedsBalance)
	}
	s.cart = next
	s.saveCart(ctx)
	return nil
}

// tryApply runs mutate on a copy of the cart and returns the copy only when
// its final total fits within the balance. The live cart is never touched.
func (s *Store) tryApply(mutate func(c *cart.Cart)) (*cart.Cart, pricing.Totals, bool) {
	next := s.cart.Clone()
	mutate(next)
	t := s.engine.Calculate(next, s.coupon)
	if !s.ledger.CanAfford(t.Final) {
		return nil, t, false
	}
	return next, t, true
}

// RemoveFromCart deletes the line for id. Removing an absent id does nothing.
func (s *Store) RemoveFromCart(ctx context.Context, id catalog.ProductID) error {
	ctx, span := otel.AddSpan(ctx, "storefront.RemoveFromCart", attribute.Int("product.id", int(id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeFromCart(ctx, id)
	s.finish(ctx, OpRemoveFromCart, nil)
	return nil
}

func (s *Store) removeFromCart(ctx context.Context, id catalog.ProductID) {
	s.cart.Remove(id)
	s.saveCart(ctx)
}

// ChangeQty sets the quantity of an existing line; qty <= 0 removes it and an
// absent id is ignored. If the new quantity puts the total over the balance,
// the quantity is lowered by a single unit (never below 1), that state is
// kept, and KindInsufficientBalance is returned. Only one unit is reverted no
// matter how far over the balance the change went.
func (s *Store) ChangeQty(ctx context.Context, id catalog.ProductID, qty int) error {
	ctx, span := otel.AddSpan(ctx, "storefront.ChangeQty",
		attribute.Int("product.id", int(id)), attribute.Int("qty", qty))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.changeQty(ctx, id, qty)
	s.finish(ctx, OpChangeQty, err)
	return err
}

func (s *Store) changeQty(ctx context.Context, id catalog.ProductID, qty int) error {
	if _, ok := s.cart.Get(id); !ok {
		return nil
	}
	if qty <= 0 {
		s.removeFromCart(ctx, id)
		return nil
	}

	var err error
	s.cart.SetQty(id, qty)
	if !s.ledger.CanAfford(s.totals().Final) {
		s.cart.SetQty(id, max(1, qty-1))
		err = newError(KindInsufficientBalance, ErrMsgQtyExceedsBalance)
	}
	s.saveCart(ctx)
	return err
}

// ChangeQtyInput applies a quantity typed by the user. Input that does not
// start with an integer counts as 0, which removes the line, and is reported
// as KindInvalidQuantity.
func (s *Store) ChangeQtyInput(ctx context.Context, id catalog.ProductID, raw string) error {
	qty, ok := ParseQty(raw)
	if ok {
		return s.ChangeQty(ctx, id, qty)
	}

	ctx, span := otel.AddSpan(ctx, "storefront.ChangeQtyInput", attribute.Int("product.id", int(id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.changeQty(ctx, id, 0)
	err := newErrorf(KindInvalidQuantity, "%s: %q", ErrMsgInvalidQuantity, raw)
	s.finish(ctx, OpChangeQty, err)
	return err
}

// ParseQty reads the leading integer of s the way a browser's parseInt does:
// "3" and "3 pcs" give 3, "-1" gives -1, "" and "abc" fail. Digit runs past
// the int range saturate to math.MaxInt or math.MinInt.
func ParseQty(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	switch {
	case err == nil:
		return n, true
	case errors.Is(err, strconv.ErrRange) && s[0] == '-':
		return math.MinInt, true
	case errors.Is(err, strconv.ErrRange):
		return math.MaxInt, true
	default:
		return 0, false
	}
}
