package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"storefront/pkg/cart"
	"storefront/pkg/ledger"
	"storefront/pkg/otel"
	"storefront/pkg/persist"
	"storefront/pkg/pricing"
)

// Receipt describes a completed purchase for display. It is not stored.
type Receipt struct {
	ID          string          `json:"id"`
	Lines       []cart.Line     `json:"lines"`
	Totals      pricing.Totals  `json:"totals"`
	Balance     decimal.Decimal `json:"balance"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

// Checkout pays for the cart. It is rejected with KindEmptyCart when there is
// nothing to pay and KindInsufficientBalance when the balance does not cover
// the final total; a rejected checkout leaves every piece of state as it
// was. On success the balance is debited, the cart and coupon are cleared and
// both balance and cart are written before the receipt is returned.
func (s *Store) Checkout(ctx context.Context) (Receipt, error) {
	ctx, span := otel.AddSpan(ctx, "storefront.Checkout")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.checkout(ctx)
	if err == nil {
		span.SetAttributes(attribute.String("receipt.id", r.ID), attribute.String("receipt.final", r.Totals.Final.String()))
	}
	s.finish(ctx, OpCheckout, err)
	return r, err
}

func (s *Store) checkout(ctx context.Context) (Receipt, error) {
	t := s.totals()
	if !t.Final.IsPositive() {
		return Receipt{}, newError(KindEmptyCart, ErrMsgCartEmpty)
	}
	if !s.ledger.CanAfford(t.Final) {
		return Receipt{}, newError(KindInsufficientBalance, ErrMsgInsufficientBalance)
	}

	lines := s.cart.Lines()
	if err := s.ledger.Debit(ctx, t.Final); err != nil {
		var perr *ledger.PersistError
		if !errors.As(err, &perr) {
			return Receipt{}, newError(KindInsufficientBalance, ErrMsgInsufficientBalance)
		}
		s.persistFailed(ctx, persist.KeyBalance, perr.Err)
	}
	s.cart.Clear()
	s.coupon = pricing.CouponState{}
	s.saveCart(ctx)

	r := Receipt{
		ID:          uuid.NewString(),
		Lines:       lines,
		Totals:      t,
		Balance:     s.ledger.Balance(),
		PurchasedAt: s.now(),
	}
	s.log.Info(ctx, "checkout committed",
		"receipt_id", r.ID,
		"final", t.Final.String(),
		"balance", r.Balance.String(),
	)
	return r, nil
}
