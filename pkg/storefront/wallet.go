package storefront

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"storefront/pkg/ledger"
	"storefront/pkg/otel"
	"storefront/pkg/persist"
	"storefront/pkg/pricing"
)

// CreditBalance adds amount to the balance. A failed write is logged and the
// credit stands.
func (s *Store) CreditBalance(ctx context.Context, amount decimal.Decimal) error {
	ctx, span := otel.AddSpan(ctx, "storefront.CreditBalance", attribute.String("amount", amount.String()))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.credit(ctx, amount)
	s.finish(ctx, OpCreditBalance, err)
	return err
}

// TopUp credits the configured top-up amount and returns it.
func (s *Store) TopUp(ctx context.Context) (decimal.Decimal, error) {
	return s.cfg.TopUpAmount, s.CreditBalance(ctx, s.cfg.TopUpAmount)
}

func (s *Store) credit(ctx context.Context, amount decimal.Decimal) error {
	err := s.ledger.Credit(ctx, amount)
	var perr *ledger.PersistError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &perr):
		s.persistFailed(ctx, persist.KeyBalance, perr.Err)
		return nil
	case errors.Is(err, ledger.ErrInvalidAmount):
		return newError(KindInvalidAmount, ErrMsgInvalidAmount)
	default:
		return err
	}
}

// ApplyCoupon applies code if it is the configured coupon. An empty or
// unknown code clears any applied coupon and is reported as
// KindCouponRequired or KindInvalidCoupon.
func (s *Store) ApplyCoupon(ctx context.Context, code string) error {
	ctx, span := otel.AddSpan(ctx, "storefront.ApplyCoupon")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch {
	case pricing.NormalizeCode(code) == "":
		s.coupon.Applied = false
		err = newError(KindCouponRequired, ErrMsgCouponRequired)
	case s.cfg.Pricing.Coupon.Matches(code):
		s.coupon.Applied = true
	default:
		s.coupon.Applied = false
		err = newError(KindInvalidCoupon, ErrMsgInvalidCoupon)
	}
	s.finish(ctx, OpApplyCoupon, err)
	return err
}

// ClearCoupon removes the coupon from the cart.
func (s *Store) ClearCoupon(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupon.Applied = false
	s.finish(ctx, OpClearCoupon, nil)
}
