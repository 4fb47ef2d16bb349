package storefront

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/pkg/money"
)

// Op names a storefront operation for notifications and metrics.
type Op string

const (
	OpAddToCart      Op = "add_to_cart"
	OpRemoveFromCart Op = "remove_from_cart"
	OpChangeQty      Op = "change_qty"
	OpApplyCoupon    Op = "apply_coupon"
	OpClearCoupon    Op = "clear_coupon"
	OpCreditBalance  Op = "credit_balance"
	OpCheckout       Op = "checkout"
	OpSubscribe      Op = "subscribe"
)

// Notification is the transient message shown after an operation.
type Notification struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

// Notify builds the message for the outcome of op. Rejections carry their
// own text; successes use a fixed message per operation.
func (s *Store) Notify(op Op, err error) Notification {
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return Notification{Text: e.Message, IsError: true}
		}
		return Notification{Text: err.Error(), IsError: true}
	}
	switch op {
	case OpAddToCart:
		return Notification{Text: "Added to cart"}
	case OpRemoveFromCart:
		return Notification{Text: "Removed from cart"}
	case OpChangeQty:
		return Notification{Text: "Cart updated"}
	case OpApplyCoupon:
		cp := s.cfg.Pricing.Coupon
		return Notification{Text: fmt.Sprintf("Applied %s (%s%% off)", cp.Code, cp.Percent.String())}
	case OpClearCoupon:
		return Notification{Text: "Coupon removed"}
	case OpCheckout:
		return Notification{Text: "Purchase successful — thank you!"}
	case OpSubscribe:
		return Notification{Text: "Subscribed — thank you!"}
	default:
		return Notification{Text: "Done"}
	}
}

// CreditNotice is the message shown after a successful top-up.
func (s *Store) CreditNotice(amount decimal.Decimal) Notification {
	return Notification{Text: fmt.Sprintf("Balance increased by %s %s", money.Format(amount), s.cfg.Currency)}
}
