package storefront

import (
	"errors"
	"fmt"
)

// ErrorKind classifies storefront failures so callers can pick a message and
// a style without parsing text.
type ErrorKind int

const (
	KindProductNotFound ErrorKind = iota
	KindInsufficientBalance
	KindEmptyCart
	KindInvalidQuantity
	KindPersistenceWriteFailure
	KindCatalogFetchFailure
	KindInvalidCoupon
	KindCouponRequired
	KindInvalidAmount
	KindInvalidEmail
)

// Error message constants.
const (
	ErrMsgProductNotFound     = "Product not found"
	ErrMsgExceedsBalance      = "Cannot add — would exceed balance"
	ErrMsgQtyExceedsBalance   = "Quantity exceeds balance — reverted"
	ErrMsgInsufficientBalance = "Insufficient balance"
	ErrMsgCartEmpty           = "Cart is empty"
	ErrMsgInvalidQuantity     = "Quantity must be a whole number"
	ErrMsgQuantityPositive    = "Quantity must be positive"
	ErrMsgQuantityTooLarge    = "Quantity is too large"
	ErrMsgPersistence         = "Could not save state"
	ErrMsgCatalogFetch        = "Product fetch failed — using fallback"
	ErrMsgInvalidCoupon       = "Invalid coupon"
	ErrMsgCouponRequired      = "Enter a coupon code"
	ErrMsgInvalidAmount       = "Amount must be positive"
	ErrMsgInvalidEmail        = "Enter a valid email"
)

func (k ErrorKind) String() string {
	switch k {
	case KindProductNotFound:
		return "product_not_found"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindEmptyCart:
		return "empty_cart"
	case KindInvalidQuantity:
		return "invalid_quantity"
	case KindPersistenceWriteFailure:
		return "persistence_write_failure"
	case KindCatalogFetchFailure:
		return "catalog_fetch_failure"
	case KindInvalidCoupon:
		return "invalid_coupon"
	case KindCouponRequired:
		return "coupon_required"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInvalidEmail:
		return "invalid_email"
	default:
		return "unknown"
	}
}

// Error is the typed result of a rejected or degraded operation.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind, so errors.Is(err,
// &Error{Kind: KindEmptyCart}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func newErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err and whether err is a storefront *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a storefront *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if k, ok := KindOf(err); ok {
		return k.String()
	}
	return "error"
}
