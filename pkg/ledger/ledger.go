// Package ledger tracks the spendable wallet balance. Every change is written
// through to a BalanceStore before the call returns.
package ledger

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"storefront/pkg/money"
)

var (
	// ErrInvalidAmount is returned for non-positive credits and debits.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// BalanceStore persists the balance.
type BalanceStore interface {
	SaveBalance(ctx context.Context, balance decimal.Decimal) error
}

// PersistError reports that the in-memory balance changed but could not be
// written. The change is kept.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string { return "persist balance: " + e.Err.Error() }

func (e *PersistError) Unwrap() error { return e.Err }

// Ledger holds a single balance. It is not safe for concurrent use; the
// storefront serializes access.
type Ledger struct {
	balance decimal.Decimal
	store   BalanceStore
}

// New returns a ledger starting at balance.
func New(balance decimal.Decimal, store BalanceStore) *Ledger {
	return &Ledger{balance: balance, store: store}
}

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// CanAfford reports whether amount fits within the balance.
func (l *Ledger) CanAfford(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(l.balance)
}

// Credit adds amount. There is no upper bound.
func (l *Ledger) Credit(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	l.balance = money.Round2(l.balance.Add(amount))
	return l.save(ctx)
}

// Debit subtracts amount. Callers check CanAfford first; Debit refuses to go
// negative regardless.
func (l *Ledger) Debit(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !l.CanAfford(amount) {
		return ErrInsufficientFunds
	}
	l.balance = money.Round2(l.balance.Sub(amount))
	return l.save(ctx)
}

func (l *Ledger) save(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.SaveBalance(ctx, l.balance); err != nil {
		return &PersistError{Err: err}
	}
	return nil
}
