package fx

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is the single failure the gateway surfaces to callers:
// transport errors, non-success statuses, malformed bodies, non-positive
// rates and expired quotes all collapse into it once the resilience
// policy is exhausted.
var ErrUnavailable = errors.New("fx service unavailable")

var (
	ErrInvalidRate  = errors.New("invalid exchange rate")
	ErrExpiredQuote = errors.New("expired exchange rate quote")
)

// Quote is an ephemeral rate for a currency pair. ExpiresAt is zero when
// the upstream did not attach an expiry.
type Quote struct {
	Rate      decimal.Decimal
	ExpiresAt time.Time
}

// Validate rejects quotes that must never reach money movement: a
// non-positive rate, or an expiry not strictly in the future. An expiry
// equal to now counts as expired.
func (q Quote) Validate(now time.Time) error {
	if !q.Rate.IsPositive() {
		return ErrInvalidRate
	}
	if !q.ExpiresAt.IsZero() && !q.ExpiresAt.After(now) {
		return ErrExpiredQuote
	}
	return nil
}

type RateProvider interface {
	// ExchangeRate returns a strictly positive rate for the pair, or an
	// error wrapping ErrUnavailable. It never invents a fallback rate.
	ExchangeRate(ctx context.Context, sourceCurrency, targetCurrency string) (decimal.Decimal, error)

	// SupportedCurrencies returns the upstream-reported currency set.
	// When the upstream cannot be reached it returns an empty set, not
	// an error, so membership checks fail closed.
	SupportedCurrencies(ctx context.Context) ([]string, error)

	// IsCurrencySupported reports membership in the supported set. A
	// provider that cannot evaluate the check may return an error;
	// implementations backed by SupportedCurrencies fail closed instead.
	IsCurrencySupported(ctx context.Context, code string) (bool, error)
}
