package fx_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/fx"
)

func TestQuote_Validate(t *testing.T) {
	now := time.Date(2026, time.January, 20, 20, 18, 42, 0, time.UTC)

	tests := []struct {
		name    string
		quote   fx.Quote
		wantErr error
	}{
		{
			name:  "positive rate without expiry",
			quote: fx.Quote{Rate: decimal.RequireFromString("0.9164")},
		},
		{
			name: "positive rate with future expiry",
			quote: fx.Quote{
				Rate:      decimal.RequireFromString("0.9164"),
				ExpiresAt: now.Add(time.Minute),
			},
		},
		{
			name:    "zero rate",
			quote:   fx.Quote{Rate: decimal.Zero},
			wantErr: fx.ErrInvalidRate,
		},
		{
			name:    "negative rate",
			quote:   fx.Quote{Rate: decimal.RequireFromString("-0.5")},
			wantErr: fx.ErrInvalidRate,
		},
		{
			name: "expired quote",
			quote: fx.Quote{
				Rate:      decimal.RequireFromString("0.9164"),
				ExpiresAt: now.Add(-time.Second),
			},
			wantErr: fx.ErrExpiredQuote,
		},
		{
			name: "expiry exactly now counts as expired",
			quote: fx.Quote{
				Rate:      decimal.RequireFromString("0.9164"),
				ExpiresAt: now,
			},
			wantErr: fx.ErrExpiredQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.quote.Validate(now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
