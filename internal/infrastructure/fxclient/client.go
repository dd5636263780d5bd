package fxclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/fx"
	"github.com/tbhalla11/CrossPaymentService/internal/infrastructure/config"
)

const (
	quotePath      = "/twirp/payments.v1.FXService/GetQuote"
	currenciesPath = "/twirp/payments.v1.FXService/GetSupportedCurrencies"
)

// Client talks to the upstream FX service over twirp-style JSON. Each
// logical operation runs behind its own circuit breaker wrapping a
// bounded retry; callers only ever see fx.ErrUnavailable, never
// transport detail.
type Client struct {
	httpClient *http.Client
	baseURL    string
	policy     config.FXPolicy
	logger     *slog.Logger

	rateBreaker       *gobreaker.CircuitBreaker[decimal.Decimal]
	currenciesBreaker *gobreaker.CircuitBreaker[[]string]
}

func NewClient(baseURL string, policy config.FXPolicy, logger *slog.Logger) *Client {
	return &Client{
		httpClient:        &http.Client{Timeout: policy.AttemptTimeout},
		baseURL:           baseURL,
		policy:            policy,
		logger:            logger,
		rateBreaker:       gobreaker.NewCircuitBreaker[decimal.Decimal](breakerSettings("fx-rate", policy, logger)),
		currenciesBreaker: gobreaker.NewCircuitBreaker[[]string](breakerSettings("fx-currencies", policy, logger)),
	}
}

func breakerSettings(name string, policy config.FXPolicy, logger *slog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: policy.BreakerHalfOpen,
		Timeout:     policy.BreakerCooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= policy.BreakerMinCalls &&
				float64(c.TotalFailures)/float64(c.Requests) >= policy.BreakerRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("fx circuit state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
}

type quoteRequest struct {
	SourceCurrency string `json:"source_currency"`
	TargetCurrency string `json:"target_currency"`
}

type quoteResponse struct {
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	ExpiryTime   string          `json:"expiry_time"`
}

type currenciesResponse struct {
	Currencies []string `json:"currencies"`
}

func (c *Client) ExchangeRate(ctx context.Context, sourceCurrency, targetCurrency string) (decimal.Decimal, error) {
	rate, err := c.rateBreaker.Execute(func() (decimal.Decimal, error) {
		return retry(ctx, c.policy, c.logger, func() (decimal.Decimal, error) {
			return c.fetchRate(ctx, sourceCurrency, targetCurrency)
		})
	})
	if err != nil {
		c.logger.Error("fx rate lookup failed",
			"source", sourceCurrency, "target", targetCurrency, "error", err)
		// No synthetic fallback rate: a wrong rate is worse than a
		// failed payment.
		return decimal.Decimal{}, fmt.Errorf(
			"%w: cannot retrieve exchange rate from %s to %s: %v",
			fx.ErrUnavailable, sourceCurrency, targetCurrency, err)
	}
	return rate, nil
}

func (c *Client) SupportedCurrencies(ctx context.Context) ([]string, error) {
	currencies, err := c.currenciesBreaker.Execute(func() ([]string, error) {
		return retry(ctx, c.policy, c.logger, func() ([]string, error) {
			return c.fetchCurrencies(ctx)
		})
	})
	if err != nil {
		// Fail closed: an empty set makes every membership check false.
		c.logger.Error("fx supported currencies lookup failed", "error", err)
		return []string{}, nil
	}
	return currencies, nil
}

func (c *Client) IsCurrencySupported(ctx context.Context, code string) (bool, error) {
	currencies, err := c.SupportedCurrencies(ctx)
	if err != nil {
		return false, nil
	}
	return slices.Contains(currencies, code), nil
}

func (c *Client) fetchRate(ctx context.Context, sourceCurrency, targetCurrency string) (decimal.Decimal, error) {
	var resp quoteResponse
	err := c.post(ctx, quotePath, quoteRequest{
		SourceCurrency: sourceCurrency,
		TargetCurrency: targetCurrency,
	}, &resp)
	if err != nil {
		return decimal.Decimal{}, err
	}

	quote := fx.Quote{Rate: resp.ExchangeRate}
	if resp.ExpiryTime != "" {
		expiry, parseErr := time.Parse(time.RFC3339, resp.ExpiryTime)
		if parseErr != nil {
			return decimal.Decimal{}, fmt.Errorf("malformed expiry time %q: %w", resp.ExpiryTime, parseErr)
		}
		quote.ExpiresAt = expiry
	}

	// A bad rate on a 200 response counts as a failure for the retry
	// and breaker accounting, same as a transport error.
	if validErr := quote.Validate(time.Now()); validErr != nil {
		return decimal.Decimal{}, validErr
	}
	return quote.Rate, nil
}

func (c *Client) fetchCurrencies(ctx context.Context) ([]string, error) {
	var resp currenciesResponse
	if err := c.post(ctx, currenciesPath, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Currencies, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fx service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("fx service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed fx service response: %w", err)
	}
	return nil
}

func retry[T any](ctx context.Context, policy config.FXPolicy, logger *slog.Logger, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(policy.RetryInterval)),
		backoff.WithMaxTries(policy.RetryMaxTries),
		backoff.WithNotify(func(err error, d time.Duration) {
			logger.Warn("fx call retrying", "error", err, "next_attempt_in", d)
		}),
	)
}
