package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusSuccess   PaymentStatus = "SUCCESS"
	StatusFailed    PaymentStatus = "FAILED"
	StatusCancelled PaymentStatus = "CANCELLED"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidCurrency   = errors.New("currency code must be 3 uppercase letters")
	ErrBlankParty        = errors.New("sender and receiver must not be blank")
	ErrTerminalStatus    = errors.New("payment already in a terminal status")
)

// payoutScale is the internal precision of the converted amount; the
// presentation layer re-rounds to the currency's display precision.
const payoutScale = 4

const successMessage = "Payment processed successfully."

type Payment struct {
	id                  uuid.UUID
	sender              string
	receiver            string
	amount              decimal.Decimal
	sourceCurrency      string
	destinationCurrency string
	exchangeRate        *decimal.Decimal
	payoutAmount        *decimal.Decimal
	status              PaymentStatus
	message             string
	createdAt           time.Time
	processedAt         time.Time
}

func NewPayment(sender, receiver string, amount decimal.Decimal, sourceCurrency, destinationCurrency string) (*Payment, error) {
	if strings.TrimSpace(sender) == "" || strings.TrimSpace(receiver) == "" {
		return nil, ErrBlankParty
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if !isCurrencyCode(sourceCurrency) || !isCurrencyCode(destinationCurrency) {
		return nil, ErrInvalidCurrency
	}

	return &Payment{
		sender:              sender,
		receiver:            receiver,
		amount:              amount,
		sourceCurrency:      sourceCurrency,
		destinationCurrency: destinationCurrency,
		status:              StatusPending,
	}, nil
}

func ReconstructPayment(
	id uuid.UUID,
	sender, receiver string,
	amount decimal.Decimal,
	sourceCurrency, destinationCurrency string,
	exchangeRate, payoutAmount *decimal.Decimal,
	status PaymentStatus,
	message string,
	createdAt, processedAt time.Time,
) *Payment {
	return &Payment{
		id:                  id,
		sender:              sender,
		receiver:            receiver,
		amount:              amount,
		sourceCurrency:      sourceCurrency,
		destinationCurrency: destinationCurrency,
		exchangeRate:        exchangeRate,
		payoutAmount:        payoutAmount,
		status:              status,
		message:             message,
		createdAt:           createdAt,
		processedAt:         processedAt,
	}
}

// MarkSucceeded records the applied rate and the converted payout,
// rounded half-up to the internal payout precision.
func (p *Payment) MarkSucceeded(rate decimal.Decimal) error {
	if p.status != StatusPending {
		return ErrTerminalStatus
	}
	payout := p.amount.Mul(rate).Round(payoutScale)
	p.exchangeRate = &rate
	p.payoutAmount = &payout
	p.message = successMessage
	p.status = StatusSuccess
	return nil
}

// MarkFailed finalizes the payment without a rate or payout; reason
// becomes the client-visible message.
func (p *Payment) MarkFailed(reason string) error {
	if p.status != StatusPending {
		return ErrTerminalStatus
	}
	p.message = reason
	p.status = StatusFailed
	return nil
}

func (p *Payment) ID() uuid.UUID {
	return p.id
}

func (p *Payment) Sender() string {
	return p.sender
}

func (p *Payment) Receiver() string {
	return p.receiver
}

func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

func (p *Payment) SourceCurrency() string {
	return p.sourceCurrency
}

func (p *Payment) DestinationCurrency() string {
	return p.destinationCurrency
}

func (p *Payment) ExchangeRate() *decimal.Decimal {
	return p.exchangeRate
}

func (p *Payment) PayoutAmount() *decimal.Decimal {
	return p.payoutAmount
}

func (p *Payment) Status() PaymentStatus {
	return p.status
}

func (p *Payment) Message() string {
	return p.message
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Payment) ProcessedAt() time.Time {
	return p.processedAt
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
