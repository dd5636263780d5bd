package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/entity"
	"github.com/tbhalla11/CrossPaymentService/internal/domain/fx"
	"github.com/tbhalla11/CrossPaymentService/internal/domain/repository"
)

// ErrUnsupportedCurrency rejects a request before any record exists; it
// is not a FAILED payment.
var ErrUnsupportedCurrency = errors.New("currency not supported")

// displayScale is the external presentation precision of the payout.
const displayScale = 2

type Request struct {
	Sender              string
	Receiver            string
	Amount              decimal.Decimal
	SourceCurrency      string
	DestinationCurrency string
}

type Response struct {
	ID                  uuid.UUID
	Sender              string
	Receiver            string
	Amount              decimal.Decimal
	SourceCurrency      string
	DestinationCurrency string
	ExchangeRate        *decimal.Decimal
	PayoutAmount        *decimal.Decimal
	Status              entity.PaymentStatus
	Message             string
	CreatedAt           time.Time
	ProcessedAt         time.Time
}

type Filter struct {
	Status   entity.PaymentStatus
	Sender   string
	Receiver string
}

type UseCase struct {
	uow    repository.UnitOfWork
	fx     fx.RateProvider
	logger *slog.Logger
}

func NewUseCase(uow repository.UnitOfWork, provider fx.RateProvider, logger *slog.Logger) *UseCase {
	return &UseCase{uow: uow, fx: provider, logger: logger}
}

func (uc *UseCase) Process(ctx context.Context, req Request) (*Response, error) {
	supported, err := uc.fx.IsCurrencySupported(ctx, req.DestinationCurrency)
	if err != nil {
		// The provider fails closed, so an error here means the check
		// itself could not be evaluated, not "unsupported".
		return nil, fmt.Errorf("failed to validate supported currencies: %w", err)
	}
	if !supported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, req.DestinationCurrency)
	}

	payment, err := entity.NewPayment(req.Sender, req.Receiver, req.Amount, req.SourceCurrency, req.DestinationCurrency)
	if err != nil {
		return nil, err
	}

	// Durable checkpoint before the rate call: a crash past this point
	// leaves a traceable PENDING record, never a dropped request.
	payment, err = uc.uow.Payments().Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	rate, rateErr := uc.fx.ExchangeRate(ctx, req.SourceCurrency, req.DestinationCurrency)
	switch {
	case rateErr == nil:
		if err := payment.MarkSucceeded(rate); err != nil {
			return nil, err
		}
		uc.logger.Info("payment processed", "payment_id", payment.ID(), "rate", rate)
	case errors.Is(rateErr, fx.ErrUnavailable):
		if err := payment.MarkFailed(rateErr.Error()); err != nil {
			return nil, err
		}
		uc.logger.Error("payment failed", "payment_id", payment.ID(), "error", rateErr)
	default:
		return nil, rateErr
	}

	finalized, err := uc.finalize(ctx, payment)
	if err != nil {
		return nil, err
	}
	return mapResponse(finalized), nil
}

func (uc *UseCase) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	payment, err := uc.uow.Payments().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapResponse(payment), nil
}

// List serves the peripheral read paths; exactly one filter field is
// expected to be set.
func (uc *UseCase) List(ctx context.Context, f Filter) ([]*Response, error) {
	var (
		found []*entity.Payment
		err   error
	)
	switch {
	case f.Status != "":
		found, err = uc.uow.Payments().ListByStatus(ctx, f.Status)
	case f.Sender != "":
		found, err = uc.uow.Payments().ListBySender(ctx, f.Sender)
	case f.Receiver != "":
		found, err = uc.uow.Payments().ListByReceiver(ctx, f.Receiver)
	default:
		return nil, errors.New("a status, sender or receiver filter is required")
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*Response, 0, len(found))
	for _, p := range found {
		responses = append(responses, mapResponse(p))
	}
	return responses, nil
}

// finalize applies the terminal transition atomically.
func (uc *UseCase) finalize(ctx context.Context, p *entity.Payment) (*entity.Payment, error) {
	tx, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	updated, err := tx.Payments().Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func mapResponse(p *entity.Payment) *Response {
	return &Response{
		ID:                  p.ID(),
		Sender:              p.Sender(),
		Receiver:            p.Receiver(),
		Amount:              p.Amount(),
		SourceCurrency:      p.SourceCurrency(),
		DestinationCurrency: p.DestinationCurrency(),
		ExchangeRate:        p.ExchangeRate(),
		PayoutAmount:        displayPayout(p.PayoutAmount()),
		Status:              p.Status(),
		Message:             p.Message(),
		CreatedAt:           p.CreatedAt(),
		ProcessedAt:         p.ProcessedAt(),
	}
}

// displayPayout re-rounds the internally-scaled payout for presentation.
// A nil payout (pending or failed payment) passes through.
func displayPayout(payout *decimal.Decimal) *decimal.Decimal {
	if payout == nil {
		return nil
	}
	rounded := payout.Round(displayScale)
	return &rounded
}
