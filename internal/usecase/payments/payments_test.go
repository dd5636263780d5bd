package payments_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/entity"
	"github.com/tbhalla11/CrossPaymentService/internal/domain/fx"
	"github.com/tbhalla11/CrossPaymentService/internal/domain/repository"
	"github.com/tbhalla11/CrossPaymentService/internal/usecase/payments"
	"github.com/tbhalla11/CrossPaymentService/internal/usecase/payments/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingPayment(t *testing.T, id uuid.UUID, amount string) *entity.Payment {
	t.Helper()
	created := time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)
	return entity.ReconstructPayment(
		id, "Bob Doe", "John Wick", decimal.RequireFromString(amount),
		"USD", "EUR", nil, nil, entity.StatusPending, "", created, created,
	)
}

func TestProcess_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	txUow := mocks.NewMockUnitOfWork(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	paymentID := uuid.New()
	rate := decimal.RequireFromString("0.8765432")

	provider.EXPECT().IsCurrencySupported(gomock.Any(), "EUR").Return(true, nil)

	uow.EXPECT().Payments().Return(paymentRepo)
	paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *entity.Payment) (*entity.Payment, error) {
			assert.Equal(t, entity.StatusPending, p.Status())
			return pendingPayment(t, paymentID, "100.00"), nil
		})

	provider.EXPECT().ExchangeRate(gomock.Any(), "USD", "EUR").Return(rate, nil)

	uow.EXPECT().Begin(gomock.Any()).Return(txUow, nil)
	txUow.EXPECT().Rollback(gomock.Any()).Return(nil)
	txUow.EXPECT().Payments().Return(paymentRepo)
	paymentRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *entity.Payment) (*entity.Payment, error) {
			assert.Equal(t, entity.StatusSuccess, p.Status())
			return p, nil
		})
	txUow.EXPECT().Commit(gomock.Any()).Return(nil)

	resp, err := uc.Process(context.Background(), payments.Request{
		Sender:              "Bob Doe",
		Receiver:            "John Wick",
		Amount:              decimal.RequireFromString("100.00"),
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, paymentID, resp.ID)
	assert.Equal(t, entity.StatusSuccess, resp.Status)
	require.NotNil(t, resp.ExchangeRate)
	assert.True(t, resp.ExchangeRate.Equal(rate))
	require.NotNil(t, resp.PayoutAmount)
	// presentation boundary re-rounds the 4-place payout to 2 places
	assert.True(t, resp.PayoutAmount.Equal(decimal.RequireFromString("87.65")),
		"got %s", resp.PayoutAmount)
	assert.NotEmpty(t, resp.Message)
}

func TestProcess_FXUnavailableFinalizesAsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	txUow := mocks.NewMockUnitOfWork(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	paymentID := uuid.New()
	fxErr := fmt.Errorf("%w: cannot retrieve exchange rate from USD to EUR", fx.ErrUnavailable)

	provider.EXPECT().IsCurrencySupported(gomock.Any(), "EUR").Return(true, nil)

	uow.EXPECT().Payments().Return(paymentRepo)
	paymentRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(pendingPayment(t, paymentID, "250.00"), nil)

	provider.EXPECT().ExchangeRate(gomock.Any(), "USD", "EUR").Return(decimal.Decimal{}, fxErr)

	uow.EXPECT().Begin(gomock.Any()).Return(txUow, nil)
	txUow.EXPECT().Rollback(gomock.Any()).Return(nil)
	txUow.EXPECT().Payments().Return(paymentRepo)
	paymentRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *entity.Payment) (*entity.Payment, error) {
			assert.Equal(t, entity.StatusFailed, p.Status())
			assert.Nil(t, p.ExchangeRate())
			assert.Nil(t, p.PayoutAmount())
			return p, nil
		})
	txUow.EXPECT().Commit(gomock.Any()).Return(nil)

	resp, err := uc.Process(context.Background(), payments.Request{
		Sender:              "Bob Doe",
		Receiver:            "John Wick",
		Amount:              decimal.RequireFromString("250.00"),
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
	})

	require.NoError(t, err, "an fx failure must still produce a persisted payment")
	assert.Equal(t, entity.StatusFailed, resp.Status)
	assert.Nil(t, resp.ExchangeRate)
	assert.Nil(t, resp.PayoutAmount)
	assert.Contains(t, resp.Message, "fx service unavailable")
}

func TestProcess_UnsupportedCurrencyCreatesNoRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	provider.EXPECT().IsCurrencySupported(gomock.Any(), "XXX").Return(false, nil)

	_, err := uc.Process(context.Background(), payments.Request{
		Sender:              "Bob Doe",
		Receiver:            "John Wick",
		Amount:              decimal.RequireFromString("100.00"),
		SourceCurrency:      "USD",
		DestinationCurrency: "XXX",
	})

	assert.ErrorIs(t, err, payments.ErrUnsupportedCurrency)
}

func TestProcess_SupportCheckErrorIsNotUnsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	provider.EXPECT().IsCurrencySupported(gomock.Any(), "EUR").
		Return(false, errors.New("support check could not be evaluated"))

	_, err := uc.Process(context.Background(), payments.Request{
		Sender:              "Bob Doe",
		Receiver:            "John Wick",
		Amount:              decimal.RequireFromString("100.00"),
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, payments.ErrUnsupportedCurrency)
	assert.Contains(t, err.Error(), "failed to validate supported currencies")
}

func TestProcess_InvalidRequestRejectedBeforePersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	provider.EXPECT().IsCurrencySupported(gomock.Any(), "EUR").Return(true, nil)

	_, err := uc.Process(context.Background(), payments.Request{
		Sender:              "Bob Doe",
		Receiver:            "John Wick",
		Amount:              decimal.Zero,
		SourceCurrency:      "USD",
		DestinationCurrency: "EUR",
	})

	assert.ErrorIs(t, err, entity.ErrNonPositiveAmount)
}

func TestGetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	paymentID := uuid.New()
	rate := decimal.RequireFromString("0.85")
	payout := decimal.RequireFromString("85.0000")
	created := time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)
	stored := entity.ReconstructPayment(
		paymentID, "Bob Doe", "John Wick", decimal.RequireFromString("100.00"),
		"USD", "EUR", &rate, &payout, entity.StatusSuccess,
		"Payment processed successfully.", created, created.Add(time.Second),
	)

	uow.EXPECT().Payments().Return(paymentRepo).Times(2)
	paymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).Return(stored, nil).Times(2)

	// read-only: repeated lookups return the identical view
	for range 2 {
		resp, err := uc.GetByID(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, paymentID, resp.ID)
		assert.Equal(t, entity.StatusSuccess, resp.Status)
		assert.True(t, resp.ExchangeRate.Equal(rate))
		assert.True(t, resp.PayoutAmount.Equal(decimal.RequireFromString("85.00")))
	}
}

func TestGetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	paymentID := uuid.New()
	uow.EXPECT().Payments().Return(paymentRepo)
	paymentRepo.EXPECT().FindByID(gomock.Any(), paymentID).Return(nil, repository.ErrNotFound)

	_, err := uc.GetByID(context.Background(), paymentID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestList_ByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	uow.EXPECT().Payments().Return(paymentRepo)
	paymentRepo.EXPECT().ListByStatus(gomock.Any(), entity.StatusPending).
		Return([]*entity.Payment{pendingPayment(t, uuid.New(), "10.00")}, nil)

	responses, err := uc.List(context.Background(), payments.Filter{Status: entity.StatusPending})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, entity.StatusPending, responses[0].Status)
	assert.Nil(t, responses[0].PayoutAmount)
}

func TestList_RequiresFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uow := mocks.NewMockUnitOfWork(ctrl)
	provider := mocks.NewMockRateProvider(ctrl)

	uc := payments.NewUseCase(uow, provider, testLogger())

	_, err := uc.List(context.Background(), payments.Filter{})
	assert.Error(t, err)
}
