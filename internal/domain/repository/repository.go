package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/entity"
)

var ErrNotFound = errors.New("not found")

// PaymentRepository persists payments. Create assigns identity and both
// timestamps; Update refreshes processedAt. Both return the persisted
// view rather than mutating the argument in place.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) (*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) (*entity.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	ListByStatus(ctx context.Context, status entity.PaymentStatus) ([]*entity.Payment, error)
	ListBySender(ctx context.Context, sender string) ([]*entity.Payment, error)
	ListByReceiver(ctx context.Context, receiver string) ([]*entity.Payment, error)
}
