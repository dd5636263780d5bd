package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tbhalla11/CrossPaymentService/internal/domain/entity"
	"github.com/tbhalla11/CrossPaymentService/internal/domain/repository"
)

type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &UnitOfWork{pool: u.pool, tx: tx}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) Payments() repository.PaymentRepository {
	return &PaymentRepo{q: u.querier()}
}

func (u *UnitOfWork) querier() querier {
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx, so the same
// repository serves pool-level and transactional writes.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PaymentRepo struct {
	q querier
}

const paymentColumns = `id, sender, receiver, amount, source_currency, destination_currency,
	 exchange_rate, payout_amount, status, message, created_at, processed_at`

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) (*entity.Payment, error) {
	// Identity and timestamps are assigned here, not by the entity.
	id := uuid.New()
	now := time.Now().UTC()

	_, err := r.q.Exec(ctx,
		`INSERT INTO payments (`+paymentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id, p.Sender(), p.Receiver(), p.Amount(), p.SourceCurrency(), p.DestinationCurrency(),
		nullable(p.ExchangeRate()), nullable(p.PayoutAmount()), string(p.Status()), p.Message(), now, now,
	)
	if err != nil {
		return nil, err
	}

	return entity.ReconstructPayment(
		id, p.Sender(), p.Receiver(), p.Amount(), p.SourceCurrency(), p.DestinationCurrency(),
		p.ExchangeRate(), p.PayoutAmount(), p.Status(), p.Message(), now, now,
	), nil
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) (*entity.Payment, error) {
	now := time.Now().UTC()

	tag, err := r.q.Exec(ctx,
		`UPDATE payments
		 SET exchange_rate = $1, payout_amount = $2, status = $3, message = $4, processed_at = $5
		 WHERE id = $6`,
		nullable(p.ExchangeRate()), nullable(p.PayoutAmount()), string(p.Status()), p.Message(), now, p.ID(),
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}

	return entity.ReconstructPayment(
		p.ID(), p.Sender(), p.Receiver(), p.Amount(), p.SourceCurrency(), p.DestinationCurrency(),
		p.ExchangeRate(), p.PayoutAmount(), p.Status(), p.Message(), p.CreatedAt(), now,
	), nil
}

func (r *PaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	row := r.q.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)

	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepo) ListByStatus(ctx context.Context, status entity.PaymentStatus) ([]*entity.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *PaymentRepo) ListBySender(ctx context.Context, sender string) ([]*entity.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE sender = $1 ORDER BY created_at`, sender)
}

func (r *PaymentRepo) ListByReceiver(ctx context.Context, receiver string) ([]*entity.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE receiver = $1 ORDER BY created_at`, receiver)
}

func (r *PaymentRepo) list(ctx context.Context, sql string, arg any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var (
		id                   uuid.UUID
		sender, receiver     string
		amount               decimal.Decimal
		srcCurrency          string
		dstCurrency          string
		rate, payout         decimal.NullDecimal
		status, message      string
		createdAt, processed time.Time
	)

	err := row.Scan(&id, &sender, &receiver, &amount, &srcCurrency, &dstCurrency,
		&rate, &payout, &status, &message, &createdAt, &processed)
	if err != nil {
		return nil, err
	}

	return entity.ReconstructPayment(
		id, sender, receiver, amount, srcCurrency, dstCurrency,
		fromNull(rate), fromNull(payout), entity.PaymentStatus(status), message, createdAt, processed,
	), nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNull(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
