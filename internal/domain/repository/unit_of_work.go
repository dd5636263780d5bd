package repository

import "context"

// UnitOfWork scopes repository access to a transaction. The pool-level
// instance commits each write on its own; Begin returns a transactional
// instance whose writes apply atomically on Commit. The pending
// checkpoint uses the former, finalization the latter.
type UnitOfWork interface {
	Begin(ctx context.Context) (UnitOfWork, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	Payments() PaymentRepository
}
