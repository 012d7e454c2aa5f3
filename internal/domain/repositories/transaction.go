package repositories

import "context"

// TxFn is a function that runs within a transaction scope.
type TxFn func(ctx context.Context) error

// TransactionManager binds repository calls into one atomic commit/rollback
// boundary. All repository calls made with the context passed to fn share a
// single transaction; fn returning nil commits, any error rolls back and is
// returned unchanged. Opening a scope while one is already active on the
// context is a usage error (domain.ErrNestedTransaction).
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
