package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// TransactionManager implements repositories.TransactionManager on the pool.
type TransactionManager struct {
	pool   *Pool
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager.
func NewTransactionManager(pool *Pool, logger *slog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, logger: logger}
}

// ExecTx executes fn within a single transaction. Repository calls made with
// the context passed to fn automatically share that transaction. fn returning
// nil commits; any error rolls back and is returned unchanged. Nested scopes
// are a usage error.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if repositories.InTx(ctx) {
		return domain.ErrNestedTransaction
	}

	tx, err := tm.pool.begin(ctx)
	if err != nil {
		return err
	}

	scopeID := uuid.NewString()
	tm.logger.Debug("transaction scope opened", "scope_id", scopeID)

	// Rollback after commit is a harmless no-op
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			tm.logger.Warn("rollback failed", "scope_id", scopeID, "error", rbErr)
		}
	}()

	if err := fn(repositories.SetTx(ctx, tx)); err != nil {
		tm.logger.Debug("transaction scope rolled back", "scope_id", scopeID, "error", err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(err, "commit transaction")
	}

	tm.logger.Debug("transaction scope committed", "scope_id", scopeID)
	return nil
}

// runInScope runs fn inside the current transaction scope if one is open,
// or inside a fresh scope otherwise. Bulk operations use it to guarantee
// all-or-nothing writes without forbidding use inside a caller's scope.
func runInScope(ctx context.Context, pool *Pool, logger *slog.Logger, fn repositories.TxFn) error {
	if repositories.InTx(ctx) {
		return fn(ctx)
	}
	tm := &TransactionManager{pool: pool, logger: logger}
	return tm.ExecTx(ctx, fn)
}
