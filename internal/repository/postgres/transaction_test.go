package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// stubTx satisfies pgx.Tx through embedding; any method call panics, which
// is the point: the nested-scope guard must trip before the transaction is
// ever touched.
type stubTx struct {
	pgx.Tx
}

func TestExecTxRejectsNestedScope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tm := NewTransactionManager(nil, logger)

	ctx := repositories.SetTx(context.Background(), stubTx{})

	called := false
	err := tm.ExecTx(ctx, func(context.Context) error {
		called = true
		return nil
	})

	if !errors.Is(err, domain.ErrNestedTransaction) {
		t.Fatalf("ExecTx() inside an open scope returned %v, want ErrNestedTransaction", err)
	}
	if called {
		t.Error("scope function ran despite the nested-scope error")
	}
}

func TestRunInScopeJoinsOpenScope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	outer := stubTx{}
	ctx := repositories.SetTx(context.Background(), outer)

	var got pgx.Tx
	err := runInScope(ctx, nil, logger, func(txCtx context.Context) error {
		got = repositories.GetTx(txCtx)
		return nil
	})
	if err != nil {
		t.Fatalf("runInScope() error = %v", err)
	}
	if got != pgx.Tx(outer) {
		t.Error("runInScope did not reuse the open transaction")
	}
}

func TestRunInScopeErrorPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := repositories.SetTx(context.Background(), stubTx{})

	want := errors.New("insert failed")
	err := runInScope(ctx, nil, logger, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("runInScope() error = %v, want the function's own error", err)
	}
}
