package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// TableNames holds the environment-prefixed table names.
type TableNames struct {
	Projects     string
	TextSources  string
	Summaries    string
	Translations string
	Videos       string
	Links        string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Projects:     fmt.Sprintf("%sprojects", prefix),
		TextSources:  fmt.Sprintf("%stext_sources", prefix),
		Summaries:    fmt.Sprintf("%ssummaries", prefix),
		Translations: fmt.Sprintf("%stranslations", prefix),
		Videos:       fmt.Sprintf("%svideos", prefix),
		Links:        fmt.Sprintf("%slinks", prefix),
	}
}

// RepositoryConfig holds the shared dependencies of the repository
// implementations.
type RepositoryConfig struct {
	Pool   *Pool
	Tables *TableNames
	Logger *slog.Logger
}

// Pool is the connection/pool manager. Every executor method acquires a
// pooled connection with a bounded wait and releases it when the operation
// finishes; callers never hold raw connections across calls. Exhaustion
// beyond the configured acquire timeout fails with PoolExhaustedError.
type Pool struct {
	inner          *pgxpool.Pool
	acquireTimeout time.Duration
	logger         *slog.Logger
}

// Connect validates the configuration, builds the pool, and verifies
// liveness with an initial ping.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Pool, error) {
	if err := cfg.Database.Validate(); err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("database config: %v", err))
	}

	pc, err := pgxpool.ParseConfig(cfg.Database.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	pc.MaxConns = cfg.Database.MaxConns()
	pc.MinConns = 1
	pc.MaxConnLifetime = cfg.Database.PoolRecycle

	inner, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	p := &Pool{
		inner:          inner,
		acquireTimeout: cfg.Database.PoolTimeout,
		logger:         logger,
	}

	if err := p.HealthCheck(ctx); err != nil {
		inner.Close()
		return nil, err
	}

	logger.Info("connection pool ready",
		"host", cfg.Database.Host,
		"database", cfg.Database.Database,
		"max_conns", pc.MaxConns,
	)

	return p, nil
}

// HealthCheck verifies liveness. The pool itself replaces dead connections
// on the next acquire, so a failed check only needs to be reported.
func (p *Pool) HealthCheck(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()
	if err := p.inner.Ping(pingCtx); err != nil {
		return &domain.ConnectionError{
			Message: fmt.Sprintf("database ping failed: %v", err),
			Err:     err,
		}
	}
	return nil
}

// Close releases all pooled connections.
func (p *Pool) Close() {
	p.inner.Close()
}

// Stat exposes pool statistics for diagnostics.
func (p *Pool) Stat() *pgxpool.Stat {
	return p.inner.Stat()
}

// acquire obtains a connection, waiting at most the configured timeout.
func (p *Pool) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx := ctx
	cancel := func() {}
	if p.acquireTimeout > 0 {
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
	}
	defer cancel()

	conn, err := p.inner.Acquire(acquireCtx)
	if err != nil {
		if acquireCtx.Err() != nil && ctx.Err() == nil {
			return nil, &domain.PoolExhaustedError{
				Message: fmt.Sprintf("no connection available within %s", p.acquireTimeout),
				Err:     err,
			}
		}
		return nil, translateError(err, "acquire connection")
	}
	return conn, nil
}

// begin starts a transaction on a freshly acquired connection.
// The pgx.Tx owns the connection until Commit or Rollback.
func (p *Pool) begin(ctx context.Context) (pgx.Tx, error) {
	beginCtx := ctx
	cancel := func() {}
	if p.acquireTimeout > 0 {
		beginCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
	}
	defer cancel()

	tx, err := p.inner.Begin(beginCtx)
	if err != nil {
		if beginCtx.Err() != nil && ctx.Err() == nil {
			return nil, &domain.PoolExhaustedError{
				Message: fmt.Sprintf("no connection available within %s", p.acquireTimeout),
				Err:     err,
			}
		}
		return nil, translateError(err, "begin transaction")
	}
	return tx, nil
}

// Exec implements repositories.DBTX.
func (p *Pool) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()
	return conn.Exec(ctx, sql, arguments...)
}

// Query implements repositories.DBTX. The connection is released when the
// returned rows are closed.
func (p *Pool) Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, arguments...)
	if err != nil {
		conn.Release()
		return nil, err
	}
	return &pooledRows{Rows: rows, conn: conn}, nil
}

// QueryRow implements repositories.DBTX. The connection is released when the
// returned row is scanned.
func (p *Pool) QueryRow(ctx context.Context, sql string, arguments ...interface{}) pgx.Row {
	conn, err := p.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &pooledRow{row: conn.QueryRow(ctx, sql, arguments...), conn: conn}
}

// pooledRows returns its connection to the pool on Close.
type pooledRows struct {
	pgx.Rows
	conn *pgxpool.Conn
}

func (r *pooledRows) Close() {
	r.Rows.Close()
	if r.conn != nil {
		r.conn.Release()
		r.conn = nil
	}
}

// pooledRow returns its connection to the pool after Scan.
type pooledRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *pooledRow) Scan(dest ...any) error {
	defer r.conn.Release()
	return r.row.Scan(dest...)
}

// errRow defers an acquisition error until Scan, matching pgx.Row semantics.
type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error { return r.err }

// GetExecutor returns the executor for the context: the open transaction if
// one is present, the pool otherwise. This is how repositories participate
// in transaction scopes automatically.
func GetExecutor(ctx context.Context, pool *Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}

// scanStrings collects a single text column from rows.
func scanStrings(rows pgx.Rows, what string) ([]string, error) {
	defer rows.Close()
	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %ss: %w", what, err)
	}
	return values, nil
}

// clampPage applies the default page size and floors a negative offset.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
