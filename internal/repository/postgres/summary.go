package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// SummaryRepository implements repositories.SummaryRepository.
type SummaryRepository struct {
	pool   *Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSummaryRepository creates a new summary repository.
func NewSummaryRepository(cfg *RepositoryConfig) repositories.SummaryRepository {
	return &SummaryRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

const summaryColumns = "id, text_source_id, title, content, summary_type, created_at, updated_at, metadata"

func scanSummary(row pgx.Row) (*models.Summary, error) {
	var s models.Summary
	err := row.Scan(&s.ID, &s.TextSourceID, &s.Title, &s.Content, &s.SummaryType,
		&s.CreatedAt, &s.UpdatedAt, &s.Metadata)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSummaries(rows pgx.Rows) ([]models.Summary, error) {
	defer rows.Close()
	summaries := []models.Summary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return summaries, nil
}

// textSourceExists verifies the parent text source row for the given table set.
func textSourceExists(ctx context.Context, pool *Pool, tables *TableNames, id int64) error {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, tables.TextSources)

	var exists bool
	executor := GetExecutor(ctx, pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return translateError(err, "check text source")
	}
	if !exists {
		return domain.NewNotFoundError("text source", id)
	}
	return nil
}

// Create validates the summary and its parent reference, then inserts it.
func (r *SummaryRepository) Create(ctx context.Context, summary *models.Summary) error {
	if summary.SummaryType == "" {
		summary.SummaryType = models.DefaultSummaryType
	}
	if err := summary.Validate(); err != nil {
		return err
	}
	if err := textSourceExists(ctx, r.pool, r.tables, summary.TextSourceID); err != nil {
		return err
	}
	if summary.Metadata == nil {
		summary.Metadata = models.Metadata{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (text_source_id, title, content, summary_type, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		summary.TextSourceID,
		summary.Title,
		summary.Content,
		summary.SummaryType,
		summary.Metadata,
	).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return translateError(err, "create summary")
	}

	r.logger.Info("summary created", "id", summary.ID, "text_source_id", summary.TextSourceID)
	return nil
}

// GetByID retrieves a summary by ID.
func (r *SummaryRepository) GetByID(ctx context.Context, id int64) (*models.Summary, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, summaryColumns, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	s, err := scanSummary(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("summary", id)
		}
		return nil, translateError(err, "get summary")
	}
	return s, nil
}

// GetBySourceID retrieves a page of a source's summaries in insertion order.
func (r *SummaryRepository) GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Summary, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, summaryColumns, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list summaries by source")
	}
	return scanSummaries(rows)
}

// GetByType retrieves a source's summaries with an exact summary_type tag.
func (r *SummaryRepository) GetByType(ctx context.Context, textSourceID int64, summaryType string) ([]models.Summary, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1 AND summary_type = $2
		ORDER BY id
	`, summaryColumns, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, summaryType)
	if err != nil {
		return nil, translateError(err, "list summaries by type")
	}
	return scanSummaries(rows)
}

// GetByProjectType retrieves summaries of a given type across all sources
// under a project.
func (r *SummaryRepository) GetByProjectType(ctx context.Context, projectID int64, summaryType string) ([]models.Summary, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.text_source_id, s.title, s.content, s.summary_type,
		       s.created_at, s.updated_at, s.metadata
		FROM %s s
		JOIN %s ts ON s.text_source_id = ts.id
		WHERE ts.project_id = $1 AND s.summary_type = $2
		ORDER BY s.id
	`, r.tables.Summaries, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, summaryType)
	if err != nil {
		return nil, translateError(err, "list summaries by project type")
	}
	return scanSummaries(rows)
}

// SearchContent finds summaries whose title or content contains term.
// summaryType "" matches any type.
func (r *SummaryRepository) SearchContent(ctx context.Context, term string, summaryType string, limit int) ([]models.Summary, error) {
	limit, _ = clampPage(limit, 0)
	pattern := "%" + term + "%"
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if summaryType != "" {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE summary_type = $1 AND (title ILIKE $2 OR content ILIKE $2)
			ORDER BY id
			LIMIT $3
		`, summaryColumns, r.tables.Summaries)
		rows, err = executor.Query(ctx, query, summaryType, pattern, limit)
	} else {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE title ILIKE $1 OR content ILIKE $1
			ORDER BY id
			LIMIT $2
		`, summaryColumns, r.tables.Summaries)
		rows, err = executor.Query(ctx, query, pattern, limit)
	}
	if err != nil {
		return nil, translateError(err, "search summaries")
	}
	return scanSummaries(rows)
}

// List retrieves a page of summaries in insertion order.
func (r *SummaryRepository) List(ctx context.Context, limit, offset int) ([]models.Summary, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, summaryColumns, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "list summaries")
	}
	return scanSummaries(rows)
}

// Count returns the total number of summaries.
func (r *SummaryRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Summaries)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, translateError(err, "count summaries")
	}
	return count, nil
}

// Update merges the supplied fields onto the existing row.
func (r *SummaryRepository) Update(ctx context.Context, id int64, params repositories.UpdateSummaryParams) (*models.Summary, error) {
	summary, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		summary.Title = params.Title
	}
	if params.Content != nil {
		summary.Content = *params.Content
	}
	if params.SummaryType != nil {
		summary.SummaryType = *params.SummaryType
	}
	if params.Metadata != nil {
		summary.Metadata = params.Metadata
	}

	if err := summary.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, summary_type = $3, metadata = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		summary.Title,
		summary.Content,
		summary.SummaryType,
		summary.Metadata,
		id,
	).Scan(&summary.UpdatedAt)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("summary", id)
		}
		return nil, translateError(err, "update summary")
	}

	r.logger.Info("summary updated", "id", id)
	return summary, nil
}

// Delete removes a summary.
func (r *SummaryRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Summaries)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "delete summary")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("summary", id)
	}

	r.logger.Info("summary deleted", "id", id)
	return nil
}

// AvailableTypes returns the distinct summary_type tags, scoped to one
// source when textSourceID > 0.
func (r *SummaryRepository) AvailableTypes(ctx context.Context, textSourceID int64) ([]string, error) {
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if textSourceID > 0 {
		query := fmt.Sprintf(`
			SELECT DISTINCT summary_type FROM %s
			WHERE text_source_id = $1
			ORDER BY summary_type
		`, r.tables.Summaries)
		rows, err = executor.Query(ctx, query, textSourceID)
	} else {
		query := fmt.Sprintf(`
			SELECT DISTINCT summary_type FROM %s
			ORDER BY summary_type
		`, r.tables.Summaries)
		rows, err = executor.Query(ctx, query)
	}
	if err != nil {
		return nil, translateError(err, "list summary types")
	}
	return scanStrings(rows, "summary type")
}

// BulkCreate inserts all summaries atomically.
func (r *SummaryRepository) BulkCreate(ctx context.Context, summaries []*models.Summary) error {
	if len(summaries) == 0 {
		return nil
	}
	for _, s := range summaries {
		if s.SummaryType == "" {
			s.SummaryType = models.DefaultSummaryType
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}

	err := runInScope(ctx, r.pool, r.logger, func(txCtx context.Context) error {
		for _, s := range summaries {
			if err := r.Create(txCtx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("summaries bulk created", "count", len(summaries))
	return nil
}
