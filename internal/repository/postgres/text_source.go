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

// TextSourceRepository implements repositories.TextSourceRepository.
type TextSourceRepository struct {
	pool   *Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTextSourceRepository creates a new text source repository.
func NewTextSourceRepository(cfg *RepositoryConfig) repositories.TextSourceRepository {
	return &TextSourceRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

const textSourceColumns = "id, project_id, title, content, source_type, source_url, created_at, updated_at, metadata"

func scanTextSource(row pgx.Row) (*models.TextSource, error) {
	var s models.TextSource
	err := row.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Content, &s.SourceType,
		&s.SourceURL, &s.CreatedAt, &s.UpdatedAt, &s.Metadata)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanTextSources(rows pgx.Rows) ([]models.TextSource, error) {
	defer rows.Close()
	sources := []models.TextSource{}
	for rows.Next() {
		s, err := scanTextSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan text source: %w", err)
		}
		sources = append(sources, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate text sources: %w", err)
	}
	return sources, nil
}

// projectExists verifies the parent project row.
func (r *TextSourceRepository) projectExists(ctx context.Context, projectID int64) error {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, r.tables.Projects)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID).Scan(&exists); err != nil {
		return translateError(err, "check project")
	}
	if !exists {
		return domain.NewNotFoundError("project", projectID)
	}
	return nil
}

// Create validates the source and its parent reference, then inserts it.
func (r *TextSourceRepository) Create(ctx context.Context, source *models.TextSource) error {
	if source.SourceType == "" {
		source.SourceType = models.DefaultSourceType
	}
	if err := source.Validate(); err != nil {
		return err
	}
	if err := r.projectExists(ctx, source.ProjectID); err != nil {
		return err
	}
	if source.Metadata == nil {
		source.Metadata = models.Metadata{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, title, content, source_type, source_url, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		source.ProjectID,
		source.Title,
		source.Content,
		source.SourceType,
		source.SourceURL,
		source.Metadata,
	).Scan(&source.ID, &source.CreatedAt, &source.UpdatedAt)
	if err != nil {
		return translateError(err, "create text source")
	}

	r.logger.Info("text source created", "id", source.ID, "project_id", source.ProjectID)
	return nil
}

// GetByID retrieves a text source by ID.
func (r *TextSourceRepository) GetByID(ctx context.Context, id int64) (*models.TextSource, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, textSourceColumns, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	s, err := scanTextSource(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("text source", id)
		}
		return nil, translateError(err, "get text source")
	}
	return s, nil
}

// GetByProjectID retrieves a page of a project's sources in insertion order.
func (r *TextSourceRepository) GetByProjectID(ctx context.Context, projectID int64, limit, offset int) ([]models.TextSource, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, textSourceColumns, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list text sources by project")
	}
	return scanTextSources(rows)
}

// GetByType retrieves a project's sources with an exact source_type tag.
func (r *TextSourceRepository) GetByType(ctx context.Context, projectID int64, sourceType string) ([]models.TextSource, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE project_id = $1 AND source_type = $2
		ORDER BY id
	`, textSourceColumns, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, sourceType)
	if err != nil {
		return nil, translateError(err, "list text sources by type")
	}
	return scanTextSources(rows)
}

// SearchContent finds sources whose title or content contains term.
// projectID 0 searches all projects.
func (r *TextSourceRepository) SearchContent(ctx context.Context, term string, projectID int64, limit int) ([]models.TextSource, error) {
	limit, _ = clampPage(limit, 0)
	pattern := "%" + term + "%"
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if projectID > 0 {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE project_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
			ORDER BY id
			LIMIT $3
		`, textSourceColumns, r.tables.TextSources)
		rows, err = executor.Query(ctx, query, projectID, pattern, limit)
	} else {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE title ILIKE $1 OR content ILIKE $1
			ORDER BY id
			LIMIT $2
		`, textSourceColumns, r.tables.TextSources)
		rows, err = executor.Query(ctx, query, pattern, limit)
	}
	if err != nil {
		return nil, translateError(err, "search text sources")
	}
	return scanTextSources(rows)
}

// List retrieves a page of sources in insertion order.
func (r *TextSourceRepository) List(ctx context.Context, limit, offset int) ([]models.TextSource, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, textSourceColumns, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "list text sources")
	}
	return scanTextSources(rows)
}

// Count returns the total number of text sources.
func (r *TextSourceRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.TextSources)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, translateError(err, "count text sources")
	}
	return count, nil
}

// CountByProject returns the number of sources under a project.
func (r *TextSourceRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE project_id = $1`, r.tables.TextSources)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, translateError(err, "count text sources by project")
	}
	return count, nil
}

// Update merges the supplied fields onto the existing row.
func (r *TextSourceRepository) Update(ctx context.Context, id int64, params repositories.UpdateTextSourceParams) (*models.TextSource, error) {
	source, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		source.Title = *params.Title
	}
	if params.Content != nil {
		source.Content = *params.Content
	}
	if params.SourceType != nil {
		source.SourceType = *params.SourceType
	}
	if params.SourceURL != nil {
		source.SourceURL = params.SourceURL
	}
	if params.Metadata != nil {
		source.Metadata = params.Metadata
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, source_type = $3, source_url = $4,
		    metadata = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING updated_at
	`, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		source.Title,
		source.Content,
		source.SourceType,
		source.SourceURL,
		source.Metadata,
		id,
	).Scan(&source.UpdatedAt)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("text source", id)
		}
		return nil, translateError(err, "update text source")
	}

	r.logger.Info("text source updated", "id", id)
	return source, nil
}

// Delete removes a source; the store cascades to all of its children.
func (r *TextSourceRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "delete text source")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("text source", id)
	}

	r.logger.Info("text source deleted", "id", id)
	return nil
}

// BulkCreate inserts all sources atomically.
func (r *TextSourceRepository) BulkCreate(ctx context.Context, sources []*models.TextSource) error {
	if len(sources) == 0 {
		return nil
	}
	for _, s := range sources {
		if s.SourceType == "" {
			s.SourceType = models.DefaultSourceType
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}

	err := runInScope(ctx, r.pool, r.logger, func(txCtx context.Context) error {
		for _, s := range sources {
			if err := r.Create(txCtx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("text sources bulk created", "count", len(sources))
	return nil
}

// BulkUpdateByProject applies the same partial update to every source under
// a project. Only tag, URL, and metadata fields may be bulk-updated; title
// and content are per-row data.
func (r *TextSourceRepository) BulkUpdateByProject(ctx context.Context, projectID int64, params repositories.UpdateTextSourceParams) (int64, error) {
	if err := r.projectExists(ctx, projectID); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET source_type = COALESCE($1, source_type),
		    source_url = COALESCE($2, source_url),
		    metadata = COALESCE($3, metadata),
		    updated_at = CURRENT_TIMESTAMP
		WHERE project_id = $4
	`, r.tables.TextSources)

	var meta any
	if params.Metadata != nil {
		meta = params.Metadata
	}

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, params.SourceType, params.SourceURL, meta, projectID)
	if err != nil {
		return 0, translateError(err, "bulk update text sources")
	}

	r.logger.Info("text sources bulk updated", "project_id", projectID, "count", tag.RowsAffected())
	return tag.RowsAffected(), nil
}
