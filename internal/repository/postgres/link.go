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

// LinkRepository implements repositories.LinkRepository. Links are the one
// soft-deletable entity: Deactivate and Activate flip is_active in place.
type LinkRepository struct {
	pool   *Pool
	tables *TableNames
	logger *slog.Logger
}

// NewLinkRepository creates a new link repository.
func NewLinkRepository(cfg *RepositoryConfig) repositories.LinkRepository {
	return &LinkRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

const linkColumns = "id, text_source_id, url, title, description, link_type, is_active, created_at, updated_at, metadata"

func scanLink(row pgx.Row) (*models.Link, error) {
	var l models.Link
	err := row.Scan(&l.ID, &l.TextSourceID, &l.URL, &l.Title, &l.Description,
		&l.LinkType, &l.IsActive, &l.CreatedAt, &l.UpdatedAt, &l.Metadata)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLinks(rows pgx.Rows) ([]models.Link, error) {
	defer rows.Close()
	links := []models.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

// Create validates the link and its parent reference, then inserts it.
// An empty link type defaults to models.DefaultLinkType and new links are
// active.
func (r *LinkRepository) Create(ctx context.Context, link *models.Link) error {
	if link.LinkType == "" {
		link.LinkType = models.DefaultLinkType
	}
	if err := link.Validate(); err != nil {
		return err
	}
	if err := textSourceExists(ctx, r.pool, r.tables, link.TextSourceID); err != nil {
		return err
	}
	if link.Metadata == nil {
		link.Metadata = models.Metadata{}
	}
	link.IsActive = true

	query := fmt.Sprintf(`
		INSERT INTO %s (text_source_id, url, title, description, link_type, is_active, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		link.TextSourceID,
		link.URL,
		link.Title,
		link.Description,
		link.LinkType,
		link.IsActive,
		link.Metadata,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		return translateError(err, "create link")
	}

	r.logger.Info("link created",
		"id", link.ID,
		"text_source_id", link.TextSourceID,
		"link_type", link.LinkType,
	)
	return nil
}

// GetByID retrieves a link by ID, active or not.
func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*models.Link, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, linkColumns, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	l, err := scanLink(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("link", id)
		}
		return nil, translateError(err, "get link")
	}
	return l, nil
}

// GetBySourceID retrieves a page of a source's links in insertion order,
// active or not.
func (r *LinkRepository) GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Link, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, linkColumns, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list links by source")
	}
	return scanLinks(rows)
}

// GetActiveBySourceID retrieves only the active links of a source.
func (r *LinkRepository) GetActiveBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Link, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1 AND is_active
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, linkColumns, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list active links by source")
	}
	return scanLinks(rows)
}

// GetByType retrieves a source's links with an exact link_type tag.
func (r *LinkRepository) GetByType(ctx context.Context, textSourceID int64, linkType string) ([]models.Link, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1 AND link_type = $2
		ORDER BY id
	`, linkColumns, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, linkType)
	if err != nil {
		return nil, translateError(err, "list links by type")
	}
	return scanLinks(rows)
}

// GetByProjectType retrieves links of a given type across all sources under
// a project.
func (r *LinkRepository) GetByProjectType(ctx context.Context, projectID int64, linkType string) ([]models.Link, error) {
	query := fmt.Sprintf(`
		SELECT l.id, l.text_source_id, l.url, l.title, l.description,
		       l.link_type, l.is_active, l.created_at, l.updated_at, l.metadata
		FROM %s l
		JOIN %s ts ON l.text_source_id = ts.id
		WHERE ts.project_id = $1 AND l.link_type = $2
		ORDER BY l.id
	`, r.tables.Links, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, linkType)
	if err != nil {
		return nil, translateError(err, "list links by project type")
	}
	return scanLinks(rows)
}

// SearchByTitleOrDescription finds links whose title or description contains
// term.
func (r *LinkRepository) SearchByTitleOrDescription(ctx context.Context, term string, limit int) ([]models.Link, error) {
	limit, _ = clampPage(limit, 0)
	pattern := "%" + term + "%"
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE title ILIKE $1 OR description ILIKE $1
		ORDER BY id
		LIMIT $2
	`, linkColumns, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, translateError(err, "search links")
	}
	return scanLinks(rows)
}

// List retrieves a page of links in insertion order; activeOnly restricts
// the page to active rows.
func (r *LinkRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Link, error) {
	limit, offset = clampPage(limit, offset)
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if activeOnly {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE is_active
			ORDER BY id
			LIMIT $1 OFFSET $2
		`, linkColumns, r.tables.Links)
		rows, err = executor.Query(ctx, query, limit, offset)
	} else {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			ORDER BY id
			LIMIT $1 OFFSET $2
		`, linkColumns, r.tables.Links)
		rows, err = executor.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, translateError(err, "list links")
	}
	return scanLinks(rows)
}

// Count returns the total number of links, active or not.
func (r *LinkRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Links)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, translateError(err, "count links")
	}
	return count, nil
}

// Update merges the supplied fields onto the existing row.
func (r *LinkRepository) Update(ctx context.Context, id int64, params repositories.UpdateLinkParams) (*models.Link, error) {
	link, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.URL != nil {
		link.URL = *params.URL
	}
	if params.Title != nil {
		link.Title = params.Title
	}
	if params.Description != nil {
		link.Description = params.Description
	}
	if params.LinkType != nil {
		link.LinkType = *params.LinkType
	}
	if params.IsActive != nil {
		link.IsActive = *params.IsActive
	}
	if params.Metadata != nil {
		link.Metadata = params.Metadata
	}

	if err := link.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET url = $1, title = $2, description = $3, link_type = $4,
		    is_active = $5, metadata = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at
	`, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		link.URL,
		link.Title,
		link.Description,
		link.LinkType,
		link.IsActive,
		link.Metadata,
		id,
	).Scan(&link.UpdatedAt)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("link", id)
		}
		return nil, translateError(err, "update link")
	}

	r.logger.Info("link updated", "id", id)
	return link, nil
}

// Delete hard-deletes a link.
func (r *LinkRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "delete link")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("link", id)
	}

	r.logger.Info("link deleted", "id", id)
	return nil
}

// Deactivate soft-deletes a link. Deactivating an already inactive link is a
// no-op, not an error.
func (r *LinkRepository) Deactivate(ctx context.Context, id int64) error {
	return r.setActive(ctx, id, false)
}

// Activate restores a deactivated link.
func (r *LinkRepository) Activate(ctx context.Context, id int64) error {
	return r.setActive(ctx, id, true)
}

func (r *LinkRepository) setActive(ctx context.Context, id int64, active bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_active = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, active, id)
	if err != nil {
		return translateError(err, "set link active")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("link", id)
	}

	r.logger.Info("link active flag changed", "id", id, "is_active", active)
	return nil
}

// AvailableTypes returns the distinct link_type tags, scoped to one source
// when textSourceID > 0.
func (r *LinkRepository) AvailableTypes(ctx context.Context, textSourceID int64) ([]string, error) {
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if textSourceID > 0 {
		query := fmt.Sprintf(`
			SELECT DISTINCT link_type FROM %s
			WHERE text_source_id = $1
			ORDER BY link_type
		`, r.tables.Links)
		rows, err = executor.Query(ctx, query, textSourceID)
	} else {
		query := fmt.Sprintf(`
			SELECT DISTINCT link_type FROM %s
			ORDER BY link_type
		`, r.tables.Links)
		rows, err = executor.Query(ctx, query)
	}
	if err != nil {
		return nil, translateError(err, "list link types")
	}
	return scanStrings(rows, "link type")
}

// BulkCreate inserts all links atomically.
func (r *LinkRepository) BulkCreate(ctx context.Context, links []*models.Link) error {
	if len(links) == 0 {
		return nil
	}
	for _, l := range links {
		if l.LinkType == "" {
			l.LinkType = models.DefaultLinkType
		}
		if err := l.Validate(); err != nil {
			return err
		}
	}

	err := runInScope(ctx, r.pool, r.logger, func(txCtx context.Context) error {
		for _, l := range links {
			if err := r.Create(txCtx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("links bulk created", "count", len(links))
	return nil
}
