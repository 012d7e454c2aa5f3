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

// ProjectRepository implements repositories.ProjectRepository.
type ProjectRepository struct {
	pool   *Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(cfg *RepositoryConfig) repositories.ProjectRepository {
	return &ProjectRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

const projectColumns = "id, name, description, created_at, updated_at, metadata"

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.Metadata)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]models.Project, error) {
	defer rows.Close()
	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// Create validates and inserts the project, filling ID and timestamps.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	if project.Metadata == nil {
		project.Metadata = models.Metadata{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, metadata)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Metadata,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return translateError(err, "create project")
	}

	r.logger.Info("project created", "id", project.ID, "name", project.Name)
	return nil
}

// GetByID retrieves a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanProject(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("project", id)
		}
		return nil, translateError(err, "get project")
	}
	return p, nil
}

// GetByName retrieves the most recently created project with the given name.
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	p, err := scanProject(executor.QueryRow(ctx, query, name))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundByKey("project", name)
		}
		return nil, translateError(err, "get project by name")
	}
	return p, nil
}

// List retrieves a page of projects in insertion order.
func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]models.Project, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "list projects")
	}
	return scanProjects(rows)
}

// Count returns the total number of projects.
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Projects)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, translateError(err, "count projects")
	}
	return count, nil
}

// Search finds projects whose name or description contains term.
func (r *ProjectRepository) Search(ctx context.Context, term string, limit int) ([]models.Project, error) {
	limit, _ = clampPage(limit, 0)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY id
		LIMIT $2
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, translateError(err, "search projects")
	}
	return scanProjects(rows)
}

// Update merges the supplied fields onto the existing row.
func (r *ProjectRepository) Update(ctx context.Context, id int64, params repositories.UpdateProjectParams) (*models.Project, error) {
	project, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		project.Name = *params.Name
	}
	if params.Description != nil {
		project.Description = params.Description
	}
	if params.Metadata != nil {
		project.Metadata = params.Metadata
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, metadata = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Metadata,
		id,
	).Scan(&project.UpdatedAt)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("project", id)
		}
		return nil, translateError(err, "update project")
	}

	r.logger.Info("project updated", "id", id)
	return project, nil
}

// Delete removes a project; the store cascades the delete to all descendant
// text sources and their children.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "delete project")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("project", id)
	}

	r.logger.Info("project deleted", "id", id)
	return nil
}

// BulkCreate inserts all projects atomically.
func (r *ProjectRepository) BulkCreate(ctx context.Context, projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	for _, p := range projects {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	err := runInScope(ctx, r.pool, r.logger, func(txCtx context.Context) error {
		for _, p := range projects {
			if err := r.Create(txCtx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("projects bulk created", "count", len(projects))
	return nil
}
