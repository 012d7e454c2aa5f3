package repositories

import (
	"context"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// UpdateProjectParams holds the fields of a partial project update.
// Nil fields are left unchanged.
type UpdateProjectParams struct {
	Name        *string
	Description *string
	Metadata    models.Metadata
}

// ProjectRepository defines data access operations for projects.
type ProjectRepository interface {
	// Create validates and inserts a project, filling ID and timestamps.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID.
	GetByID(ctx context.Context, id int64) (*models.Project, error)

	// GetByName retrieves the most recently created project with the given name.
	GetByName(ctx context.Context, name string) (*models.Project, error)

	// List retrieves a page of projects in insertion order.
	List(ctx context.Context, limit, offset int) ([]models.Project, error)

	// Count returns the total number of projects.
	Count(ctx context.Context) (int64, error)

	// Search finds projects whose name or description contains term
	// (case-insensitive).
	Search(ctx context.Context, term string, limit int) ([]models.Project, error)

	// Update merges the supplied fields onto the existing row and bumps
	// updated_at.
	Update(ctx context.Context, id int64, params UpdateProjectParams) (*models.Project, error)

	// Delete removes a project and, via cascade, all of its descendants.
	Delete(ctx context.Context, id int64) error

	// BulkCreate inserts all projects atomically; any validation failure
	// aborts the whole batch.
	BulkCreate(ctx context.Context, projects []*models.Project) error
}
