package repositories

import (
	"context"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// UpdateLinkParams holds the fields of a partial link update.
// Nil fields are left unchanged.
type UpdateLinkParams struct {
	URL         *string
	Title       *string
	Description *string
	LinkType    *string
	IsActive    *bool
	Metadata    models.Metadata
}

// LinkRepository defines data access operations for links.
type LinkRepository interface {
	Create(ctx context.Context, link *models.Link) error

	GetByID(ctx context.Context, id int64) (*models.Link, error)

	// GetBySourceID retrieves a page of a source's links, active or not,
	// in insertion order.
	GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Link, error)

	// GetActiveBySourceID retrieves only the active links of a source.
	GetActiveBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Link, error)

	// GetByType retrieves a source's links with an exact link_type tag.
	GetByType(ctx context.Context, textSourceID int64, linkType string) ([]models.Link, error)

	// GetByProjectType retrieves links of a given type across all sources
	// under a project.
	GetByProjectType(ctx context.Context, projectID int64, linkType string) ([]models.Link, error)

	// SearchByTitleOrDescription finds links whose title or description
	// contains term (case-insensitive).
	SearchByTitleOrDescription(ctx context.Context, term string, limit int) ([]models.Link, error)

	// List retrieves a page of links; activeOnly restricts to is_active rows.
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Link, error)

	Count(ctx context.Context) (int64, error)

	Update(ctx context.Context, id int64, params UpdateLinkParams) (*models.Link, error)

	// Delete hard-deletes a link. Prefer Deactivate for reversible removal.
	Delete(ctx context.Context, id int64) error

	// Deactivate soft-deletes a link by clearing is_active.
	Deactivate(ctx context.Context, id int64) error

	// Activate restores a deactivated link.
	Activate(ctx context.Context, id int64) error

	// AvailableTypes returns the distinct link_type tags, scoped to one
	// source when textSourceID > 0.
	AvailableTypes(ctx context.Context, textSourceID int64) ([]string, error)

	BulkCreate(ctx context.Context, links []*models.Link) error
}
