package repositories

import (
	"context"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// UpdateTextSourceParams holds the fields of a partial text source update.
// Nil fields are left unchanged. ProjectID is deliberately absent: sources
// cannot be moved between projects.
type UpdateTextSourceParams struct {
	Title      *string
	Content    *string
	SourceType *string
	SourceURL  *string
	Metadata   models.Metadata
}

// TextSourceRepository defines data access operations for text sources.
type TextSourceRepository interface {
	Create(ctx context.Context, source *models.TextSource) error

	GetByID(ctx context.Context, id int64) (*models.TextSource, error)

	// GetByProjectID retrieves a page of the project's sources in
	// insertion order.
	GetByProjectID(ctx context.Context, projectID int64, limit, offset int) ([]models.TextSource, error)

	// GetByType retrieves a project's sources with an exact source_type tag.
	GetByType(ctx context.Context, projectID int64, sourceType string) ([]models.TextSource, error)

	// SearchContent finds sources whose title or content contains term
	// (case-insensitive). projectID 0 searches all projects.
	SearchContent(ctx context.Context, term string, projectID int64, limit int) ([]models.TextSource, error)

	List(ctx context.Context, limit, offset int) ([]models.TextSource, error)

	Count(ctx context.Context) (int64, error)

	// CountByProject returns the number of sources under a project.
	CountByProject(ctx context.Context, projectID int64) (int64, error)

	Update(ctx context.Context, id int64, params UpdateTextSourceParams) (*models.TextSource, error)

	// Delete removes a source and, via cascade, all of its children.
	Delete(ctx context.Context, id int64) error

	BulkCreate(ctx context.Context, sources []*models.TextSource) error

	// BulkUpdateByProject applies the same partial update to every source
	// under a project and returns the number of rows touched.
	BulkUpdateByProject(ctx context.Context, projectID int64, params UpdateTextSourceParams) (int64, error)
}
