package repositories

import (
	"context"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// UpdateSummaryParams holds the fields of a partial summary update.
// Nil fields are left unchanged.
type UpdateSummaryParams struct {
	Title       *string
	Content     *string
	SummaryType *string
	Metadata    models.Metadata
}

// SummaryRepository defines data access operations for summaries.
type SummaryRepository interface {
	Create(ctx context.Context, summary *models.Summary) error

	GetByID(ctx context.Context, id int64) (*models.Summary, error)

	// GetBySourceID retrieves a page of a source's summaries in
	// insertion order.
	GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Summary, error)

	// GetByType retrieves a source's summaries with an exact summary_type tag.
	GetByType(ctx context.Context, textSourceID int64, summaryType string) ([]models.Summary, error)

	// GetByProjectType retrieves summaries of a given type across all
	// sources under a project.
	GetByProjectType(ctx context.Context, projectID int64, summaryType string) ([]models.Summary, error)

	// SearchContent finds summaries whose title or content contains term
	// (case-insensitive). summaryType "" matches any type.
	SearchContent(ctx context.Context, term string, summaryType string, limit int) ([]models.Summary, error)

	List(ctx context.Context, limit, offset int) ([]models.Summary, error)

	Count(ctx context.Context) (int64, error)

	Update(ctx context.Context, id int64, params UpdateSummaryParams) (*models.Summary, error)

	Delete(ctx context.Context, id int64) error

	// AvailableTypes returns the distinct summary_type tags, scoped to one
	// source when textSourceID > 0.
	AvailableTypes(ctx context.Context, textSourceID int64) ([]string, error)

	BulkCreate(ctx context.Context, summaries []*models.Summary) error
}
