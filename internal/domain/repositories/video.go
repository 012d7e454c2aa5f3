package repositories

import (
	"context"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// UpdateVideoParams holds the fields of a partial video update.
// Nil fields are left unchanged.
type UpdateVideoParams struct {
	Title         *string
	FilePath      *string
	FileURL       *string
	FileSize      *int64
	Duration      *int
	Format        *string
	ThumbnailPath *string
	Metadata      models.Metadata
}

// VideoRepository defines data access operations for video references.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error

	GetByID(ctx context.Context, id int64) (*models.Video, error)

	// GetBySourceID retrieves a page of a source's videos in insertion order.
	GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Video, error)

	// GetByFormat retrieves videos with an exact format tag.
	GetByFormat(ctx context.Context, format string, limit int) ([]models.Video, error)

	// GetByProjectID retrieves videos across all sources under a project.
	GetByProjectID(ctx context.Context, projectID int64, limit, offset int) ([]models.Video, error)

	// SearchByTitle finds videos whose title contains term (case-insensitive).
	SearchByTitle(ctx context.Context, term string, limit int) ([]models.Video, error)

	// GetByDurationRange retrieves videos whose duration in seconds falls
	// within [min, max].
	GetByDurationRange(ctx context.Context, min, max int, limit int) ([]models.Video, error)

	List(ctx context.Context, limit, offset int) ([]models.Video, error)

	Count(ctx context.Context) (int64, error)

	Update(ctx context.Context, id int64, params UpdateVideoParams) (*models.Video, error)

	Delete(ctx context.Context, id int64) error

	// AvailableFormats returns the distinct format tags, scoped to one
	// source when textSourceID > 0.
	AvailableFormats(ctx context.Context, textSourceID int64) ([]string, error)

	BulkCreate(ctx context.Context, videos []*models.Video) error
}
