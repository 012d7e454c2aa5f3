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

// VideoRepository implements repositories.VideoRepository.
type VideoRepository struct {
	pool   *Pool
	tables *TableNames
	logger *slog.Logger
}

// NewVideoRepository creates a new video repository.
func NewVideoRepository(cfg *RepositoryConfig) repositories.VideoRepository {
	return &VideoRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

const videoColumns = "id, text_source_id, title, file_path, file_url, file_size, duration, format, thumbnail_path, created_at, updated_at, metadata"

func scanVideo(row pgx.Row) (*models.Video, error) {
	var v models.Video
	err := row.Scan(&v.ID, &v.TextSourceID, &v.Title, &v.FilePath, &v.FileURL,
		&v.FileSize, &v.Duration, &v.Format, &v.ThumbnailPath,
		&v.CreatedAt, &v.UpdatedAt, &v.Metadata)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVideos(rows pgx.Rows) ([]models.Video, error) {
	defer rows.Close()
	videos := []models.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

// Create validates the video and its parent reference, then inserts it.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := video.Validate(); err != nil {
		return err
	}
	if err := textSourceExists(ctx, r.pool, r.tables, video.TextSourceID); err != nil {
		return err
	}
	if video.Metadata == nil {
		video.Metadata = models.Metadata{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (text_source_id, title, file_path, file_url, file_size, duration, format, thumbnail_path, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		video.TextSourceID,
		video.Title,
		video.FilePath,
		video.FileURL,
		video.FileSize,
		video.Duration,
		video.Format,
		video.ThumbnailPath,
		video.Metadata,
	).Scan(&video.ID, &video.CreatedAt, &video.UpdatedAt)
	if err != nil {
		return translateError(err, "create video")
	}

	r.logger.Info("video created",
		"id", video.ID,
		"text_source_id", video.TextSourceID,
		"file_path", video.FilePath,
	)
	return nil
}

// GetByID retrieves a video by ID.
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	v, err := scanVideo(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("video", id)
		}
		return nil, translateError(err, "get video")
	}
	return v, nil
}

// GetBySourceID retrieves a page of a source's videos in insertion order.
func (r *VideoRepository) GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Video, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list videos by source")
	}
	return scanVideos(rows)
}

// GetByFormat retrieves videos with an exact format tag.
func (r *VideoRepository) GetByFormat(ctx context.Context, format string, limit int) ([]models.Video, error) {
	limit, _ = clampPage(limit, 0)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE format = $1
		ORDER BY id
		LIMIT $2
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, format, limit)
	if err != nil {
		return nil, translateError(err, "list videos by format")
	}
	return scanVideos(rows)
}

// GetByProjectID retrieves videos across all sources under a project.
func (r *VideoRepository) GetByProjectID(ctx context.Context, projectID int64, limit, offset int) ([]models.Video, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT v.id, v.text_source_id, v.title, v.file_path, v.file_url,
		       v.file_size, v.duration, v.format, v.thumbnail_path,
		       v.created_at, v.updated_at, v.metadata
		FROM %s v
		JOIN %s ts ON v.text_source_id = ts.id
		WHERE ts.project_id = $1
		ORDER BY v.id
		LIMIT $2 OFFSET $3
	`, r.tables.Videos, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list videos by project")
	}
	return scanVideos(rows)
}

// SearchByTitle finds videos whose title contains term.
func (r *VideoRepository) SearchByTitle(ctx context.Context, term string, limit int) ([]models.Video, error) {
	limit, _ = clampPage(limit, 0)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE title ILIKE $1
		ORDER BY id
		LIMIT $2
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, translateError(err, "search videos")
	}
	return scanVideos(rows)
}

// GetByDurationRange retrieves videos whose duration falls within [min, max]
// seconds. Rows with no recorded duration never match.
func (r *VideoRepository) GetByDurationRange(ctx context.Context, min, max int, limit int) ([]models.Video, error) {
	if min < 0 {
		min = 0
	}
	if max < min {
		return nil, domain.NewValidationError("duration range is inverted", "duration")
	}
	limit, _ = clampPage(limit, 0)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE duration BETWEEN $1 AND $2
		ORDER BY id
		LIMIT $3
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, min, max, limit)
	if err != nil {
		return nil, translateError(err, "list videos by duration")
	}
	return scanVideos(rows)
}

// List retrieves a page of videos in insertion order.
func (r *VideoRepository) List(ctx context.Context, limit, offset int) ([]models.Video, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, videoColumns, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "list videos")
	}
	return scanVideos(rows)
}

// Count returns the total number of videos.
func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Videos)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, translateError(err, "count videos")
	}
	return count, nil
}

// Update merges the supplied fields onto the existing row.
func (r *VideoRepository) Update(ctx context.Context, id int64, params repositories.UpdateVideoParams) (*models.Video, error) {
	video, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		video.Title = params.Title
	}
	if params.FilePath != nil {
		video.FilePath = *params.FilePath
	}
	if params.FileURL != nil {
		video.FileURL = params.FileURL
	}
	if params.FileSize != nil {
		video.FileSize = params.FileSize
	}
	if params.Duration != nil {
		video.Duration = params.Duration
	}
	if params.Format != nil {
		video.Format = params.Format
	}
	if params.ThumbnailPath != nil {
		video.ThumbnailPath = params.ThumbnailPath
	}
	if params.Metadata != nil {
		video.Metadata = params.Metadata
	}

	if err := video.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, file_path = $2, file_url = $3, file_size = $4,
		    duration = $5, format = $6, thumbnail_path = $7, metadata = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at
	`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		video.Title,
		video.FilePath,
		video.FileURL,
		video.FileSize,
		video.Duration,
		video.Format,
		video.ThumbnailPath,
		video.Metadata,
		id,
	).Scan(&video.UpdatedAt)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("video", id)
		}
		return nil, translateError(err, "update video")
	}

	r.logger.Info("video updated", "id", id)
	return video, nil
}

// Delete removes a video.
func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Videos)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "delete video")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("video", id)
	}

	r.logger.Info("video deleted", "id", id)
	return nil
}

// AvailableFormats returns the distinct format tags, scoped to one source
// when textSourceID > 0. Rows without a format are skipped.
func (r *VideoRepository) AvailableFormats(ctx context.Context, textSourceID int64) ([]string, error) {
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if textSourceID > 0 {
		query := fmt.Sprintf(`
			SELECT DISTINCT format FROM %s
			WHERE text_source_id = $1 AND format IS NOT NULL
			ORDER BY format
		`, r.tables.Videos)
		rows, err = executor.Query(ctx, query, textSourceID)
	} else {
		query := fmt.Sprintf(`
			SELECT DISTINCT format FROM %s
			WHERE format IS NOT NULL
			ORDER BY format
		`, r.tables.Videos)
		rows, err = executor.Query(ctx, query)
	}
	if err != nil {
		return nil, translateError(err, "list video formats")
	}
	return scanStrings(rows, "format")
}

// BulkCreate inserts all videos atomically.
func (r *VideoRepository) BulkCreate(ctx context.Context, videos []*models.Video) error {
	if len(videos) == 0 {
		return nil
	}
	for _, v := range videos {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	err := runInScope(ctx, r.pool, r.logger, func(txCtx context.Context) error {
		for _, v := range videos {
			if err := r.Create(txCtx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("videos bulk created", "count", len(videos))
	return nil
}
