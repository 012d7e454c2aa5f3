package models

import (
	"fmt"
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// KnownVideoFormats lists the formats the ingestion pipeline produces.
// Advisory only: unrecognized but non-empty formats are stored as-is.
var KnownVideoFormats = []string{"mp4", "webm", "mov", "avi", "mkv"}

// Video is a media reference belonging to a text source. The file itself
// lives outside this kernel; only the reference is stored.
type Video struct {
	ID            int64     `json:"id"`
	TextSourceID  int64     `json:"text_source_id"`
	Title         *string   `json:"title,omitempty"`
	FilePath      string    `json:"file_path"`
	FileURL       *string   `json:"file_url,omitempty"`
	FileSize      *int64    `json:"file_size,omitempty"`
	Duration      *int      `json:"duration,omitempty"` // seconds
	Format        *string   `json:"format,omitempty"`
	ThumbnailPath *string   `json:"thumbnail_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Metadata      Metadata  `json:"metadata,omitempty"`
}

// Validate checks the video's fields.
func (v *Video) Validate() error {
	return asDomainError(validation.ValidateStruct(v,
		validation.Field(&v.TextSourceID, validation.Required, validation.Min(int64(1))),
		validation.Field(&v.FilePath,
			validation.Required,
			validation.Length(1, config.MaxURLLength),
			validation.By(notBlank),
		),
		validation.Field(&v.Title, validation.Length(0, config.MaxNameLength)),
		validation.Field(&v.FileURL, validation.Length(0, config.MaxURLLength)),
		validation.Field(&v.FileSize, validation.Min(int64(0))),
		validation.Field(&v.Duration, validation.Min(0)),
		validation.Field(&v.Format, validation.Length(0, config.MaxVideoFormatLength)),
		validation.Field(&v.ThumbnailPath, validation.Length(0, config.MaxURLLength)),
	))
}

// FileSizeMB reports the file size in megabytes, or 0 if unknown.
func (v *Video) FileSizeMB() float64 {
	if v.FileSize == nil {
		return 0
	}
	return float64(*v.FileSize) / (1024 * 1024)
}

// DurationFormatted renders the duration as MM:SS or HH:MM:SS.
func (v *Video) DurationFormatted() string {
	if v.Duration == nil {
		return ""
	}
	d := *v.Duration
	h, m, s := d/3600, (d%3600)/60, d%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
