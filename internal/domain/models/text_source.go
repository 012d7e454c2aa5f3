package models

import (
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultSourceType is applied when a text source is created without a type tag.
const DefaultSourceType = "text"

// TextSource is a unit of ingested content belonging to exactly one project.
// It owns zero or more summaries, translations, videos and links.
type TextSource struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	SourceType string    `json:"source_type"`
	SourceURL  *string   `json:"source_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Metadata   Metadata  `json:"metadata,omitempty"`
}

// Validate checks the text source's fields.
func (s *TextSource) Validate() error {
	return asDomainError(validation.ValidateStruct(s,
		validation.Field(&s.ProjectID, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.Title,
			validation.Required,
			validation.Length(1, config.MaxNameLength),
			validation.By(notBlank),
		),
		validation.Field(&s.Content, validation.Required, validation.By(notBlank)),
		validation.Field(&s.SourceType, validation.Length(0, config.MaxTypeTagLength)),
		validation.Field(&s.SourceURL, validation.Length(0, config.MaxURLLength)),
	))
}
