package models

import (
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultSummaryType is applied when a summary is created without a type tag.
const DefaultSummaryType = "general"

// Summary is derived text belonging to exactly one text source.
type Summary struct {
	ID           int64     `json:"id"`
	TextSourceID int64     `json:"text_source_id"`
	Title        *string   `json:"title,omitempty"`
	Content      string    `json:"content"`
	SummaryType  string    `json:"summary_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Metadata     Metadata  `json:"metadata,omitempty"`
}

// Validate checks the summary's fields.
func (s *Summary) Validate() error {
	return asDomainError(validation.ValidateStruct(s,
		validation.Field(&s.TextSourceID, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.Content, validation.Required, validation.By(notBlank)),
		validation.Field(&s.Title, validation.Length(0, config.MaxNameLength)),
		validation.Field(&s.SummaryType, validation.Length(0, config.MaxTypeTagLength)),
	))
}
