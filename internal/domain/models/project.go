package models

import (
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Project is the top-level container. It owns zero or more text sources.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Metadata    Metadata  `json:"metadata,omitempty"`
}

// Validate checks the project's fields.
func (p *Project) Validate() error {
	return asDomainError(validation.ValidateStruct(p,
		validation.Field(&p.Name,
			validation.Required,
			validation.Length(1, config.MaxNameLength),
			validation.By(notBlank),
		),
	))
}
