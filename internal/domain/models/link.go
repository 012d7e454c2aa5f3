package models

import (
	"net/url"
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultLinkType is applied when a link is created without a type tag.
const DefaultLinkType = "reference"

// Link is an external reference belonging to a text source.
// Links are the only soft-deletable entity: deactivation flips IsActive
// instead of removing the row.
type Link struct {
	ID           int64     `json:"id"`
	TextSourceID int64     `json:"text_source_id"`
	URL          string    `json:"url"`
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	LinkType     string    `json:"link_type"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Metadata     Metadata  `json:"metadata,omitempty"`
}

// Validate checks the link's fields.
func (l *Link) Validate() error {
	return asDomainError(validation.ValidateStruct(l,
		validation.Field(&l.TextSourceID, validation.Required, validation.Min(int64(1))),
		validation.Field(&l.URL,
			validation.Required,
			validation.Length(1, config.MaxURLLength),
			validation.By(notBlank),
			validation.By(validURL),
		),
		validation.Field(&l.Title, validation.Length(0, config.MaxNameLength)),
		validation.Field(&l.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&l.LinkType, validation.Length(0, config.MaxTypeTagLength)),
	))
}

// validURL requires an absolute URL with a scheme and host.
func validURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return validation.NewError("validation_url", "must be a valid absolute URL")
	}
	return nil
}

// Domain returns the link's host, or "" if the URL does not parse.
func (l *Link) Domain() string {
	u, err := url.Parse(l.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// IsSecure reports whether the link uses https.
func (l *Link) IsSecure() bool {
	u, err := url.Parse(l.URL)
	return err == nil && u.Scheme == "https"
}
