package repositories

import (
	"context"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// UpdateTranslationParams holds the fields of a partial translation update.
// Nil fields are left unchanged; a non-nil Tokens slice replaces the whole
// sequence and must satisfy the token contract.
type UpdateTranslationParams struct {
	Title        *string
	Tokens       []models.Token
	OriginalText *string
	Metadata     models.Metadata
}

// TranslationRepository defines data access operations for translations.
type TranslationRepository interface {
	Create(ctx context.Context, translation *models.Translation) error

	GetByID(ctx context.Context, id int64) (*models.Translation, error)

	// GetBySourceID retrieves a page of a source's translations in
	// insertion order.
	GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Translation, error)

	// GetByLanguage retrieves the most recent translation of a source in
	// the given language.
	GetByLanguage(ctx context.Context, textSourceID int64, languageCode string) (*models.Translation, error)

	// GetByProjectLanguage retrieves all translations in a language across
	// the sources of a project.
	GetByProjectLanguage(ctx context.Context, projectID int64, languageCode string) ([]models.Translation, error)

	// SearchTokens finds translations whose token text contains term
	// (case-insensitive). languageCode "" matches any language.
	SearchTokens(ctx context.Context, term string, languageCode string, limit int) ([]models.Translation, error)

	// SearchText finds translations whose original text contains term
	// (case-insensitive).
	SearchText(ctx context.Context, term string, limit int) ([]models.Translation, error)

	List(ctx context.Context, limit, offset int) ([]models.Translation, error)

	Count(ctx context.Context) (int64, error)

	Update(ctx context.Context, id int64, params UpdateTranslationParams) (*models.Translation, error)

	Delete(ctx context.Context, id int64) error

	// AvailableLanguages returns the distinct language codes, scoped to one
	// source when textSourceID > 0.
	AvailableLanguages(ctx context.Context, textSourceID int64) ([]string, error)

	BulkCreate(ctx context.Context, translations []*models.Translation) error
}
