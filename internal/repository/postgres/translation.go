package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/repositories"
)

// TranslationRepository implements repositories.TranslationRepository.
// The token sequence is persisted as a JSONB array in strict position order;
// the contract is enforced before every write.
type TranslationRepository struct {
	pool   *Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTranslationRepository creates a new translation repository.
func NewTranslationRepository(cfg *RepositoryConfig) repositories.TranslationRepository {
	return &TranslationRepository{
		pool:   cfg.Pool,
		tables: cfg.Tables,
		logger: cfg.Logger,
	}
}

const translationColumns = "id, text_source_id, language_code, title, tokens, original_text, created_at, updated_at, metadata"

func scanTranslation(row pgx.Row) (*models.Translation, error) {
	var (
		t      models.Translation
		tokens []byte
	)
	err := row.Scan(&t.ID, &t.TextSourceID, &t.LanguageCode, &t.Title, &tokens,
		&t.OriginalText, &t.CreatedAt, &t.UpdatedAt, &t.Metadata)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 0 {
		if err := json.Unmarshal(tokens, &t.Tokens); err != nil {
			return nil, fmt.Errorf("decode tokens: %w", err)
		}
	}
	return &t, nil
}

func scanTranslations(rows pgx.Rows) ([]models.Translation, error) {
	defer rows.Close()
	translations := []models.Translation{}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}
	return translations, nil
}

func encodeTokens(tokens []models.Token) ([]byte, error) {
	data, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("encode tokens: %w", err)
	}
	return data, nil
}

// Create validates the translation (including the token contract) and its
// parent reference, then inserts it.
func (r *TranslationRepository) Create(ctx context.Context, translation *models.Translation) error {
	if err := translation.Validate(); err != nil {
		return err
	}
	if err := textSourceExists(ctx, r.pool, r.tables, translation.TextSourceID); err != nil {
		return err
	}
	if translation.Metadata == nil {
		translation.Metadata = models.Metadata{}
	}

	tokens, err := encodeTokens(translation.Tokens)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (text_source_id, language_code, title, tokens, original_text, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		translation.TextSourceID,
		translation.LanguageCode,
		translation.Title,
		tokens,
		translation.OriginalText,
		translation.Metadata,
	).Scan(&translation.ID, &translation.CreatedAt, &translation.UpdatedAt)
	if err != nil {
		return translateError(err, "create translation")
	}

	r.logger.Info("translation created",
		"id", translation.ID,
		"text_source_id", translation.TextSourceID,
		"language", translation.LanguageCode,
	)
	return nil
}

// GetByID retrieves a translation by ID.
func (r *TranslationRepository) GetByID(ctx context.Context, id int64) (*models.Translation, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, translationColumns, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	t, err := scanTranslation(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("translation", id)
		}
		return nil, translateError(err, "get translation")
	}
	return t, nil
}

// GetBySourceID retrieves a page of a source's translations in insertion order.
func (r *TranslationRepository) GetBySourceID(ctx context.Context, textSourceID int64, limit, offset int) ([]models.Translation, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, translationColumns, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, textSourceID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list translations by source")
	}
	return scanTranslations(rows)
}

// GetByLanguage retrieves the most recent translation of a source in the
// given language.
func (r *TranslationRepository) GetByLanguage(ctx context.Context, textSourceID int64, languageCode string) (*models.Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE text_source_id = $1 AND language_code = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, translationColumns, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	t, err := scanTranslation(executor.QueryRow(ctx, query, textSourceID, languageCode))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundByKey("translation", languageCode)
		}
		return nil, translateError(err, "get translation by language")
	}
	return t, nil
}

// GetByProjectLanguage retrieves all translations in a language across the
// sources of a project.
func (r *TranslationRepository) GetByProjectLanguage(ctx context.Context, projectID int64, languageCode string) ([]models.Translation, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.text_source_id, t.language_code, t.title, t.tokens,
		       t.original_text, t.created_at, t.updated_at, t.metadata
		FROM %s t
		JOIN %s ts ON t.text_source_id = ts.id
		WHERE ts.project_id = $1 AND t.language_code = $2
		ORDER BY t.id
	`, r.tables.Translations, r.tables.TextSources)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, languageCode)
	if err != nil {
		return nil, translateError(err, "list translations by project language")
	}
	return scanTranslations(rows)
}

// SearchTokens finds translations whose token text contains term.
// languageCode "" matches any language.
func (r *TranslationRepository) SearchTokens(ctx context.Context, term string, languageCode string, limit int) ([]models.Translation, error) {
	limit, _ = clampPage(limit, 0)
	pattern := "%" + term + "%"
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if languageCode != "" {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE language_code = $1 AND tokens::text ILIKE $2
			ORDER BY id
			LIMIT $3
		`, translationColumns, r.tables.Translations)
		rows, err = executor.Query(ctx, query, languageCode, pattern, limit)
	} else {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE tokens::text ILIKE $1
			ORDER BY id
			LIMIT $2
		`, translationColumns, r.tables.Translations)
		rows, err = executor.Query(ctx, query, pattern, limit)
	}
	if err != nil {
		return nil, translateError(err, "search translations")
	}
	return scanTranslations(rows)
}

// SearchText finds translations whose original text contains term.
func (r *TranslationRepository) SearchText(ctx context.Context, term string, limit int) ([]models.Translation, error) {
	limit, _ = clampPage(limit, 0)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE original_text ILIKE $1
		ORDER BY id
		LIMIT $2
	`, translationColumns, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, translateError(err, "search translation text")
	}
	return scanTranslations(rows)
}

// List retrieves a page of translations in insertion order.
func (r *TranslationRepository) List(ctx context.Context, limit, offset int) ([]models.Translation, error) {
	limit, offset = clampPage(limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, translationColumns, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "list translations")
	}
	return scanTranslations(rows)
}

// Count returns the total number of translations.
func (r *TranslationRepository) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Translations)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, translateError(err, "count translations")
	}
	return count, nil
}

// Update merges the supplied fields onto the existing row. A non-nil Tokens
// slice replaces the whole sequence and must satisfy the token contract.
func (r *TranslationRepository) Update(ctx context.Context, id int64, params repositories.UpdateTranslationParams) (*models.Translation, error) {
	translation, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		translation.Title = params.Title
	}
	if params.Tokens != nil {
		translation.Tokens = params.Tokens
	}
	if params.OriginalText != nil {
		translation.OriginalText = params.OriginalText
	}
	if params.Metadata != nil {
		translation.Metadata = params.Metadata
	}

	if err := translation.Validate(); err != nil {
		return nil, err
	}

	tokens, err := encodeTokens(translation.Tokens)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, tokens = $2, original_text = $3, metadata = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		translation.Title,
		tokens,
		translation.OriginalText,
		translation.Metadata,
		id,
	).Scan(&translation.UpdatedAt)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, domain.NewNotFoundError("translation", id)
		}
		return nil, translateError(err, "update translation")
	}

	r.logger.Info("translation updated", "id", id)
	return translation, nil
}

// Delete removes a translation.
func (r *TranslationRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Translations)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "delete translation")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("translation", id)
	}

	r.logger.Info("translation deleted", "id", id)
	return nil
}

// AvailableLanguages returns the distinct language codes, scoped to one
// source when textSourceID > 0.
func (r *TranslationRepository) AvailableLanguages(ctx context.Context, textSourceID int64) ([]string, error) {
	executor := GetExecutor(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if textSourceID > 0 {
		query := fmt.Sprintf(`
			SELECT DISTINCT language_code FROM %s
			WHERE text_source_id = $1
			ORDER BY language_code
		`, r.tables.Translations)
		rows, err = executor.Query(ctx, query, textSourceID)
	} else {
		query := fmt.Sprintf(`
			SELECT DISTINCT language_code FROM %s
			ORDER BY language_code
		`, r.tables.Translations)
		rows, err = executor.Query(ctx, query)
	}
	if err != nil {
		return nil, translateError(err, "list translation languages")
	}
	return scanStrings(rows, "language code")
}

// BulkCreate inserts all translations atomically.
func (r *TranslationRepository) BulkCreate(ctx context.Context, translations []*models.Translation) error {
	if len(translations) == 0 {
		return nil
	}
	for _, t := range translations {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	err := runInScope(ctx, r.pool, r.logger, func(txCtx context.Context) error {
		for _, t := range translations {
			if err := r.Create(txCtx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("translations bulk created", "count", len(translations))
	return nil
}
