package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Token is one element of a translation's ordered token sequence.
// Pos values are contiguous from 0 and match array order.
type Token struct {
	Token string `json:"token"`
	Pos   int    `json:"pos"`
}

// Translation is a per-language tokenized rendering of a text source.
type Translation struct {
	ID           int64     `json:"id"`
	TextSourceID int64     `json:"text_source_id"`
	LanguageCode string    `json:"language_code"`
	Title        *string   `json:"title,omitempty"`
	Tokens       []Token   `json:"tokens"`
	OriginalText *string   `json:"original_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Metadata     Metadata  `json:"metadata,omitempty"`
}

// Validate checks the translation's fields, including the token contract.
func (t *Translation) Validate() error {
	if err := asDomainError(validation.ValidateStruct(t,
		validation.Field(&t.TextSourceID, validation.Required, validation.Min(int64(1))),
		validation.Field(&t.LanguageCode,
			validation.Required,
			validation.Length(1, config.MaxLanguageCodeLength),
			validation.By(notBlank),
		),
		validation.Field(&t.Title, validation.Length(0, config.MaxNameLength)),
	)); err != nil {
		return err
	}
	return ValidateTokens(t.Tokens)
}

// ValidateTokens enforces the token sequence contract: non-empty, and
// positions contiguous from 0 in array order (which also rules out gaps
// and duplicates).
func ValidateTokens(tokens []Token) error {
	if len(tokens) == 0 {
		return domain.NewValidationError("tokens must be a non-empty sequence", "tokens")
	}
	for i, tok := range tokens {
		if tok.Pos != i {
			return domain.NewValidationError(
				fmt.Sprintf("token at index %d has position %d, want %d", i, tok.Pos, i),
				"tokens",
			)
		}
	}
	return nil
}

// TokenText joins the token surfaces in position order.
func (t *Translation) TokenText() string {
	if len(t.Tokens) == 0 {
		return ""
	}
	parts := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		parts[i] = tok.Token
	}
	return strings.Join(parts, " ")
}
