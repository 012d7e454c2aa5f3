package models

import (
	"errors"
	"testing"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
)

func TestValidateTokens(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []Token
		wantErr bool
	}{
		{
			name:    "empty sequence",
			tokens:  []Token{},
			wantErr: true,
		},
		{
			name:    "nil sequence",
			tokens:  nil,
			wantErr: true,
		},
		{
			name:    "single token at zero",
			tokens:  []Token{{Token: "HELLO", Pos: 0}},
			wantErr: false,
		},
		{
			name: "two tokens contiguous",
			tokens: []Token{
				{Token: "HELLO", Pos: 0},
				{Token: "WORLD", Pos: 1},
			},
			wantErr: false,
		},
		{
			name:    "first position not zero",
			tokens:  []Token{{Token: "HELLO", Pos: 1}},
			wantErr: true,
		},
		{
			name: "gap in positions",
			tokens: []Token{
				{Token: "HELLO", Pos: 0},
				{Token: "WORLD", Pos: 2},
			},
			wantErr: true,
		},
		{
			name: "duplicate positions",
			tokens: []Token{
				{Token: "HELLO", Pos: 0},
				{Token: "WORLD", Pos: 0},
			},
			wantErr: true,
		},
		{
			name: "positions out of array order",
			tokens: []Token{
				{Token: "WORLD", Pos: 1},
				{Token: "HELLO", Pos: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTokens(tt.tokens)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTokens() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error %v does not match ErrValidation", err)
			}
		})
	}
}

func TestTranslationValidate(t *testing.T) {
	valid := func() *Translation {
		return &Translation{
			TextSourceID: 1,
			LanguageCode: "en",
			Tokens:       []Token{{Token: "hello", Pos: 0}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Translation)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*Translation) {},
		},
		{
			name:    "missing source id",
			mutate:  func(tr *Translation) { tr.TextSourceID = 0 },
			wantErr: true,
		},
		{
			name:    "blank language code",
			mutate:  func(tr *Translation) { tr.LanguageCode = "   " },
			wantErr: true,
		},
		{
			name:    "language code too long",
			mutate:  func(tr *Translation) { tr.LanguageCode = "abcdefghijk" },
			wantErr: true,
		},
		{
			name:    "empty tokens",
			mutate:  func(tr *Translation) { tr.Tokens = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid()
			tt.mutate(tr)
			err := tr.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenText(t *testing.T) {
	tr := &Translation{
		Tokens: []Token{
			{Token: "STORE", Pos: 0},
			{Token: "ME", Pos: 1},
			{Token: "GO", Pos: 2},
		},
	}
	if got, want := tr.TokenText(), "STORE ME GO"; got != want {
		t.Errorf("TokenText() = %q, want %q", got, want)
	}

	empty := &Translation{}
	if got := empty.TokenText(); got != "" {
		t.Errorf("TokenText() on empty = %q, want empty", got)
	}
}
