package service

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tokenWords(tokens []models.Token) []string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Token
	}
	return words
}

func TestBuildDefault(t *testing.T) {
	b := NewTranslationBuilder(testLogger())

	tokens, err := b.Build("en", "  hello   brave\tnew world ")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{"hello", "brave", "new", "world"}
	if got := tokenWords(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
	for i, tok := range tokens {
		if tok.Pos != i {
			t.Errorf("token %d has pos %d", i, tok.Pos)
		}
	}
}

func TestBuildGloss(t *testing.T) {
	b := NewTranslationBuilder(testLogger())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "phrase substitution",
			text: "How are you?",
			want: []string{"HOW", "YOU"},
		},
		{
			name: "function words dropped",
			text: "The cat is on the mat.",
			want: []string{"CAT", "MAT"},
		},
		{
			name: "duplicates removed in order",
			text: "store store go store",
			want: []string{"STORE", "GO"},
		},
		{
			name: "punctuation stripped",
			text: "wow!!! really... wow",
			want: []string{"WOW", "REALLY"},
		},
		{
			name: "i'm contraction",
			text: "I'm happy",
			want: []string{"I", "HAPPY"},
		},
		{
			name: "phrase not matched inside a word",
			text: "miami amp",
			want: []string{"MIAMI", "AMP"},
		},
		{
			name: "phrase not matched after a multibyte rune",
			text: "naïvéi am here",
			want: []string{"NAÏVÉI", "HERE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := b.Build("asl", tt.text)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := tokenWords(tokens); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokens = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildGlossEmpty(t *testing.T) {
	b := NewTranslationBuilder(testLogger())

	// Nothing but function words and punctuation survives the gloss.
	_, err := b.Build("asl", "the and, of.")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Build() error = %v, want ErrValidation", err)
	}

	_, err = b.Build("en", "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Build() on whitespace error = %v, want ErrValidation", err)
	}
}

func TestBuildJapanese(t *testing.T) {
	b := NewTranslationBuilder(testLogger())

	tokens, err := b.Build("ja", "猫が好きです")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(tokens) < 2 {
		t.Fatalf("got %d tokens, want multiple morphemes", len(tokens))
	}
	if err := models.ValidateTokens(tokens); err != nil {
		t.Errorf("built sequence violates the token contract: %v", err)
	}
	if tokens[0].Token != "猫" {
		t.Errorf("first token = %q, want 猫", tokens[0].Token)
	}
}

func TestNewTranslation(t *testing.T) {
	b := NewTranslationBuilder(testLogger())

	tr, err := b.NewTranslation(7, "asl", nil, "I'm going to the store")
	if err != nil {
		t.Fatalf("NewTranslation() error = %v", err)
	}
	if tr.TextSourceID != 7 || tr.LanguageCode != "asl" {
		t.Errorf("unexpected translation identity: %+v", tr)
	}
	if tr.OriginalText == nil || *tr.OriginalText != "I'm going to the store" {
		t.Error("original text not preserved")
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("built translation fails validation: %v", err)
	}
}
