package service

import (
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	"github.com/JaredForchheimer/Hack-Coms/internal/domain/models"
)

// glossPhrases maps common English phrases to fixed gloss sequences before
// word-level processing.
var glossPhrases = []struct {
	phrase string
	gloss  []string
}{
	{"how are you", []string{"HOW", "YOU"}},
	{"what is your name", []string{"YOU", "NAME", "WHAT"}},
	{"my name is", []string{"NAME", "ME"}},
	{"i am", []string{"I"}},
	{"i'm", []string{"I"}},
}

// glossSkipWords approximates the function-word classes the gloss pipeline
// drops: determiners, auxiliaries, adpositions, particles and conjunctions.
var glossSkipWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"is": {}, "am": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "for": {}, "with": {},
	"from": {}, "into": {}, "onto": {}, "about": {}, "over": {}, "under": {},
	"to": {}, "not": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"because": {}, "although": {}, "while": {}, "if": {}, "since": {}, "unless": {},
}

// TranslationBuilder turns raw text into the ordered token sequences stored
// on translations. The Japanese tokenizer loads its dictionary lazily on
// first use.
type TranslationBuilder struct {
	logger *slog.Logger

	jaOnce sync.Once
	jaTok  *tokenizer.Tokenizer
	jaErr  error
}

// NewTranslationBuilder creates a new translation builder.
func NewTranslationBuilder(logger *slog.Logger) *TranslationBuilder {
	return &TranslationBuilder{logger: logger}
}

// Build tokenizes text for the given language code. "asl" applies the gloss
// heuristic, "ja" runs morphological analysis, anything else splits on
// Unicode whitespace. Positions are assigned 0..n-1 in emission order.
func (b *TranslationBuilder) Build(languageCode, text string) ([]models.Token, error) {
	var (
		words []string
		err   error
	)
	switch strings.ToLower(languageCode) {
	case "asl":
		words = glossWords(text)
	case "ja":
		words, err = b.japaneseWords(text)
		if err != nil {
			return nil, err
		}
	default:
		words = strings.Fields(text)
	}

	if len(words) == 0 {
		return nil, domain.NewValidationError("text produced no tokens", "tokens")
	}

	tokens := make([]models.Token, len(words))
	for i, w := range words {
		tokens[i] = models.Token{Token: w, Pos: i}
	}

	b.logger.Debug("tokens built", "language", languageCode, "count", len(tokens))
	return tokens, nil
}

// NewTranslation builds the token sequence and wraps it in a translation
// ready for the repository, keeping the raw text alongside.
func (b *TranslationBuilder) NewTranslation(textSourceID int64, languageCode string, title *string, text string) (*models.Translation, error) {
	tokens, err := b.Build(languageCode, text)
	if err != nil {
		return nil, err
	}
	original := text
	return &models.Translation{
		TextSourceID: textSourceID,
		LanguageCode: languageCode,
		Title:        title,
		Tokens:       tokens,
		OriginalText: &original,
	}, nil
}

// glossWords applies the gloss heuristic: lowercase, phrase substitutions,
// punctuation stripped, function words dropped, remaining words uppercased
// and de-duplicated while preserving order.
func glossWords(text string) []string {
	lowered := strings.ToLower(text)

	type segment struct {
		literal string   // unprocessed text, or
		gloss   []string // a fixed phrase gloss
	}
	segments := []segment{{literal: lowered}}
	for _, p := range glossPhrases {
		var next []segment
		for _, seg := range segments {
			if seg.gloss != nil {
				next = append(next, seg)
				continue
			}
			rest := seg.literal
			for {
				idx := indexPhrase(rest, p.phrase)
				if idx < 0 {
					next = append(next, segment{literal: rest})
					break
				}
				next = append(next,
					segment{literal: rest[:idx]},
					segment{gloss: p.gloss},
				)
				rest = rest[idx+len(p.phrase):]
			}
		}
		segments = next
	}

	var words []string
	for _, seg := range segments {
		if seg.gloss != nil {
			words = append(words, seg.gloss...)
			continue
		}
		for _, w := range strings.FieldsFunc(seg.literal, notWordRune) {
			if _, skip := glossSkipWords[w]; skip {
				continue
			}
			words = append(words, strings.ToUpper(w))
		}
	}

	seen := map[string]struct{}{}
	deduped := words[:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		deduped = append(deduped, w)
	}
	return deduped
}

// indexPhrase finds phrase in s at word boundaries only, so "i am" never
// matches inside "miami amp". Boundary runes are decoded, not byte-cast, so
// multibyte words like "naïvéi" stay intact.
func indexPhrase(s, phrase string) int {
	for start := 0; ; {
		idx := strings.Index(s[start:], phrase)
		if idx < 0 {
			return -1
		}
		idx += start
		end := idx + len(phrase)
		before, _ := utf8.DecodeLastRuneInString(s[:idx])
		after, _ := utf8.DecodeRuneInString(s[end:])
		beforeOK := idx == 0 || notWordRune(before)
		afterOK := end == len(s) || notWordRune(after)
		if beforeOK && afterOK {
			return idx
		}
		start = idx + 1
	}
}

// notWordRune splits on everything except letters, digits, apostrophes and
// hyphens.
func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
}

func (b *TranslationBuilder) japaneseWords(text string) ([]string, error) {
	b.jaOnce.Do(func() {
		b.jaTok, b.jaErr = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	})
	if b.jaErr != nil {
		return nil, b.jaErr
	}

	var words []string
	for _, tok := range b.jaTok.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		words = append(words, tok.Surface)
	}
	return words, nil
}
