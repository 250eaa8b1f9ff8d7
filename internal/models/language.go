package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
	"golang.org/x/text/language"
)

// Language is the response language a user prefers.
type Language string

const (
	English Language = "English"
	Spanish Language = "Spanish"
	French  Language = "French"
)

var supportedLanguages = []Language{English, Spanish, French}

var languageTags = map[Language]language.Tag{
	English: language.English,
	Spanish: language.Spanish,
	French:  language.French,
}

var languageInstructions = map[Language]string{
	English: "Respond in English",
	Spanish: "Responde en español",
	French:  "Réponds en français",
}

// Languages lists the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage accepts a display name ("Spanish", case-insensitive) or a
// BCP 47 tag whose base language is supported ("es", "fr-CA").
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range supportedLanguages {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}

	tag, err := language.Parse(s)
	if err == nil {
		base, _ := tag.Base()
		for l, t := range languageTags {
			if b, _ := t.Base(); b == base {
				return l, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %q", common.ErrUnsupportedLanguage, s)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageTags[l]
	return ok
}

// Tag returns the BCP 47 tag for l, or language.Und when l is not supported.
func (l Language) Tag() language.Tag {
	if t, ok := languageTags[l]; ok {
		return t
	}
	return language.Und
}

// Instruction is the sentence that tells the answer generator which language
// to respond in. Unsupported values fall back to English.
func (l Language) Instruction() string {
	if s, ok := languageInstructions[l]; ok {
		return s
	}
	return languageInstructions[English]
}

func (l Language) String() string {
	return string(l)
}
