// Package similarity scores lexical similarity between two texts using
// TF-IDF weighted term vectors and cosine similarity.
package similarity

import (
	"strings"
	"unicode"
)

// minTokenLength drops single-character tokens, matching the usual \w\w+ token pattern.
const minTokenLength = 2

// Tokenize lowercases text and splits it into word tokens: maximal runs of letters,
// digits and underscores at least two characters long. Stop words are removed.
// Token order follows the input.
func Tokenize(text string, stop StopWords) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < minTokenLength || stop.Contains(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
