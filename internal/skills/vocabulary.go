// Package skills provides keyword-based skill detection against a fixed vocabulary.
package skills

import "strings"

// defaultEntries is the fixed skill list covering languages, frameworks and tools.
// Order is preserved for display; matching does not depend on it.
var defaultEntries = []string{
	"python", "java", "c++", "c", "html", "css", "javascript", "react", "node",
	"sql", "flask", "django", "machine learning", "deep learning", "nlp", "data analysis",
	"excel", "powerbi", "tableau", "pandas", "numpy", "tensorflow", "pytorch",
	"git", "aws", "linux", "docker", "cybersecurity", "iot", "arduino", "raspberry pi",
}

var defaultVocabulary = NewVocabulary(defaultEntries...)

// Vocabulary is an immutable, ordered list of lowercase skill keywords.
// A Vocabulary is safe for concurrent use once constructed.
type Vocabulary struct {
	entries []string
}

// NewVocabulary builds a vocabulary from the given entries. Entries are trimmed and
// lowercased; blanks and duplicates are dropped, keeping first-seen order.
func NewVocabulary(entries ...string) *Vocabulary {
	seen := make(map[string]bool, len(entries))
	normalized := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		normalized = append(normalized, entry)
	}
	return &Vocabulary{entries: normalized}
}

// DefaultVocabulary returns the process-wide skill vocabulary.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// Entries returns a copy of the vocabulary in its original order.
func (v *Vocabulary) Entries() []string {
	out := make([]string, len(v.entries))
	copy(out, v.entries)
	return out
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}
