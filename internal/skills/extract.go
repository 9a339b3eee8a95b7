package skills

import "strings"

// Extract returns the vocabulary entries that occur in text.
//
// Matching is case-insensitive substring containment so multi-word entries such as
// "machine learning" match naturally. There is no word-boundary check: short entries
// like "c" also match inside unrelated words ("cloud", "docker"). This is a known
// source of false positives and is kept as-is.
func Extract(text string, vocab *Vocabulary) Set {
	found := NewSet()
	if text == "" || vocab == nil {
		return found
	}

	lower := strings.ToLower(text)
	for _, entry := range vocab.entries {
		if strings.Contains(lower, entry) {
			found.items[entry] = struct{}{}
		}
	}
	return found
}
