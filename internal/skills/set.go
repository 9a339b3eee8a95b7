package skills

import (
	"encoding/json"
	"sort"
)

// Set is an unordered, duplicate-free collection of skills.
// The zero value is an empty set.
type Set struct {
	items map[string]struct{}
}

// NewSet returns a set holding the given skills.
func NewSet(skills ...string) Set {
	s := Set{items: make(map[string]struct{}, len(skills))}
	for _, skill := range skills {
		s.items[skill] = struct{}{}
	}
	return s
}

// Contains reports whether skill is in the set.
func (s Set) Contains(skill string) bool {
	_, ok := s.items[skill]
	return ok
}

// Len returns the number of skills in the set.
func (s Set) Len() int {
	return len(s.items)
}

// Slice returns the skills in sorted order so output is deterministic.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s.items))
	for skill := range s.items {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Difference returns the skills in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := Set{items: make(map[string]struct{})}
	for skill := range s.items {
		if !other.Contains(skill) {
			out.items[skill] = struct{}{}
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array, never null.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes a JSON array of skills.
func (s *Set) UnmarshalJSON(data []byte) error {
	var skills []string
	if err := json.Unmarshal(data, &skills); err != nil {
		return err
	}
	*s = NewSet(skills...)
	return nil
}
