package model

import (
	"strings"
)

// SuggestionCount is the number of reply suggestions a complete set holds.
const SuggestionCount = 3

// SuggestionSet is an ordered set of distinct, non-empty reply suggestions.
type SuggestionSet struct {
	items []string
	seen  map[string]struct{}
}

// NewSuggestionSet creates an empty suggestion set.
func NewSuggestionSet() *SuggestionSet {
	return &SuggestionSet{seen: make(map[string]struct{})}
}

// Add trims s and appends it unless it is empty, a duplicate, or the set is full.
// It reports whether s was added.
func (s *SuggestionSet) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || len(s.items) >= SuggestionCount {
		return false
	}
	if _, dup := s.seen[text]; dup {
		return false
	}
	s.seen[text] = struct{}{}
	s.items = append(s.items, text)
	return true
}

// Len returns the number of suggestions held.
func (s *SuggestionSet) Len() int {
	return len(s.items)
}

// Missing returns how many suggestions are needed to complete the set.
func (s *SuggestionSet) Missing() int {
	return SuggestionCount - len(s.items)
}

// Complete reports whether the set holds exactly SuggestionCount suggestions.
func (s *SuggestionSet) Complete() bool {
	return len(s.items) == SuggestionCount
}

// Items returns a copy of the suggestions in order.
func (s *SuggestionSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// SuggestionResult is the outcome of a reply suggestion operation.
type SuggestionResult struct {
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
	Complete    bool     `json:"complete"`
	Backfilled  bool     `json:"backfilled"`
	Language    Language `json:"language"`
	Tone        Tone     `json:"tone"`
	Warning     string   `json:"warning,omitempty"`
}
