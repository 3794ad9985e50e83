package session

import "strings"

// PhraseSet matches trigger phrases inside free-form text. Matching is
// case-insensitive substring containment, so "Okay, happy birthday
// Buddy!" triggers on the phrase "happy birthday".
type PhraseSet struct {
	phrases []string
}

// NewPhraseSet builds a set from the given phrases. Empty and
// whitespace-only entries are dropped.
func NewPhraseSet(phrases ...string) PhraseSet {
	set := PhraseSet{phrases: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		set.phrases = append(set.phrases, p)
	}
	return set
}

// Match reports whether the message contains any phrase of the set.
func (s PhraseSet) Match(message string) bool {
	if len(s.phrases) == 0 {
		return false
	}
	message = strings.ToLower(message)
	for _, p := range s.phrases {
		if strings.Contains(message, p) {
			return true
		}
	}
	return false
}

// Phrases returns a copy of the configured phrases, lower-cased.
func (s PhraseSet) Phrases() []string {
	out := make([]string, len(s.phrases))
	copy(out, s.phrases)
	return out
}
