package voice

import (
	"regexp"
	"strings"
)

// defaultCorrections maps frequent speech-to-text mistranscriptions to
// their intended phrasing, matched case-insensitively. The passphrase
// variants matter most: a user saying the unlock phrase through Siri
// must not be locked out by transcription drift.
var defaultCorrections = map[string]string{
	"happy birthday buddy": "happy birthday",
	"say happy birthday":   "happy birthday",
	"it's happy birthday":  "happy birthday",
	"hey buddy":            "hello buddy",
	"talk to buddy":        "hello buddy",
	"speak to buddy":       "hello buddy",
	"good morning body":    "good morning buddy",
	"good afternoon body":  "good afternoon buddy",
	"good evening body":    "good evening buddy",
}

type correction struct {
	pattern     *regexp.Regexp
	replacement string
}

func compileCorrections(m map[string]string) []correction {
	out := make([]correction, 0, len(m))
	for wrong, right := range m {
		out = append(out, correction{
			pattern:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(wrong)),
			replacement: right,
		})
	}
	return out
}

var defaultCorrectionList = compileCorrections(defaultCorrections)

var (
	fillerWords   = regexp.MustCompile(`(?i)\b(um|uh|er|ah|you know|actually|basically|literally)\b`)
	leadingSoWell = regexp.MustCompile(`(?i)^\s*(so|well|okay|alright|right)[,\s]+`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// CorrectTranscription rewrites known speech-to-text errors using the
// default correction table.
func CorrectTranscription(s string) string {
	return applyCorrections(defaultCorrectionList, s)
}

func applyCorrections(list []correction, s string) string {
	for _, c := range list {
		s = c.pattern.ReplaceAllString(s, c.replacement)
	}
	return s
}

// StripFillers removes hesitation words and leading discourse markers
// that speech recognition faithfully transcribes but no downstream
// component wants.
func StripFillers(s string) string {
	s = fillerWords.ReplaceAllString(s, " ")
	s = leadingSoWell.ReplaceAllString(s, "")
	return s
}

// CollapseWhitespace squeezes runs of whitespace to single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
