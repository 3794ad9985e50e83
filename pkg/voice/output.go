package voice

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// maxSpokenWords keeps responses around thirty seconds of speech.
const maxSpokenWords = 200

var (
	mdBold      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic    = regexp.MustCompile(`\*(.*?)\*`)
	mdUnder     = regexp.MustCompile(`_(.*?)_`)
	mdHeader    = regexp.MustCompile(`(?m)^#{1,6}\s*(.+)$`)
	mdCodeBlock = regexp.MustCompile("(?s)```.*?```")
	mdCodeSpan  = regexp.MustCompile("`([^`]+)`")
	mdBullet    = regexp.MustCompile(`(?m)^[-*•]\s*(.+)$`)
	mdNumbered  = regexp.MustCompile(`(?m)^\d+\.\s*(.+)$`)

	percentNum = regexp.MustCompile(`\b(\d+)\s*%`)
	dollarNum  = regexp.MustCompile(`\$(\d+)\b`)

	repeatedDots  = regexp.MustCompile(`\.{2,}`)
	repeatedBangs = regexp.MustCompile(`!{2,}`)
	repeatedQs    = regexp.MustCompile(`\?{2,}`)
	sentenceStart = regexp.MustCompile(`([.!?])\s*([a-z])`)
)

// spokenAbbreviations maps initialisms to forms a TTS engine reads
// naturally. Matched as whole words, case-sensitively, so "ai" inside a
// word is left alone.
var spokenAbbreviations = []correction{
	{regexp.MustCompile(`\bAPI\b`), "A P I"},
	{regexp.MustCompile(`\bAI\b`), "A I"},
	{regexp.MustCompile(`\bUI\b`), "U I"},
	{regexp.MustCompile(`\bURL\b`), "U R L"},
	{regexp.MustCompile(`\bHTTP\b`), "H T T P"},
	{regexp.MustCompile(`\bFAQ\b`), "F A Q"},
	{regexp.MustCompile(`\bCEO\b`), "C E O"},
}

// symbolStripper drops symbol and mark runes (emoji, dingbats, arrows)
// that read as garbage over TTS. Letters, digits, punctuation and
// whitespace pass through, including non-ASCII letters.
var symbolStripper = runes.Remove(runes.In(unicode.So))

// StripEmoji removes emoji and other pictographic symbols.
func StripEmoji(s string) string {
	out, _, err := transform.String(symbolStripper, s)
	if err != nil {
		return s
	}
	// Variation selectors and zero-width joiners ride along with emoji
	// sequences and survive the symbol pass.
	out = strings.Map(func(r rune) rune {
		switch {
		case r == 0x200D, r >= 0xFE00 && r <= 0xFE0F:
			return -1
		case r >= 0x1F000 && r <= 0x1FAFF:
			return -1
		}
		return r
	}, out)
	return out
}

// StripMarkdown flattens markdown formatting into plain sentences:
// emphasis markers are dropped, headers and list items become
// sentences, code blocks are removed entirely.
func StripMarkdown(s string) string {
	s = mdCodeBlock.ReplaceAllString(s, "")
	s = mdCodeSpan.ReplaceAllString(s, "$1")
	s = mdBold.ReplaceAllString(s, "$1")
	s = mdItalic.ReplaceAllString(s, "$1")
	s = mdUnder.ReplaceAllString(s, "$1")
	s = mdHeader.ReplaceAllString(s, "$1.")
	s = mdBullet.ReplaceAllString(s, "$1. ")
	s = mdNumbered.ReplaceAllString(s, "$1. ")
	return s
}

// SpeakableTerms rewrites initialisms and numeric notation into words a
// speech engine pronounces correctly.
func SpeakableTerms(s string) string {
	s = applyCorrections(spokenAbbreviations, s)
	s = percentNum.ReplaceAllString(s, "$1 percent")
	s = dollarNum.ReplaceAllString(s, "$1 dollars")
	return s
}

// LimitSpokenLength truncates text to roughly maxSpokenWords words,
// breaking at a sentence boundary when one fits.
func LimitSpokenLength(s string) string {
	words := strings.Fields(s)
	if len(words) <= maxSpokenWords {
		return s
	}

	var b strings.Builder
	count := 0
	for _, sentence := range regexp.MustCompile(`[.!?]+`).Split(s, -1) {
		n := len(strings.Fields(sentence))
		if n == 0 {
			continue
		}
		if count+n > maxSpokenWords {
			break
		}
		b.WriteString(strings.TrimSpace(sentence))
		b.WriteString(". ")
		count += n
	}
	if b.Len() == 0 {
		return strings.Join(words[:maxSpokenWords], " ") + "..."
	}
	return strings.TrimSpace(b.String())
}

// TidyPunctuation collapses repeated terminal punctuation, restores
// capitalization after sentence endings and drops non-printable runes.
func TidyPunctuation(s string) string {
	s = repeatedDots.ReplaceAllString(s, ".")
	s = repeatedBangs.ReplaceAllString(s, "!")
	s = repeatedQs.ReplaceAllString(s, "?")
	s = sentenceStart.ReplaceAllStringFunc(s, func(m string) string {
		// The match ends with the lowercase ASCII letter to capitalize.
		return m[:len(m)-1] + strings.ToUpper(m[len(m)-1:])
	})
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	s = CollapseWhitespace(s)
	if s != "" {
		if r := []rune(s); unicode.IsLower(r[0]) {
			r[0] = unicode.ToUpper(r[0])
			s = string(r)
		}
	}
	return s
}
