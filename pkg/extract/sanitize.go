package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// controlStripper removes control characters. Speech-to-text payloads
// occasionally carry stray control bytes from shortcut pipelines.
var controlStripper = runes.Remove(runes.In(unicode.Cc))

// sanitizeMessage removes control characters, collapses surrounding
// whitespace, and enforces the configured length cap. Over-length
// messages are truncated at a rune boundary rather than rejected so a
// rambling voice transcription still reaches the authenticator.
func (e *Extractor) sanitizeMessage(message string) string {
	cleaned, _, err := transform.String(controlStripper, message)
	if err != nil {
		// transform.String only fails on malformed UTF-8; fall back to a
		// manual strip so the request is not lost.
		cleaned = stripControl(message)
	}
	cleaned = strings.TrimSpace(cleaned)

	if e.maxMessageLength > 0 {
		r := []rune(cleaned)
		if len(r) > e.maxMessageLength {
			cleaned = string(r[:e.maxMessageLength])
		}
	}
	return cleaned
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// isPrintable reports whether every rune is printable. The empty string is
// printable; it resolves to the guest identity downstream.
func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
