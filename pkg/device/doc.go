// Package device classifies request header sets against an allow-list of
// trusted client signatures (a voice-assistant client string, a mobile OS
// token, a mobile-browser signature).
//
// Matching is strictly allow-list based: patterns name the clients that are
// trusted, and anything else simply produces no match. An unknown device is
// a normal outcome, never an error — it falls through to lower-priority
// authentication layers.
//
// Patterns are ordered configuration, not code. A pattern matches
// case-insensitively as a substring and may use '*' as a wildcard:
//
//	m, err := device.NewMatcher([]string{"Siri/iPhone*", "iPhone1?,*"})
//	fp, ok := m.Match(bundle.Headers)
package device
