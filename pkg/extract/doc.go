// Package extract pulls candidate identity signals out of a raw inbound
// request and normalizes them into a credential Bundle consumed by the
// authenticator.
//
// Extraction is pure: it validates and sanitizes, but has no side effects.
// Payloads that fail structural checks (embedded CR/LF in headers,
// non-printable declared user identifiers) are rejected with errors that
// satisfy errors.Is(err, extract.ErrMalformedInput), before any
// authentication layer runs.
//
// # Usage
//
//	ex := extract.New(extract.WithMaxMessageLength(2048))
//	bundle, err := ex.Extract(headers, message, userID)
//	if err != nil {
//		// reject the request (HTTP 400 equivalent)
//	}
package extract
