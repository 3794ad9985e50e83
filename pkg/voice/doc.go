// Package voice prepares text at both ends of a speech pipeline: it
// normalizes speech-to-text input before authentication and session
// handling see it, and strips visual formatting from responses so a
// text-to-speech engine can read them aloud.
//
// Transformations are pure string functions composed with Apply or
// Compose, so callers can assemble their own pipelines:
//
//	clean := voice.Compose(
//		voice.CorrectTranscription,
//		voice.StripFillers,
//		voice.CollapseWhitespace,
//	)
//	msg := clean(rawTranscript)
//
// The Processor bundles the standard input and output pipelines with
// configurable correction tables.
package voice
