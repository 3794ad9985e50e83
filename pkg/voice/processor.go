package voice

import "strings"

// defaultFallback is spoken when a response sanitizes down to nothing.
const defaultFallback = "I'm here and ready to assist you. How can I help?"

// Processor bundles the standard input and output pipelines.
type Processor struct {
	corrections []correction
	fallback    string
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithCorrections adds mistranscription fixes on top of the default
// table. Keys are matched case-insensitively.
func WithCorrections(m map[string]string) ProcessorOption {
	return func(p *Processor) {
		p.corrections = append(p.corrections, compileCorrections(m)...)
	}
}

// WithFallback overrides the response used when sanitization leaves
// nothing speakable.
func WithFallback(s string) ProcessorOption {
	return func(p *Processor) {
		if s != "" {
			p.fallback = s
		}
	}
}

// NewProcessor creates a Processor with the default correction table.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		corrections: defaultCorrectionList,
		fallback:    defaultFallback,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CleanInput normalizes a speech-to-text transcript: known
// mistranscriptions are corrected, fillers stripped, whitespace
// collapsed. Safe on empty input.
func (p *Processor) CleanInput(message string) string {
	message = applyCorrections(p.corrections, message)
	return Apply(message, StripFillers, CollapseWhitespace)
}

// ForSpeech converts a response into TTS-ready text. If everything
// sanitizes away, the fallback line is returned so the assistant never
// goes silent.
func (p *Processor) ForSpeech(response string) string {
	out := Apply(response,
		StripEmoji,
		StripMarkdown,
		SpeakableTerms,
		LimitSpokenLength,
		TidyPunctuation,
	)
	if len(strings.TrimSpace(out)) < 3 {
		return p.fallback
	}
	return out
}
