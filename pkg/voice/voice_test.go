package voice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/voicegate/pkg/voice"
)

func TestCleanInput(t *testing.T) {
	t.Parallel()
	p := voice.NewProcessor()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"passphrase with trailing name", "Happy Birthday Buddy", "happy birthday"},
		{"reported passphrase", "say happy birthday", "happy birthday"},
		{"fillers removed", "um tell me uh the weather", "tell me the weather"},
		{"leading discourse marker", "okay, tell me a joke", "tell me a joke"},
		{"whitespace collapsed", "hello \n\t  there", "hello there"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := p.CleanInput(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanInputCustomCorrections(t *testing.T) {
	t.Parallel()
	p := voice.NewProcessor(voice.WithCorrections(map[string]string{
		"open sesame seed": "open sesame",
	}))

	assert.Equal(t, "open sesame", p.CleanInput("Open Sesame Seed"))
}

func TestForSpeech(t *testing.T) {
	t.Parallel()
	p := voice.NewProcessor()

	t.Run("strips emoji", func(t *testing.T) {
		t.Parallel()
		got := p.ForSpeech("Session started! 🎉 Ready to help 🚀")
		assert.NotContains(t, got, "🎉")
		assert.NotContains(t, got, "🚀")
		assert.Contains(t, got, "Session started!")
	})

	t.Run("flattens markdown", func(t *testing.T) {
		t.Parallel()
		got := p.ForSpeech("**Important**: use the `config` file.\n# Setup\n- first step\n- second step")
		assert.NotContains(t, got, "*")
		assert.NotContains(t, got, "`")
		assert.NotContains(t, got, "#")
		assert.Contains(t, got, "Important")
		// List items become sentences, so the tidy pass capitalizes them.
		assert.Contains(t, got, "First step")
	})

	t.Run("removes code blocks", func(t *testing.T) {
		t.Parallel()
		got := p.ForSpeech("Run this:\n```\nrm -rf /tmp/cache\n```\nthen retry.")
		assert.NotContains(t, got, "rm -rf")
	})

	t.Run("speakable initialisms", func(t *testing.T) {
		t.Parallel()
		got := p.ForSpeech("The API returned JSON over HTTP.")
		assert.Contains(t, got, "A P I")
		assert.Contains(t, got, "H T T P")
	})

	t.Run("numbers read naturally", func(t *testing.T) {
		t.Parallel()
		got := p.ForSpeech("Battery at 80% and the fare is $12.")
		assert.Contains(t, got, "80 percent")
		assert.Contains(t, got, "12 dollars")
	})

	t.Run("long responses truncated at sentences", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("This sentence has exactly six words. ", 60)
		got := p.ForSpeech(long)
		assert.LessOrEqual(t, len(strings.Fields(got)), 210)
		assert.True(t, strings.HasSuffix(got, "."))
	})

	t.Run("empty response falls back", func(t *testing.T) {
		t.Parallel()
		got := p.ForSpeech("🎉🎉🎉")
		assert.Equal(t, "I'm here and ready to assist you. How can I help?", got)
	})

	t.Run("custom fallback", func(t *testing.T) {
		t.Parallel()
		custom := voice.NewProcessor(voice.WithFallback("Standing by."))
		assert.Equal(t, "Standing by.", custom.ForSpeech(""))
	})
}

func TestTidyPunctuation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Wait. What?", voice.TidyPunctuation("wait... what???"))
	assert.Equal(t, "One. Two.", voice.TidyPunctuation("one. two."))
}
