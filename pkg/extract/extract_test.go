package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/voicegate/pkg/extract"
)

func TestExtract(t *testing.T) {
	t.Parallel()
	ex := extract.New()

	t.Run("normalizes header names", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(map[string]string{
			"User-Agent":   "Siri/iPhone15,2 iOS/17.0",
			" X-Device-Id": "iPhone15,2",
		}, "hello", "alice")
		require.NoError(t, err)
		assert.Equal(t, "Siri/iPhone15,2 iOS/17.0", bundle.Headers["user-agent"])
		assert.Equal(t, "iPhone15,2", bundle.Headers["x-device-id"])
		assert.Equal(t, "alice", bundle.DeclaredUserID)
	})

	t.Run("extracts bearer token", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(map[string]string{
			"Authorization": "Bearer abc.def",
		}, "", "")
		require.NoError(t, err)
		assert.Equal(t, "abc.def", bundle.Token)
	})

	t.Run("extracts session token header", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(map[string]string{
			"X-Session-Token": "xyz",
		}, "", "")
		require.NoError(t, err)
		assert.Equal(t, "xyz", bundle.Token)
	})

	t.Run("authorization wins over session token header", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(map[string]string{
			"Authorization":   "Bearer primary",
			"X-Session-Token": "secondary",
		}, "", "")
		require.NoError(t, err)
		assert.Equal(t, "primary", bundle.Token)
	})

	t.Run("rejects header injection in value", func(t *testing.T) {
		t.Parallel()
		_, err := ex.Extract(map[string]string{
			"X-Evil": "a\r\nSet-Cookie: pwned",
		}, "hello", "alice")
		require.Error(t, err)
		assert.ErrorIs(t, err, extract.ErrHeaderInjection)
		assert.ErrorIs(t, err, extract.ErrMalformedInput)
	})

	t.Run("rejects header injection in name", func(t *testing.T) {
		t.Parallel()
		_, err := ex.Extract(map[string]string{
			"X-Evil\nHost": "value",
		}, "hello", "alice")
		assert.ErrorIs(t, err, extract.ErrMalformedInput)
	})

	t.Run("rejects non-printable user id", func(t *testing.T) {
		t.Parallel()
		_, err := ex.Extract(nil, "hello", "ali\x00ce")
		assert.ErrorIs(t, err, extract.ErrInvalidUserID)
	})

	t.Run("empty user id allowed", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(nil, "hello", "")
		require.NoError(t, err)
		assert.Empty(t, bundle.DeclaredUserID)
	})
}

func TestSanitizeMessage(t *testing.T) {
	t.Parallel()
	ex := extract.New()

	t.Run("strips control characters", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(nil, "hap\x00py \x07birthday", "u")
		require.NoError(t, err)
		assert.Equal(t, "happy birthday", bundle.Message)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		bundle, err := ex.Extract(nil, "  over and out  ", "u")
		require.NoError(t, err)
		assert.Equal(t, "over and out", bundle.Message)
	})

	t.Run("truncates over-length message", func(t *testing.T) {
		t.Parallel()
		short := extract.New(extract.WithMaxMessageLength(10))
		bundle, err := short.Extract(nil, strings.Repeat("x", 100), "u")
		require.NoError(t, err)
		assert.Len(t, bundle.Message, 10)
	})

	t.Run("truncates at rune boundary", func(t *testing.T) {
		t.Parallel()
		short := extract.New(extract.WithMaxMessageLength(3))
		bundle, err := short.Extract(nil, "héllo", "u")
		require.NoError(t, err)
		assert.Equal(t, "hél", bundle.Message)
	})
}
