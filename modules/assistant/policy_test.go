package assistant_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/voicegate/modules/assistant"
	"github.com/dmitrymomot/voicegate/pkg/access"
	"github.com/dmitrymomot/voicegate/pkg/authn"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPolicy(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()
		path := writePolicy(t, `
master_user_id: buddy
passphrase: open sesame
start_phrases: [open sesame]
end_phrases: [over and out, goodbye buddy]
trusted_devices: ["iPhone*", "*iPad*"]
grants:
  standard:
    capabilities: [session.manage]
    inherits: [guest]
  guest:
    capabilities: [chat.general]
`)

		p, err := assistant.LoadPolicy(path)
		require.NoError(t, err)
		assert.Equal(t, "buddy", p.MasterUserID)
		assert.Equal(t, "open sesame", p.Passphrase)
		assert.Equal(t, []string{"over and out", "goodbye buddy"}, p.EndPhrases)
		assert.Len(t, p.TrustedDevices, 2)

		grants := p.AccessGrants()
		require.NotNil(t, grants)
		assert.Equal(t, []access.Capability{"session.manage"}, grants[authn.RoleStandard].Capabilities)
		assert.Equal(t, []authn.Role{authn.RoleGuest}, grants[authn.RoleStandard].Inherits)
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		t.Parallel()
		path := writePolicy(t, "master_user_id: buddy\npass_phrase: typo\n")
		_, err := assistant.LoadPolicy(path)
		assert.ErrorIs(t, err, assistant.ErrInvalidPolicy)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := assistant.LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, assistant.ErrInvalidPolicy)
	})

	t.Run("no grants falls back to nil", func(t *testing.T) {
		t.Parallel()
		path := writePolicy(t, "master_user_id: buddy\n")
		p, err := assistant.LoadPolicy(path)
		require.NoError(t, err)
		assert.Nil(t, p.AccessGrants())
	})
}
