package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/voicegate/pkg/access"
	"github.com/dmitrymomot/voicegate/pkg/authn"
)

func newController(t *testing.T) *access.Controller {
	t.Helper()
	ctrl, err := access.NewController(access.DefaultGrants())
	require.NoError(t, err)
	return ctrl
}

func TestDefaultGateTable(t *testing.T) {
	t.Parallel()
	ctrl := newController(t)

	cases := []struct {
		role       authn.Role
		capability access.Capability
		allowed    bool
	}{
		{authn.RoleGuest, access.CapabilityGeneralChat, true},
		{authn.RoleGuest, access.CapabilitySessionManage, false},
		{authn.RoleGuest, access.CapabilityAdminStatus, false},
		{authn.RoleStandard, access.CapabilityGeneralChat, true},
		{authn.RoleStandard, access.CapabilitySessionManage, true},
		{authn.RoleStandard, access.CapabilityAdminLogs, false},
		{authn.RoleMaster, access.CapabilityGeneralChat, true},
		{authn.RoleMaster, access.CapabilitySessionManage, true},
		{authn.RoleMaster, access.CapabilityAdminStatus, true},
		{authn.RoleMaster, access.CapabilityAdminLogs, true},
	}

	for _, tc := range cases {
		err := ctrl.Can(tc.role, tc.capability)
		if tc.allowed {
			assert.NoError(t, err, "%s / %s", tc.role, tc.capability)
		} else {
			assert.ErrorIs(t, err, access.ErrAccessDenied, "%s / %s", tc.role, tc.capability)
		}
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	ctrl := newController(t)

	t.Run("guest verdict limited to general chat", func(t *testing.T) {
		t.Parallel()
		guest := authn.Verdict{Authenticated: false, Role: authn.RoleGuest, UserID: "visitor"}
		assert.True(t, ctrl.Check(guest, access.CapabilityGeneralChat))
		assert.False(t, ctrl.Check(guest, access.CapabilityAdminStatus))
	})

	t.Run("master verdict passes admin gates", func(t *testing.T) {
		t.Parallel()
		master := authn.Verdict{Authenticated: true, Role: authn.RoleMaster, UserID: "buddy"}
		assert.True(t, ctrl.Check(master, access.CapabilityAdminLogs))
	})

	t.Run("unknown role denied", func(t *testing.T) {
		t.Parallel()
		odd := authn.Verdict{Authenticated: false, Role: authn.RoleUnknown}
		assert.False(t, ctrl.Check(odd, access.CapabilityGeneralChat))
		assert.ErrorIs(t, ctrl.Can(authn.RoleUnknown, access.CapabilityGeneralChat), access.ErrInvalidRole)
	})
}

func TestWildcardCapabilities(t *testing.T) {
	t.Parallel()

	ctrl, err := access.NewController(map[authn.Role]access.Grant{
		"ops": {Capabilities: []access.Capability{"admin.*"}},
	})
	require.NoError(t, err)

	assert.NoError(t, ctrl.Can("ops", access.CapabilityAdminStatus))
	assert.NoError(t, ctrl.Can("ops", "admin.whitelist"))
	// The wildcard covers the segment below it, not the bare prefix.
	assert.ErrorIs(t, ctrl.Can("ops", "admin"), access.ErrAccessDenied)
	assert.ErrorIs(t, ctrl.Can("ops", access.CapabilityGeneralChat), access.ErrAccessDenied)
}

func TestInheritance(t *testing.T) {
	t.Parallel()

	grants := map[authn.Role]access.Grant{
		"base": {Capabilities: []access.Capability{"chat.general"}},
		"mid":  {Capabilities: []access.Capability{"session.manage"}, Inherits: []authn.Role{"base"}},
		"top":  {Capabilities: []access.Capability{"admin.*"}, Inherits: []authn.Role{"mid", "base"}},
	}
	ctrl, err := access.NewController(grants)
	require.NoError(t, err)

	assert.NoError(t, ctrl.Can("top", "chat.general"))
	assert.NoError(t, ctrl.Can("top", "session.manage"))
	assert.NoError(t, ctrl.Can("mid", "chat.general"))
	assert.ErrorIs(t, ctrl.Can("base", "session.manage"), access.ErrAccessDenied)

	caps := ctrl.Capabilities("top")
	assert.Contains(t, caps, "chat.general")
	assert.Contains(t, caps, "admin.*")
}
