package access

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrymomot/voicegate/pkg/authn"
)

// Capability names a gated operation class.
type Capability string

const (
	// CapabilityGeneralChat covers ordinary conversational requests.
	CapabilityGeneralChat Capability = "chat.general"

	// CapabilitySessionManage covers starting and ending sessions.
	CapabilitySessionManage Capability = "session.manage"

	// CapabilityAdminStatus covers the security status surface.
	CapabilityAdminStatus Capability = "admin.status"

	// CapabilityAdminLogs covers the authentication audit log surface.
	CapabilityAdminLogs Capability = "admin.logs"
)

// maxInheritanceDepth bounds grant resolution; anything deeper is a
// configuration error masquerading as a hierarchy.
const maxInheritanceDepth = 10

// Grant is one role's capability set. Inherited roles contribute their
// resolved capabilities transitively.
type Grant struct {
	Capabilities []Capability
	Inherits     []authn.Role
}

// DefaultGrants is the gate table from the product contract: guests chat,
// standard users additionally manage sessions, the master holds everything
// including admin surfaces.
func DefaultGrants() map[authn.Role]Grant {
	return map[authn.Role]Grant{
		authn.RoleGuest: {
			Capabilities: []Capability{CapabilityGeneralChat},
		},
		authn.RoleStandard: {
			Capabilities: []Capability{CapabilitySessionManage},
			Inherits:     []authn.Role{authn.RoleGuest},
		},
		authn.RoleMaster: {
			Capabilities: []Capability{"admin.*"},
			Inherits:     []authn.Role{authn.RoleStandard},
		},
	}
}

// Controller answers allow/deny for verdict+capability pairs. The resolved
// grant table is immutable after construction and safe for concurrent use.
type Controller struct {
	roleCapabilities map[authn.Role][]string
}

// NewController resolves the grant table, expanding inheritance up front so
// runtime checks are map lookups. It fails on circular inheritance.
func NewController(grants map[authn.Role]Grant) (*Controller, error) {
	resolved := make(map[authn.Role][]string, len(grants))
	for role := range grants {
		caps, err := resolve(role, grants, map[authn.Role]bool{}, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: role %q", err, role)
		}
		sort.Strings(caps)
		resolved[role] = dedupe(caps)
	}
	return &Controller{roleCapabilities: resolved}, nil
}

// Check is the transport-facing form: it reduces a verdict to its role and
// reports the gate decision. Unauthenticated verdicts carry RoleGuest and
// are gated exactly like any other role.
func (c *Controller) Check(verdict authn.Verdict, capability Capability) bool {
	return c.Can(verdict.Role, capability) == nil
}

// Can reports why a role may not use a capability: ErrInvalidRole for a
// role with no grants, ErrAccessDenied when the capability is not held.
func (c *Controller) Can(role authn.Role, capability Capability) error {
	caps, ok := c.roleCapabilities[role]
	if !ok {
		return ErrInvalidRole
	}
	for _, held := range caps {
		if capabilityMatches(held, string(capability)) {
			return nil
		}
	}
	return ErrAccessDenied
}

// Capabilities returns the resolved capability list for a role, for
// introspection by admin surfaces.
func (c *Controller) Capabilities(role authn.Role) []string {
	caps := c.roleCapabilities[role]
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}

// capabilityMatches supports exact names and trailing segment wildcards:
// "admin.*" matches "admin.status" but not "admin" itself.
func capabilityMatches(held, requested string) bool {
	if held == requested || held == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(held, ".*"); ok {
		return strings.HasPrefix(requested, prefix+".")
	}
	return false
}

func resolve(role authn.Role, grants map[authn.Role]Grant, visited map[authn.Role]bool, depth int) ([]string, error) {
	if depth > maxInheritanceDepth {
		return nil, ErrCircularInheritance
	}
	if visited[role] {
		// Already contributed on another branch; a true cycle is caught by
		// the depth bound.
		return nil, nil
	}
	visited[role] = true

	grant, ok := grants[role]
	if !ok {
		return nil, nil
	}

	caps := make([]string, 0, len(grant.Capabilities))
	for _, c := range grant.Capabilities {
		caps = append(caps, string(c))
	}
	for _, parent := range grant.Inherits {
		inherited, err := resolve(parent, grants, visited, depth+1)
		if err != nil {
			return nil, err
		}
		caps = append(caps, inherited...)
	}
	return caps, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}
