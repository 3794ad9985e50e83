package assistant

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/voicegate/pkg/access"
	"github.com/dmitrymomot/voicegate/pkg/authn"
)

// ErrInvalidPolicy indicates the policy file could not be read or parsed.
var ErrInvalidPolicy = errors.New("assistant: invalid policy file")

// Policy is the optional YAML override for identity and access
// settings. Fields left empty fall back to the environment config.
//
//	master_user_id: buddy
//	passphrase: happy birthday
//	start_phrases: [happy birthday]
//	end_phrases: [over and out, goodbye buddy]
//	trusted_devices: ["iPhone*", "*iOS*"]
//	grants:
//	  standard:
//	    capabilities: [session.manage]
//	    inherits: [guest]
type Policy struct {
	MasterUserID   string                 `yaml:"master_user_id"`
	Passphrase     string                 `yaml:"passphrase"`
	StartPhrases   []string               `yaml:"start_phrases"`
	EndPhrases     []string               `yaml:"end_phrases"`
	TrustedDevices []string               `yaml:"trusted_devices"`
	Grants         map[string]PolicyGrant `yaml:"grants"`
}

// PolicyGrant mirrors access.Grant in YAML form.
type PolicyGrant struct {
	Capabilities []string `yaml:"capabilities"`
	Inherits     []string `yaml:"inherits"`
}

// LoadPolicy reads and strictly parses the policy file at path.
// Unknown keys are rejected so a typo cannot silently weaken access
// rules.
func LoadPolicy(path string) (Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return p, nil
}

// AccessGrants converts the YAML grants into the controller's form.
// Returns nil when the file declares none, letting the caller fall back
// to access.DefaultGrants.
func (p Policy) AccessGrants() map[authn.Role]access.Grant {
	if len(p.Grants) == 0 {
		return nil
	}
	out := make(map[authn.Role]access.Grant, len(p.Grants))
	for role, g := range p.Grants {
		caps := make([]access.Capability, 0, len(g.Capabilities))
		for _, c := range g.Capabilities {
			caps = append(caps, access.Capability(c))
		}
		inherits := make([]authn.Role, 0, len(g.Inherits))
		for _, r := range g.Inherits {
			inherits = append(inherits, authn.Role(r))
		}
		out[authn.Role(role)] = access.Grant{Capabilities: caps, Inherits: inherits}
	}
	return out
}
