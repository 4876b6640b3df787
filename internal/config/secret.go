package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel literals recognized in mailer credential fields. A credential set
// to its sentinel is resolved from the matching environment variable instead
// of being used literally.
const (
	SentinelUsername = "env_mailer_username"
	SentinelPassword = "env_mailer_password"
)

// Secret is a mailer credential that is either a literal string or a
// reference to an environment variable. References are resolved on every
// Resolve call so a rotated environment is observed by subsequent sends
// within the same process.
type Secret struct {
	literal string
	envVar  string
}

// LiteralSecret returns a Secret holding a fixed value.
func LiteralSecret(v string) Secret { return Secret{literal: v} }

// EnvSecret returns a Secret resolved from the named environment variable.
func EnvSecret(name string) Secret { return Secret{envVar: name} }

// Resolve returns the credential value close to the moment of use. For
// environment-backed secrets this is a fresh lookup, never a cached value.
func (s Secret) Resolve() string {
	if s.envVar != "" {
		return os.Getenv(s.envVar)
	}
	return s.literal
}

// IsZero reports whether the secret carries neither a literal nor an
// environment reference.
func (s Secret) IsZero() bool { return s.literal == "" && s.envVar == "" }

// UnmarshalYAML maps a sentinel literal to its environment reference and
// keeps every other string as-is. Config files inherited from older
// deployments wrap the sentinel in an extra pair of single quotes; both
// spellings are accepted.
func (s *Secret) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	trimmed := raw
	if strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") && len(trimmed) >= 2 {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	switch trimmed {
	case SentinelUsername, SentinelPassword:
		*s = EnvSecret(strings.ToUpper(trimmed))
	default:
		*s = LiteralSecret(raw)
	}
	return nil
}

// String masks the value so secrets never leak through logging or fmt
// verbs.
func (s Secret) String() string {
	if s.envVar != "" {
		return "${" + s.envVar + "}"
	}
	if s.literal == "" {
		return ""
	}
	return "REDACTED"
}
