package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSecretResolve(t *testing.T) {
	t.Run("sentinel resolves from environment", func(t *testing.T) {
		t.Setenv("ENV_MAILER_USERNAME", "foobar")
		var s Secret
		require.NoError(t, yaml.Unmarshal([]byte(`env_mailer_username`), &s))
		assert.Equal(t, "foobar", s.Resolve())
	})

	t.Run("literal ignores environment", func(t *testing.T) {
		t.Setenv("ENV_MAILER_USERNAME", "foobar")
		var s Secret
		require.NoError(t, yaml.Unmarshal([]byte(`bob`), &s))
		assert.Equal(t, "bob", s.Resolve())
	})

	t.Run("quoted sentinel accepted", func(t *testing.T) {
		t.Setenv("ENV_MAILER_PASSWORD", "hunter2")
		var s Secret
		require.NoError(t, yaml.Unmarshal([]byte(`"'env_mailer_password'"`), &s))
		assert.Equal(t, "hunter2", s.Resolve())
	})

	t.Run("resolution is late bound", func(t *testing.T) {
		t.Setenv("ENV_MAILER_PASSWORD", "first")
		var s Secret
		require.NoError(t, yaml.Unmarshal([]byte(`env_mailer_password`), &s))
		assert.Equal(t, "first", s.Resolve())

		t.Setenv("ENV_MAILER_PASSWORD", "second")
		assert.Equal(t, "second", s.Resolve())
	})
}

func TestSecretString(t *testing.T) {
	assert.Equal(t, "REDACTED", LiteralSecret("topsecret").String())
	assert.Equal(t, "${ENV_MAILER_USERNAME}", EnvSecret("ENV_MAILER_USERNAME").String())
	assert.Equal(t, "", Secret{}.String())
}

func TestSecretIsZero(t *testing.T) {
	assert.True(t, Secret{}.IsZero())
	assert.False(t, LiteralSecret("x").IsZero())
	assert.False(t, EnvSecret("X").IsZero())
}
