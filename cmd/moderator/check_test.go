package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moderatorio/moderator/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moderator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCmdValid(t *testing.T) {
	path := writeConfigFile(t, testConfigYAML)

	cmd := checkCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	require.NoError(t, cmd.Flags().Set("config", path))

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Contains(t, out.String(), "OK: 1 content type(s)")
	assert.Contains(t, out.String(), ":33123/moderator")
}

func TestCheckCmdInvalid(t *testing.T) {
	path := writeConfigFile(t, `
content_types:
  post: {}
editors: [editor@example.com]
mail_origin: moderator@example.com
`)

	cmd := checkCmd()
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Flags().Set("config", path))

	err := cmd.RunE(cmd, nil)
	require.ErrorIs(t, err, config.ErrNoAuthors)
}
