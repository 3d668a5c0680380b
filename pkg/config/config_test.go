package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Empty(t, cfg.PrivateKey)
	assert.False(t, cfg.IncludeContent)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.yaml")
	content := `
private_key: aabbcc
default_agent_id: agent-1
include_content: true
log_level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "aabbcc", cfg.PrivateKey)
	assert.Equal(t, "agent-1", cfg.DefaultAgentID)
	assert.True(t, cfg.IncludeContent)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("private_key: from-file\n"), 0o600))

	t.Setenv("TRUST_RECEIPTS_PRIVATE_KEY", "from-env")
	t.Setenv("TRUST_RECEIPTS_AGENT_ID", "agent-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.PrivateKey)
	assert.Equal(t, "agent-env", cfg.DefaultAgentID)
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("private_key: [unclosed"), 0o600))
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
