package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_ASAAS_KEY", "key-from-env")
	t.Setenv("TEST_WEBHOOK_SECRET", "secret-from-env")

	path := writeConfigFile(t, `
service:
  name: payment-service
  asaas:
    base_url: https://api-sandbox.asaas.com/v3
    api_key: ${TEST_ASAAS_KEY}
    webhook_secret: ${TEST_WEBHOOK_SECRET}
    timeout: 10s
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cfg.Service.Asaas.APIKey)
	assert.Equal(t, "secret-from-env", cfg.Service.Asaas.WebhookSecret)
	assert.Equal(t, "https://api-sandbox.asaas.com/v3", cfg.Service.Asaas.BaseURL)
}

func TestLoadConfig_UnsetPlaceholderExpandsEmpty(t *testing.T) {
	os.Unsetenv("TEST_UNSET_SECRET")

	path := writeConfigFile(t, `
service:
  asaas:
    webhook_secret: ${TEST_UNSET_SECRET}
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()

	// An unset variable must not leak the literal placeholder as a secret.
	require.NoError(t, err)
	assert.Empty(t, cfg.Service.Asaas.WebhookSecret)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}
