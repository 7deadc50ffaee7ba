package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port      int      `env:"TEST_CFG_PORT" envDefault:"8080"`
	StoreName string   `env:"TEST_CFG_STORE_NAME" envDefault:"Loja"`
	Origins   []string `env:"TEST_CFG_ORIGINS" envSeparator:"," envDefault:"*"`
	Enabled   bool     `env:"TEST_CFG_ENABLED" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "Loja", cfg.StoreName)
	assert.Equal(t, []string{"*"}, cfg.Origins)
	assert.False(t, cfg.Enabled)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_STORE_NAME", "Horizonte")
	t.Setenv("TEST_CFG_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TEST_CFG_ENABLED", "true")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "Horizonte", cfg.StoreName)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	assert.True(t, cfg.Enabled)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg struct {
		Token string `env:"TEST_CFG_REQUIRED_TOKEN,required"`
	}
	assert.Error(t, Load(&cfg))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_DOTENV_A=from-file\nTEST_CFG_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("TEST_CFG_DOTENV_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("TEST_CFG_DOTENV_A") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	assert.Equal(t, "from-file", os.Getenv("TEST_CFG_DOTENV_A"))
	assert.Equal(t, "from-env", os.Getenv("TEST_CFG_DOTENV_B"))
}
