package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	t.Setenv("A", "")
	t.Setenv("B", "")
	t.Setenv("C", "")

	path := writeDotEnv(t, `
# comment

A=one
export B=two
C="three"
`)

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("A"); got != "one" {
		t.Fatalf("A=%q, want %q", got, "one")
	}
	if got := os.Getenv("B"); got != "two" {
		t.Fatalf("B=%q, want %q", got, "two")
	}
	if got := os.Getenv("C"); got != "three" {
		t.Fatalf("C=%q, want %q", got, "three")
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("KEEP", "already")

	path := writeDotEnv(t, "KEEP=fromfile\n")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("KEEP"); got != "already" {
		t.Fatalf("KEEP=%q, want %q", got, "already")
	}
}

func TestLoadDotEnv_StripsSingleQuotes(t *testing.T) {
	t.Setenv("Q", "")

	path := writeDotEnv(t, "Q='hello world'\n")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("Q"); got != "hello world" {
		t.Fatalf("Q=%q, want %q", got, "hello world")
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestParse_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "DB_PATH", "PORT", "METRICS_ENABLED", "ENGINE_KERF", "ENGINE_TAX_RATE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.False(t, cfg.Dev())
	assert.Equal(t, "./dev.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 0.125, cfg.Engine.Kerf)
	assert.Equal(t, 5.0, cfg.Engine.RoundTo)
}

func TestParse_EngineOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("ENGINE_KERF", "0.25")
	t.Setenv("ENGINE_TAX_RATE", "0.07")
	t.Setenv("ENGINE_ALLOW_ROTATION", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.Dev())
	assert.Equal(t, 0.25, cfg.Engine.Kerf)
	assert.Equal(t, 0.07, cfg.Engine.TaxRate)
	assert.True(t, cfg.Engine.AllowRotation)
}

func TestParse_InvalidValue(t *testing.T) {
	t.Setenv("ENGINE_KERF", "wide")

	_, err := Parse()
	assert.Error(t, err)
}
