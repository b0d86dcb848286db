package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Tax.DefaultRate = "12.5"
	cfg.Tax.Currency = "USD"
	cfg.Display.Pretty = true
	cfg.Log.Format = "json"

	path := filepath.Join(t.TempDir(), "taxdesk.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "15", cfg.Tax.DefaultRate)
	assert.Equal(t, "INR", cfg.Tax.Currency)
	assert.False(t, cfg.Display.Pretty)
	assert.Equal(t, "auto", cfg.Display.Style)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tax:\n  currency: usd\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Tax.Currency)
	assert.Equal(t, "15", cfg.Tax.DefaultRate)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad rate":    "tax:\n  default_rate: fifteen\n",
		"no currency": "tax:\n  currency: \"\"\n",
		"bad format":  "log:\n  format: xml\n",
		"bad yaml":    "tax: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "taxdesk.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxdesk.yaml")
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, `default_rate: "15"`)
	assert.Contains(t, contents, "currency: INR")
	assert.Contains(t, contents, "pretty: false")
	assert.Contains(t, contents, "format: text")
}
