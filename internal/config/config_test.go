package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
house:
  name: House A
  power_matrix_file: power.csv
  labels_file: labels.csv
tariff_file: tariffs.json
tariff_name: Economy_7
constraints_file: constraints.json
output:
  dir: out
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "House A", cfg.House.Name)
	assert.Equal(t, "Economy_7", cfg.TariffName)
	assert.Equal(t, "out", cfg.Output.Dir)
}

func TestLoad_RejectsMissingRequiredField(t *testing.T) {
	path := writeConfig(t, `
house:
  name: House A
  power_matrix_file: power.csv
  labels_file: labels.csv
tariff_file: tariffs.json
constraints_file: constraints.json
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnchecked_DefaultsOutputDir(t *testing.T) {
	path := writeConfig(t, `
house:
  name: House A
`)
	cfg, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Output.Dir)
}

func TestValidate_NilConfig(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
