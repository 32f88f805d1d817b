package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SpoolCut/internal/model"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, "spoolcut.yml", `
logging:
  level: debug
  format: console
defaults:
  stockLength: 12000
  kerfWidth: 2.2
  pressureClass: "PN 40"
  weldGap: 2
dimensions:
  tablePath: /etc/spoolcut/dims.toml
server:
  addr: ":9090"
  devMode: true
`)

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "console", conf.Logging.Format)
	assert.Equal(t, 12000.0, conf.Defaults.StockLength)
	assert.Equal(t, 2.2, conf.Defaults.KerfWidth)
	assert.Equal(t, "PN 40", conf.Defaults.PressureClass)
	assert.Equal(t, 2.0, conf.Defaults.WeldGap)
	// Not in the file.
	assert.Equal(t, 300.0, conf.Defaults.MinRemnantLength)
	assert.Equal(t, "/etc/spoolcut/dims.toml", conf.Dimensions.TablePath)
	assert.Equal(t, ":9090", conf.Server.Addr)
	assert.True(t, conf.Server.DevMode)
}

func TestLoadConfigurationNoFile(t *testing.T) {
	conf, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("SPOOLCUT_DEFAULTS_KERFWIDTH", "4.5")
	t.Setenv("SPOOLCUT_SERVER_ADDR", ":7070")

	conf, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, 4.5, conf.Defaults.KerfWidth)
	assert.Equal(t, ":7070", conf.Server.Addr)
}

func TestLoadConfigurationErrors(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := writeConfig(t, "bad.yml", "defaults:\n  pressureClass: PN 99\n")
	_, err = LoadConfiguration(path)
	assert.ErrorContains(t, err, "pressureClass")

	path = writeConfig(t, "zero.yml", "defaults:\n  stockLength: 0\n")
	_, err = LoadConfiguration(path)
	assert.ErrorContains(t, err, "stockLength")
}

func TestApplyToSettings(t *testing.T) {
	conf := Default()
	conf.Defaults.StockLength = 12000
	conf.Defaults.PressureClass = "PN10"

	s := model.DefaultSettings()
	conf.ApplyToSettings(&s)

	assert.Equal(t, 12000.0, s.StockLength)
	assert.Equal(t, model.PN10, s.PressureClass)

	conf.Defaults.PressureClass = "bogus"
	conf.ApplyToSettings(&s)
	assert.Equal(t, model.PN10, s.PressureClass)
}

func TestSettingsMatchesModelDefaults(t *testing.T) {
	assert.Equal(t, model.DefaultSettings(), Default().Settings())
}
