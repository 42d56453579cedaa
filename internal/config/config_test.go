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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: fraude
  password: secret
  name: fraude_incapacidades
auth:
  apiKeys:
    acme: key-acme
scoring:
  high: 25
  medium: 8
  forensicAlert: 5
  forensicCap: 15
  highRiskMin: 50
  suspiciousMin: 25
checkTimeoutSeconds: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "key-acme", cfg.Auth.APIKeys["acme"])
	assert.Equal(t, 30, cfg.CheckTimeoutSeconds)
	assert.Contains(t, cfg.PostgresDSN(), "host=db.internal")
	assert.Contains(t, cfg.MySQLDSN(), "@tcp(db.internal:5432)/fraude_incapacidades")

	w, err := cfg.Weights()
	require.NoError(t, err)
	assert.Equal(t, 25, w.High)
	assert.Equal(t, 50, w.HighRiskMin)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWeightsDefaultWhenUnset(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)

	w, err := cfg.Weights()
	require.NoError(t, err)
	assert.Equal(t, 30, w.High)
	assert.Equal(t, 60, w.HighRiskMin)
}

func TestWeightsRejectBrokenPolicy(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
scoring:
  high: 10
  medium: 20
  forensicAlert: 5
  forensicCap: 20
  highRiskMin: 60
  suspiciousMin: 30
`))
	require.NoError(t, err)

	_, err = cfg.Weights()
	require.Error(t, err)
}

func TestReferenceTableOverrides(t *testing.T) {
	t.Run("embedded defaults load", func(t *testing.T) {
		cfg := &Config{}
		table, err := cfg.CIE10Table()
		require.NoError(t, err)
		assert.Greater(t, table.Len(), 50)

		reg, err := cfg.EPSRegistry()
		require.NoError(t, err)
		assert.Greater(t, reg.Len(), 10)
	})

	t.Run("cie10 override file replaces the table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cie10.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
A00:
  description: Cólera
  minDays: 7
  maxDays: 14
`), 0o600))

		cfg := &Config{}
		cfg.Tables.CIE10Path = path
		table, err := cfg.CIE10Table()
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("broken override aborts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cie10.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
A00:
  description: Cólera
  minDays: 14
  maxDays: 7
`), 0o600))

		cfg := &Config{}
		cfg.Tables.CIE10Path = path
		_, err := cfg.CIE10Table()
		require.Error(t, err)
	})

	t.Run("missing override file aborts", func(t *testing.T) {
		cfg := &Config{}
		cfg.Tables.EPSPath = filepath.Join(t.TempDir(), "nope.yaml")
		_, err := cfg.EPSRegistry()
		require.Error(t, err)
	})
}
