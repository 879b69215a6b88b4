package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlesInsomnes/Elementary-MC-model/mc"
)

const scenarioYAML = `
scenarios:
  fiber-growth:
    mode: single
    nx: 16
    ny: 16
    nz: 64
    ballistic_x: 0.3
    ballistic_y: 0.3
    steps: 50000
  shared-reservoir:
    mode: ensemble
    clusters: 8
    reservoir_atoms: 5000
    disconnection: dissolve-fragment
`

func writeScenarioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))
	return path
}

func TestLoadScenario_PartialOverridesDefaults(t *testing.T) {
	cfg, err := LoadScenario(writeScenarioFile(t), "fiber-growth")
	require.NoError(t, err)

	// Fields named in the preset.
	assert.Equal(t, mc.ModeSingle, cfg.Mode)
	assert.Equal(t, 64, cfg.NZ)
	assert.Equal(t, 0.3, cfg.BallisticX)
	assert.Equal(t, int64(50000), cfg.Steps)

	// Everything else keeps its default.
	def := mc.DefaultConfig()
	assert.Equal(t, def.KT, cfg.KT)
	assert.Equal(t, def.Nu, cfg.Nu)
	assert.Equal(t, def.Seed, cfg.Seed)
	assert.Equal(t, def.Disconnection, cfg.Disconnection)
}

func TestLoadScenario_EnsemblePreset(t *testing.T) {
	cfg, err := LoadScenario(writeScenarioFile(t), "shared-reservoir")
	require.NoError(t, err)

	assert.Equal(t, mc.ModeEnsemble, cfg.Mode)
	assert.Equal(t, 8, cfg.Clusters)
	assert.Equal(t, int64(5000), cfg.ReservoirAtoms)
	assert.Equal(t, mc.DisconnectFragment, cfg.Disconnection)
	require.NoError(t, cfg.Validate())
}

func TestLoadScenario_Errors(t *testing.T) {
	path := writeScenarioFile(t)

	_, err := LoadScenario(path, "")
	assert.ErrorContains(t, err, "scenario name required")

	_, err = LoadScenario(path, "no-such-preset")
	assert.ErrorContains(t, err, "not found")

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"), "fiber-growth")
	assert.ErrorContains(t, err, "read scenario file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scenarios: [not, a, map]\n  broken"), 0o644))
	_, err = LoadScenario(bad, "fiber-growth")
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := mc.DefaultConfig()
	require.NoError(t, runCmd.Flags().Set("nz", "99"))
	require.NoError(t, runCmd.Flags().Set("ballistic-z", "0.25"))
	defer func() {
		// Reset shared flag state for other tests.
		require.NoError(t, runCmd.Flags().Set("nz", "40"))
		require.NoError(t, runCmd.Flags().Set("ballistic-z", "0"))
	}()

	applyFlagOverrides(runCmd, cfg)

	assert.Equal(t, 99, cfg.NZ)
	assert.Equal(t, 0.25, cfg.BallisticZ)
	// Flags never touched stay on scenario/default values.
	assert.Equal(t, mc.DefaultConfig().NX, cfg.NX)
}
