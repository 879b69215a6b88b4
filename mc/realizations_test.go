package mc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlesInsomnes/Elementary-MC-model/mc/record"
)

func realizationConfig() *Config {
	cfg := DefaultConfig()
	cfg.NX, cfg.NY, cfg.NZ = 8, 8, 8
	cfg.SeedDX, cfg.SeedDY, cfg.SeedDZ = 3, 3, 3
	cfg.Steps = 2000
	cfg.SampleEvery = 500
	return cfg
}

func TestRunRealizations_CountValidation(t *testing.T) {
	_, err := RunRealizations(realizationConfig(), 0)
	assert.Error(t, err)
}

func TestRunRealizations_IndependentSeeds(t *testing.T) {
	summaries, err := RunRealizations(realizationConfig(), 4)
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	seeds := make(map[int64]bool)
	for _, s := range summaries {
		assert.False(t, seeds[s.Seed], "realization seeds must be distinct")
		seeds[s.Seed] = true
	}
}

// The first realization keeps the master seed, so a batch of one reproduces
// a plain run exactly.
func TestRunRealizations_FirstMatchesPlainRun(t *testing.T) {
	cfg := realizationConfig()

	sim, err := NewSimulation(cfg)
	require.NoError(t, err)
	_, err = sim.Run()
	require.NoError(t, err)

	summaries, err := RunRealizations(realizationConfig(), 3)
	require.NoError(t, err)
	assert.Equal(t, sim.Summary(), summaries[0])
}

func TestRunRealizations_InvalidConfigSurfaces(t *testing.T) {
	cfg := realizationConfig()
	cfg.Nu = 0
	_, err := RunRealizations(cfg, 2)
	assert.Error(t, err)
}

func TestAggregate(t *testing.T) {
	summaries := []record.Summary{
		{LiveClusters: 2, MeanLength: 10, MeanAspectRatio: 2.0, SurfaceArea: 100},
		{LiveClusters: 4, MeanLength: 14, MeanAspectRatio: 4.0, SurfaceArea: 300},
	}
	agg := Aggregate(summaries)

	assert.Equal(t, 2, agg.Realizations)
	assert.InDelta(t, 3.0, agg.MeanLiveClusters, 1e-12)
	assert.InDelta(t, 12.0, agg.MeanLength, 1e-12)
	assert.InDelta(t, 3.0, agg.MeanAspectRatio, 1e-12)
	assert.InDelta(t, 200.0, agg.MeanSurfaceArea, 1e-12)
	assert.Greater(t, agg.StdevLength, 0.0)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)
	assert.Equal(t, 0, agg.Realizations)
	assert.Equal(t, 0.0, agg.MeanLength)
}
