package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsDefaultWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.BaseSeed = 99
	cfg.WorkerDegree = 6

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), loaded.BaseSeed)
	assert.Equal(t, 6, loaded.WorkerDegree)
}

func TestGAConfigCarriesPalletExtents(t *testing.T) {
	cfg := Default()
	gaCfg := cfg.GAConfig()
	assert.Equal(t, cfg.PalletLength, gaCfg.PalletLength)
	assert.Equal(t, 100, gaCfg.PopulationSize)
}

func TestBatchOptionsCarriesWorkerDegree(t *testing.T) {
	cfg := Default()
	opts := cfg.BatchOptions()
	assert.Equal(t, cfg.WorkerDegree, opts.Degree)
	assert.Equal(t, cfg.BaseSeed, opts.BaseSeed)
}
