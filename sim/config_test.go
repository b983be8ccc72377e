package sim_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/shiftri/planner"
	"github.com/plus3/shiftri/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := sim.ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, sim.DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := sim.ParseConfig(map[string]string{
			"SHIFTRI_WIDTH":           "12",
			"SHIFTRI_HEIGHT":          " 24 ",
			"SHIFTRI_SEED":            "18446744073709551615",
			"SHIFTRI_EXTREME_GRAVITY": "true",
			"SHIFTRI_GRAVITY_EVERY":   "30",
			"SHIFTRI_LOCK_DELAY":      "45",
			"SHIFTRI_TICK_INTERVAL":   "5ms",
			"SHIFTRI_PIECE_LIMIT":     "40",
			"SHIFTRI_POLICY":          "Lowest",
			"SHIFTRI_CACHE_SIZE":      "0",
			"SHIFTRI_PRUNE_INVERSE":   "false",
			"UNRELATED":               "ignored",
		})
		require.NoError(t, err)
		assert.Equal(t, sim.Config{
			Width:          12,
			Height:         24,
			Seed:           18446744073709551615,
			ExtremeGravity: true,
			GravityEvery:   30,
			LockDelay:      45,
			TickInterval:   5 * time.Millisecond,
			PieceLimit:     40,
			Policy:         sim.PolicyLowest,
			CacheSize:      0,
			PruneInverse:   false,
		}, cfg)
	})

	t.Run("errors wrap ErrInvalidConfig", func(t *testing.T) {
		bad := []map[string]string{
			{"SHIFTRI_WIDTH": "wide"},
			{"SHIFTRI_WIDTH": "3"},
			{"SHIFTRI_WIDTH": "65"},
			{"SHIFTRI_HEIGHT": "2"},
			{"SHIFTRI_SEED": "-1"},
			{"SHIFTRI_EXTREME_GRAVITY": "maybe"},
			{"SHIFTRI_GRAVITY_EVERY": "-1"},
			{"SHIFTRI_LOCK_DELAY": "-1"},
			{"SHIFTRI_TICK_INTERVAL": "soon"},
			{"SHIFTRI_PIECE_LIMIT": "-5"},
			{"SHIFTRI_CACHE_SIZE": "-1"},
			{"SHIFTRI_POLICY": "greedy"},
		}
		for _, values := range bad {
			_, err := sim.ParseConfig(values)
			assert.ErrorIs(t, err, sim.ErrInvalidConfig, "%v", values)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shiftri.env")
	contents := "# match settings\nSHIFTRI_WIDTH=8\nSHIFTRI_POLICY=first\nSHIFTRI_PIECE_LIMIT=12\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg, err := sim.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Width)
		assert.Equal(t, sim.PolicyFirst, cfg.Policy)
		assert.Equal(t, 12, cfg.PieceLimit)
		assert.Equal(t, 20, cfg.Height)
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("SHIFTRI_WIDTH", "9")
		cfg, err := sim.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.Width)
		assert.Equal(t, sim.PolicyFirst, cfg.Policy)
	})

	t.Run("environment only", func(t *testing.T) {
		t.Setenv("SHIFTRI_SEED", "77")
		cfg, err := sim.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, uint64(77), cfg.Seed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := sim.LoadConfig(filepath.Join(dir, "missing.env"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, sim.ErrInvalidConfig)
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Setenv("SHIFTRI_HEIGHT", "tall")
		_, err := sim.LoadConfig(path)
		assert.ErrorIs(t, err, sim.ErrInvalidConfig)
	})
}

func TestNewSelector(t *testing.T) {
	s, err := sim.NewSelector(sim.PolicyFirst, 1)
	require.NoError(t, err)
	assert.IsType(t, planner.FirstSelector{}, s)

	s, err = sim.NewSelector(sim.PolicyLowest, 1)
	require.NoError(t, err)
	assert.IsType(t, planner.LowestSelector{}, s)

	s, err = sim.NewSelector("", 1)
	require.NoError(t, err)
	assert.IsType(t, &planner.RandomSelector{}, s)

	_, err = sim.NewSelector("best", 1)
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}
