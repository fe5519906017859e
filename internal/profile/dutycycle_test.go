package profile

import (
	"testing"

	"loadsim/internal/model"
	"loadsim/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealizeCycles_ZeroFixedCycleIsAllEmpty(t *testing.T) {
	s := rng.NewStream(1)
	cfg := &model.ApplianceConfig{FixedCycle: 0}
	cycles := RealizeCycles(s, cfg)
	for _, c := range cycles {
		assert.Empty(t, c)
	}
}

func TestRealizeCycles_FixedCycleOneAliasesAllSlots(t *testing.T) {
	// spec.md §4.4/§9: fixed_cycle==1 uses cycle1 for every dispatch slot.
	s := rng.NewStream(5)
	cfg := &model.ApplianceConfig{
		FixedCycle: 1,
		Cycle1:     model.DutyCycleConfig{PA: 50, TA: 10, PB: 10, TB: 20, RC: 0},
	}
	cycles := RealizeCycles(s, cfg)
	assert.Equal(t, cycles[0], cycles[1])
	assert.Equal(t, cycles[0], cycles[2])
}

func TestRealizeCycles_ZeroRandomVariationProducesExactPhaseLengths(t *testing.T) {
	// S5: p_a=50 for t_a=10, p_b=10 for t_b=20, no jitter (rc=0).
	s := rng.NewStream(1)
	cfg := &model.ApplianceConfig{
		FixedCycle: 1,
		Cycle1:     model.DutyCycleConfig{PA: 50, TA: 10, PB: 10, TB: 20, RC: 0},
	}
	cycles := RealizeCycles(s, cfg)
	cycle := cycles[0]
	require.Len(t, cycle, 30)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 50.0, cycle[i])
	}
	for i := 10; i < 30; i++ {
		assert.Equal(t, 10.0, cycle[i])
	}
}

func TestDispatch_MidpointRule(t *testing.T) {
	cfg := &model.ApplianceConfig{
		Cycle1: model.DutyCycleConfig{CwA: model.Window{Start: 0, End: 720}},
		Cycle2: model.DutyCycleConfig{CwA: model.Window{Start: 720, End: 1440}},
	}
	cycles := [3]DutyCycle{{1}, {2}, {3}}

	assert.Equal(t, cycles[0], Dispatch(cfg, cycles, model.Window{Start: 0, End: 100}))
	assert.Equal(t, cycles[1], Dispatch(cfg, cycles, model.Window{Start: 800, End: 900}))
	// Neither cycle1 nor cycle2 windows contain the midpoint: falls through
	// to cycle 3 unconditionally (spec.md §9, cw31/cw32 never tested).
	assert.Equal(t, cycles[2], Dispatch(cfg, cycles, model.Window{Start: 2000, End: 2000}))
}

func TestTile_WritesCoincidenceScaledCycleOverInterval(t *testing.T) {
	var dailyUse [model.MinutesPerDay]float64
	cycle := DutyCycle{1, 2, 3}
	Tile(&dailyUse, model.Window{Start: 10, End: 17}, cycle, 4)

	want := []float64{4, 8, 12, 4, 8, 12, 4}
	for i, w := range want {
		assert.Equal(t, w, dailyUse[10+i])
	}
	assert.Equal(t, 0.0, dailyUse[9])
	assert.Equal(t, 0.0, dailyUse[17])
}

func TestTile_EmptyCycleIsNoop(t *testing.T) {
	var dailyUse [model.MinutesPerDay]float64
	Tile(&dailyUse, model.Window{Start: 10, End: 17}, DutyCycle{}, 4)
	for _, v := range dailyUse {
		assert.Equal(t, 0.0, v)
	}
}
