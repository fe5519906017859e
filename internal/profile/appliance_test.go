package profile

import (
	"testing"

	"loadsim/internal/model"
	"loadsim/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatConfig(t *testing.T) *model.ApplianceConfig {
	t.Helper()
	cfg, err := model.NewApplianceConfig(model.ApplianceConfigInput{
		Name:          "fan",
		Number:        2,
		Power:         []float64{100},
		NumWindows:    1,
		Window1:       model.Window{Start: 480, End: 600},
		FuncTime:      120,
		FuncCycle:     10,
		Flat:          true,
		WdWeType:      2,
		OccasionalUse: 1,
	})
	require.NoError(t, err)
	return cfg
}

func TestGenerateApplianceProfile_S1_FlatSingleWindow(t *testing.T) {
	cfg := flatConfig(t)
	s := rng.NewStream(1)
	daily, err := GenerateApplianceProfile(s, cfg, 0, PeakTimeRange{Empty: true}, 0, 0)
	require.NoError(t, err)

	var sum float64
	for m, v := range daily {
		if m >= 480 && m < 600 {
			assert.Equal(t, 200.0, v, "minute %d", m)
		} else {
			assert.Equal(t, 0.0, v, "minute %d", m)
		}
		sum += v
	}
	assert.Equal(t, 24000.0, sum)
}

func TestGenerateApplianceProfile_S2_OccasionalUseZeroIsAllZero(t *testing.T) {
	cfg := flatConfig(t)
	cfg.OccasionalUse = 0
	s := rng.NewStream(99)
	for i := 0; i < 20; i++ {
		daily, err := GenerateApplianceProfile(s, cfg, 0, PeakTimeRange{Empty: true}, 0, 0)
		require.NoError(t, err)
		for _, v := range daily {
			assert.Equal(t, 0.0, v)
		}
	}
}

func TestGenerateApplianceProfile_S3_WeekdayOnlyOnWeekendIsAllZero(t *testing.T) {
	const weekday, weekend = 0, 1
	cfg := flatConfig(t)
	cfg.WdWeType = weekday
	s := rng.NewStream(1)
	daily, err := GenerateApplianceProfile(s, cfg, 0, PeakTimeRange{Empty: true}, weekend, 0)
	require.NoError(t, err)
	for _, v := range daily {
		assert.Equal(t, 0.0, v)
	}
}

func TestGenerateApplianceProfile_PreferenceIndexSkip(t *testing.T) {
	cfg := flatConfig(t)
	cfg.PrefIndex = 1
	s := rng.NewStream(2)
	sawZero, sawNonZero := false, false
	for i := 0; i < 50; i++ {
		daily, err := GenerateApplianceProfile(s, cfg, 0, PeakTimeRange{Empty: true}, 0, 2)
		require.NoError(t, err)
		allZero := true
		for _, v := range daily {
			if v != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			sawZero = true
		} else {
			sawNonZero = true
		}
	}
	assert.True(t, sawZero)
	assert.True(t, sawNonZero)
}

func TestGenerateApplianceProfile_FixedProducesExactMultipleOfBasePower(t *testing.T) {
	// P6: if fixed==yes, every written sample is N times base power. Window
	// minutes no switch-on claimed keep the eligibility sentinel.
	cfg, err := model.NewApplianceConfig(model.ApplianceConfigInput{
		Name:       "pump",
		Number:     3,
		Power:      []float64{50},
		NumWindows: 1,
		Window1:    model.Window{Start: 0, End: model.MinutesPerDay},
		FuncTime:   200,
		FuncCycle:  50,
		Fixed:      true,
		WdWeType:   2,
	})
	require.NoError(t, err)
	cfg.OccasionalUse = 1
	s := rng.NewStream(3)
	daily, err := GenerateApplianceProfile(s, cfg, 0, PeakTimeRange{Empty: true}, 0, 0)
	require.NoError(t, err)

	for m, v := range daily {
		if v != 0 && v != eligibleSentinel {
			assert.Equal(t, 150.0, v, "minute %d", m)
		}
	}
}

func TestGenerateApplianceProfile_P1_OnMinutesNeverExceedTotalAvail(t *testing.T) {
	cfg, err := model.NewApplianceConfig(model.ApplianceConfigInput{
		Name:                          "kettle",
		Number:                        1,
		Power:                         []float64{1000},
		NumWindows:                    1,
		Window1:                       model.Window{Start: 0, End: 300},
		FuncTime:                      100,
		TimeFractionRandomVariability: 0.3,
		FuncCycle:                     10,
		WdWeType:                      2,
	})
	require.NoError(t, err)
	cfg.OccasionalUse = 1
	s := rng.NewStream(4)

	for i := 0; i < 50; i++ {
		daily, err := GenerateApplianceProfile(s, cfg, 0, PeakTimeRange{Empty: true}, 0, 0)
		require.NoError(t, err)
		onMinutes := 0
		for m, v := range daily {
			if v != 0 && m < 300 {
				onMinutes++
			} else if v != 0 {
				t.Fatalf("minute %d outside window has non-zero power %v", m, v)
			}
		}
		assert.LessOrEqual(t, onMinutes, 300)
	}
}
