package profile

import (
	"testing"

	"loadsim/internal/model"
	"loadsim/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakWindow_SingleMaximum(t *testing.T) {
	var profile [model.MinutesPerDay]float64
	profile[500] = 10
	w := PeakWindow(profile)
	assert.Equal(t, model.Window{Start: 500, End: 501}, w)
}

func TestPeakWindow_PlateauSpansFirstToLast(t *testing.T) {
	var profile [model.MinutesPerDay]float64
	profile[100] = 5
	profile[300] = 5
	profile[700] = 5
	w := PeakWindow(profile)
	assert.Equal(t, model.Window{Start: 100, End: 701}, w)
}

func TestComputePeakTimeRange_SingleMinutePeakIsEmpty(t *testing.T) {
	// PeakWindow collapses to one minute when there's a single distinct
	// maximum; spec.md §4.1 treats that as no on/off-peak distinction.
	var profile [model.MinutesPerDay]float64
	profile[500] = 10
	s := rng.NewStream(1)
	peak := ComputePeakTimeRange(s, profile, DefaultPeakEnlarge)
	assert.True(t, peak.Empty)
}

func TestComputePeakTimeRange_WidePeakIsWithinBounds(t *testing.T) {
	var profile [model.MinutesPerDay]float64
	for m := 1000; m < 1100; m++ {
		profile[m] = 500
	}
	s := rng.NewStream(7)
	peak := ComputePeakTimeRange(s, profile, DefaultPeakEnlarge)
	require.False(t, peak.Empty)
	assert.GreaterOrEqual(t, peak.Start, 0)
	assert.LessOrEqual(t, peak.End, model.MinutesPerDay)
	assert.LessOrEqual(t, peak.Start, peak.End)
}
