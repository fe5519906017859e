package profile

import (
	"math"

	"loadsim/internal/model"
	"loadsim/internal/rng"
)

// PeakTimeRange is the [Start, End) window of minutes treated as "inside
// peak" for coincidence purposes (spec.md §4.1). Empty is true when the
// community maximum's argmax collapses to a single minute, in which case no
// on/off-peak distinction is produced and every switch-on is off-peak.
type PeakTimeRange struct {
	model.Window
	Empty bool
}

// DefaultPeakEnlarge is the spec.md §4.1 default for peak_enlarge.
const DefaultPeakEnlarge = 0.15

// PeakWindow returns the set of minutes achieving the maximum value in
// profile, as a single contiguous Window spanning from the first to the
// last such minute (spec.md §4.1: "argmax ... set of minutes achieving the
// maximum value").
func PeakWindow(profile [model.MinutesPerDay]float64) model.Window {
	max := profile[0]
	for _, v := range profile {
		if v > max {
			max = v
		}
	}
	first, last := -1, -1
	for m, v := range profile {
		if v == max {
			if first == -1 {
				first = m
			}
			last = m
		}
	}
	if first == -1 {
		return model.Window{}
	}
	return model.Window{Start: first, End: last + 1}
}

// ComputePeakTimeRange implements spec.md §4.1's peak-time sampling: a
// Gaussian peak time conditioned on the peak window's span, enlarged by a
// second Gaussian draw scaled by peakEnlarge, then rounded.
func ComputePeakTimeRange(s *rng.Stream, communityMax [model.MinutesPerDay]float64, peakEnlarge float64) PeakTimeRange {
	peakWindow := PeakWindow(communityMax)
	if peakWindow.Len() <= 1 {
		return PeakTimeRange{Empty: true}
	}

	mu := float64(peakWindow.Start+peakWindow.End-1) / 2
	sigma := float64(peakWindow.End-1-peakWindow.Start) / 3
	peakTimeF := roundFloat(s.Gaussian(mu, sigma))
	peakTime := int(peakTimeF)

	enlargement := int(math.Abs(roundFloat(peakTimeF - s.Gaussian(peakTimeF, peakEnlarge*peakTimeF))))

	w := model.Window{Start: peakTime - enlargement, End: peakTime + enlargement}
	w = w.Clamp(0, model.MinutesPerDay)
	if w.Empty() {
		return PeakTimeRange{Empty: true}
	}
	return PeakTimeRange{Window: w}
}

func roundFloat(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}
