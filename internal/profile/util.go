// Package profile implements the stochastic per-appliance profile generator:
// peak-window estimation, switch-on planning, duty-cycle composition, and
// coincidence (spec.md §4).
package profile

import (
	"loadsim/internal/model"
	"loadsim/internal/rng"
)

// RandomVariation returns norm * Uniform(1-var, 1+var) when var > 0, else
// norm unchanged (spec.md §4.6).
func RandomVariation(s *rng.Stream, v, norm float64) float64 {
	if v <= 0 {
		return norm
	}
	return norm * s.Uniform(1-v, 1+v)
}

// jitterWindow implements spec.md §4.2's window randomization: each
// endpoint is redrawn uniformly within +/- delta of its original value,
// where delta = floor(randomVarW * window size), then clamped to
// [0, MinutesPerDay). A degenerate [0,0) window stays [0,0).
func jitterWindow(s *rng.Stream, w model.Window, randomVarW float64) model.Window {
	if w.Empty() {
		return w
	}
	delta := int(randomVarW * float64(w.Len()))
	start := w.Start + s.Intn(2*delta+1) - delta
	end := w.End + s.Intn(2*delta+1) - delta
	return model.Window{Start: start, End: end}.Clamp(0, model.MinutesPerDay)
}
