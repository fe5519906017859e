package model

// Minute is an integer offset into a day, in [0, 1440).
type Minute = int

// MinutesPerDay is the number of one-minute samples in a simulated day.
const MinutesPerDay = 1440

// Window is a half-open minute interval [Start, End).
type Window struct {
	Start int
	End   int
}

// Len returns the window's length in minutes. A degenerate window has Len 0.
func (w Window) Len() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// Empty reports whether the window has zero length.
func (w Window) Empty() bool {
	return w.Len() == 0
}

// Overlaps reports whether w and o share at least one minute, using the
// standard closed-interval overlap test on their endpoints (spec.md §4.2
// step 4: "I.first <= peak_range.last AND I.last >= peak_range.first").
func (w Window) Overlaps(o Window) bool {
	if w.Empty() || o.Empty() {
		return false
	}
	return w.Start <= o.End-1 && w.End-1 >= o.Start
}

// Clamp restricts w to [lo, hi), preserving degenerate windows at 0.
func (w Window) Clamp(lo, hi int) Window {
	start, end := w.Start, w.End
	if start < lo {
		start = lo
	}
	if start > hi {
		start = hi
	}
	if end > hi {
		end = hi
	}
	if end < start {
		end = start
	}
	return Window{Start: start, End: end}
}

// Mean returns the mean minute of the window, rounded to the nearest integer.
func (w Window) Mean() int {
	if w.Empty() {
		return w.Start
	}
	sum := w.Start + (w.End - 1)
	return roundHalfAwayFromZero(float64(sum) / 2)
}

func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return -int(-x + 0.5)
}
