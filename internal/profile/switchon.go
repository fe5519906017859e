package profile

import (
	"loadsim/internal/model"
	"loadsim/internal/rng"
)

// SelectSwitchOn implements spec.md §4.3.1: it builds the candidate minute
// list from every free spot wide enough for one minimum cycle, draws a
// uniform candidate, and returns the resulting interval. ok is false when no
// eligible slot remains. randTime is the appliance-day's fixed total-on-time
// budget, passed through unchanged on every call (not a running remainder) -
// the original (`rand_switch_on_window`) deliberately doesn't decrement it.
func SelectSwitchOn(s *rng.Stream, freeSpots []model.Window, funcCycle int, randTime int) (interval model.Window, ok bool, err error) {
	var candidates []int
	for _, spot := range freeSpots {
		if spot.Len() < funcCycle {
			continue
		}
		for m := spot.Start; m < spot.End-funcCycle+1; m++ {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return model.Window{}, false, nil
	}

	switchOn := candidates[s.Intn(len(candidates))]

	spotIdx := -1
	for i, spot := range freeSpots {
		if spot.Start <= switchOn && switchOn <= spot.End-funcCycle {
			spotIdx = i
			break
		}
	}
	spot := freeSpots[spotIdx]

	largestDuration := randTime
	if rem := spot.End - switchOn; rem < largestDuration {
		largestDuration = rem
	}

	var length int
	switch {
	case largestDuration > funcCycle:
		length = int(s.Uniform(float64(funcCycle), float64(largestDuration)))
	case largestDuration == funcCycle:
		length = funcCycle
	default:
		// Unreachable if ConfigurationError rules held at construction time
		// (spec.md §7 RuntimeError).
		return model.Window{}, false, &model.RuntimeError{Message: "switch-on planner: largest_duration below func_cycle"}
	}

	return model.Window{Start: switchOn, End: switchOn + length}, true, nil
}

// RemoveInterval implements spec.md §4.3.2: removes iv from the free spot
// that contains it, returning the updated free-spot list with 0, 1, or 2
// replacement intervals in its place. Zero-length replacements are dropped.
func RemoveInterval(freeSpots []model.Window, iv model.Window) []model.Window {
	idx := -1
	for i, spot := range freeSpots {
		if iv.Start >= spot.Start && iv.End <= spot.End {
			idx = i
			break
		}
	}
	if idx == -1 {
		return freeSpots
	}

	spot := freeSpots[idx]
	var replacement []model.Window
	switch {
	case iv.Start == spot.Start && iv.End == spot.End:
	case iv.Start == spot.Start:
		replacement = append(replacement, model.Window{Start: iv.End, End: spot.End})
	case iv.End == spot.End:
		replacement = append(replacement, model.Window{Start: spot.Start, End: iv.Start})
	default:
		replacement = append(replacement,
			model.Window{Start: spot.Start, End: iv.Start},
			model.Window{Start: iv.End, End: spot.End},
		)
	}

	out := make([]model.Window, 0, len(freeSpots)-1+len(replacement))
	out = append(out, freeSpots[:idx]...)
	for _, w := range replacement {
		if !w.Empty() {
			out = append(out, w)
		}
	}
	out = append(out, freeSpots[idx+1:]...)
	return out
}
