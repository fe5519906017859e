package profile

import (
	"loadsim/internal/model"
	"loadsim/internal/rng"
)

// DutyCycle is a realized two-phase power waveform for one simulated day,
// produced by RealizeCycles, selected by Dispatch and tiled into daily_use
// by Tile.
type DutyCycle []float64

// RealizeCycles implements spec.md §4.4: for k = 1..fixedCycle, jitters each
// phase's power by thermal_p_var and builds the phase-duration waveform
// (ordinary duty_cycle for fixedCycle in {1,2}, the random_choice variant
// for fixedCycle>=3). fixed_cycle==1 aliases all three slots to cycle 1, per
// spec.md §4.4 and §9 ("preserve the source's behavior rather than fix it").
func RealizeCycles(s *rng.Stream, a *model.ApplianceConfig) [3]DutyCycle {
	var cycles [3]DutyCycle
	if a.FixedCycle <= 0 {
		return cycles
	}

	configs := [3]model.DutyCycleConfig{a.Cycle1, a.Cycle2, a.Cycle3}
	randomChoice := a.FixedCycle >= 3

	for k := 0; k < a.FixedCycle; k++ {
		c := configs[k]
		pa := RandomVariation(s, a.ThermalPVar, c.PA)
		pb := RandomVariation(s, a.ThermalPVar, c.PB)
		if randomChoice {
			cycles[k] = buildRandomChoiceCycle(s, c, pa, pb)
		} else {
			cycles[k] = buildDutyCycle(s, c, pa, pb)
		}
	}

	if a.FixedCycle == 1 {
		cycles[1] = cycles[0]
		cycles[2] = cycles[0]
	}
	return cycles
}

// buildDutyCycle implements spec.md §4.4's duty_cycle(r, t1, p1, t2, p2):
// p1 repeated round(t1*random_variation(r)) times, then p2 repeated
// round(t2*random_variation(r)) times.
func buildDutyCycle(s *rng.Stream, c model.DutyCycleConfig, pa, pb float64) DutyCycle {
	na := roundNonNegative(float64(c.TA) * RandomVariation(s, c.RC, 1))
	nb := roundNonNegative(float64(c.TB) * RandomVariation(s, c.RC, 1))
	cycle := make(DutyCycle, 0, na+nb)
	for i := 0; i < na; i++ {
		cycle = append(cycle, pa)
	}
	for i := 0; i < nb; i++ {
		cycle = append(cycle, pb)
	}
	return cycle
}

// buildRandomChoiceCycle implements the fixed_cycle>=3 divergence (spec.md
// §4.4): each minute's power is drawn uniformly between pa and pb instead of
// following the fixed two-phase waveform.
func buildRandomChoiceCycle(s *rng.Stream, c model.DutyCycleConfig, pa, pb float64) DutyCycle {
	na := roundNonNegative(float64(c.TA) * RandomVariation(s, c.RC, 1))
	nb := roundNonNegative(float64(c.TB) * RandomVariation(s, c.RC, 1))
	lo, hi := pa, pb
	if hi < lo {
		lo, hi = hi, lo
	}
	cycle := make(DutyCycle, 0, na+nb)
	for i := 0; i < na+nb; i++ {
		cycle = append(cycle, s.Uniform(lo, hi))
	}
	return cycle
}

func roundNonNegative(x float64) int {
	if x < 0 {
		return 0
	}
	return int(x + 0.5)
}

// Dispatch selects which of the three realized cycles applies to a
// switch-on interval by the midpoint rule (spec.md §4.2 step 5, §9 "Duty
// cycle dispatch when all three cycles exist"): cw31/cw32 are never tested,
// the final else is an unconditional fallback to cycle 3.
func Dispatch(a *model.ApplianceConfig, cycles [3]DutyCycle, interval model.Window) DutyCycle {
	m := interval.Mean()
	switch {
	case within(m, a.Cycle1.CwA) || within(m, a.Cycle1.CwB):
		return cycles[0]
	case within(m, a.Cycle2.CwA) || within(m, a.Cycle2.CwB):
		return cycles[1]
	default:
		return cycles[2]
	}
}

func within(m int, w model.Window) bool {
	return m >= w.Start && m < w.End
}

// Tile writes cycle * coincidence into daily_use at the minutes of
// interval, repeating the cycle when interval is longer than it and
// truncating it when interval is shorter, per spec.md §4.4.
func Tile(dailyUse *[model.MinutesPerDay]float64, interval model.Window, cycle DutyCycle, coincidence int) {
	if len(cycle) == 0 {
		return
	}
	for i, m := 0, interval.Start; m < interval.End; i, m = i+1, m+1 {
		dailyUse[m] = cycle[i%len(cycle)] * float64(coincidence)
	}
}
