package profile

import (
	"math"

	"loadsim/internal/model"
	"loadsim/internal/rng"
)

// eligibleSentinel marks a minute inside a jittered window before any
// switch-on has claimed it, matching the source's "0.001 as an eligible
// marker" convention (spec.md §4.2 "Seeding scratch").
const eligibleSentinel = 0.001

// GenerateApplianceProfile implements spec.md §4.2: eligibility checks,
// window randomization, total-on-time randomization, the flat branch, and
// the main switch-on/coincidence/duty-cycle loop. It returns the 1440
// minute profile for one appliance copy on one day.
func GenerateApplianceProfile(s *rng.Stream, a *model.ApplianceConfig, day int, peak PeakTimeRange, dayType int, userPreference int) ([model.MinutesPerDay]float64, error) {
	var dailyUse [model.MinutesPerDay]float64

	if s.Float64() > a.OccasionalUse {
		return dailyUse, nil
	}
	if a.PrefIndex != 0 && userPreference != 0 {
		randDailyPref := 1 + s.Intn(userPreference)
		if randDailyPref != a.PrefIndex {
			return dailyUse, nil
		}
	}
	if a.WdWeType != 2 && a.WdWeType != dayType {
		return dailyUse, nil
	}

	power, err := a.PowerOn(day)
	if err != nil {
		return dailyUse, err
	}

	windows := [3]model.Window{a.Window1, a.Window2, a.Window3}
	var jittered [3]model.Window
	for i := 0; i < a.NumWindows; i++ {
		jittered[i] = jitterWindow(s, windows[i], a.RandomVarW)
	}

	if a.Flat {
		for i := 0; i < a.NumWindows; i++ {
			w := jittered[i]
			for m := w.Start; m < w.End; m++ {
				dailyUse[m] = power * float64(a.Number)
			}
		}
		return dailyUse, nil
	}

	totalAvail := 0
	for i := 0; i < a.NumWindows; i++ {
		totalAvail += jittered[i].Len()
	}

	randVarT := RandomVariation(s, a.TimeFractionRandomVariability, 1)
	f := float64(a.FuncTime) * randVarT
	lo, hi := float64(a.FuncTime), f
	if hi < lo {
		lo, hi = hi, lo
	}
	randTime := int(math.Floor(s.Uniform(lo, hi) + 0.5))
	if randTime < a.FuncCycle {
		randTime = a.FuncCycle
	}
	if float64(randTime) > 0.99*float64(totalAvail) {
		randTime = int(0.99 * float64(totalAvail))
	}
	if randTime < a.FuncCycle {
		return dailyUse, &model.ConfigurationError{
			Subject: a.Name,
			Message: "func_cycle does not fit in the available time for appliance usage; reduce func_cycle or widen the windows",
		}
	}

	var freeSpots []model.Window
	for i := 0; i < a.NumWindows; i++ {
		w := jittered[i]
		if w.Len() > 0 {
			for m := w.Start; m < w.End; m++ {
				dailyUse[m] = eligibleSentinel
			}
			freeSpots = append(freeSpots, w)
		}
	}

	cycles := RealizeCycles(s, a)

	totTime := 0
	for totTime <= randTime {
		interval, ok, err := SelectSwitchOn(s, freeSpots, a.FuncCycle, randTime)
		if err != nil {
			return dailyUse, err
		}
		if !ok {
			break
		}

		if totTime+interval.Len() > randTime {
			truncated := model.Window{Start: interval.Start, End: interval.Start + (randTime - totTime)}
			if truncated.Len() <= 0 {
				break
			}
			interval = truncated
			applyInterval(s, a, power, &dailyUse, cycles, peak, interval)
			freeSpots = RemoveInterval(freeSpots, interval)
			break
		}

		applyInterval(s, a, power, &dailyUse, cycles, peak, interval)
		freeSpots = RemoveInterval(freeSpots, interval)
		totTime += interval.Len()
	}

	return dailyUse, nil
}

func applyInterval(s *rng.Stream, a *model.ApplianceConfig, power float64, dailyUse *[model.MinutesPerDay]float64, cycles [3]DutyCycle, peak PeakTimeRange, interval model.Window) {
	insidePeak := !peak.Empty && interval.Overlaps(peak.Window)
	coincidence := Coincidence(s, a.Number, a.Fixed, insidePeak)

	if a.FixedCycle >= 1 {
		cycle := Dispatch(a, cycles, interval)
		Tile(dailyUse, interval, cycle, coincidence)
		return
	}

	value := RandomVariation(s, a.ThermalPVar, float64(coincidence)*power)
	for m := interval.Start; m < interval.End; m++ {
		dailyUse[m] = value
	}
}
