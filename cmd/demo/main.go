package main

import (
	"context"
	"flag"
	"fmt"

	"loadsim/internal/engine"
	"loadsim/internal/model"
)

// Demo:
// - Build a small household community directly in code (no catalog file)
// - Run the simulation engine for a handful of days
// - Print a sample profile and the community peak to show how the pieces fit together
func main() {
	days := flag.Int("n", 3, "Number of days to simulate")
	seed := flag.Int64("seed", 42, "Master RNG seed")
	flag.Parse()

	uc, err := buildDemoCommunity()
	if err != nil {
		panic(err)
	}

	e := engine.New()
	result, err := e.Run(context.Background(), engine.RunRequest{
		UseCase:     uc,
		NumProfiles: *days,
		DayType:     []int{0},
		PeakEnlarge: 0.15,
		Seed:        *seed,
		Progress: func(done, total int) {
			fmt.Printf("\rsimulated day %d/%d", done, total)
		},
	})
	fmt.Println()
	if err != nil {
		panic(err)
	}

	fmt.Printf("Community=%s  Users=%d  Days=%d\n\n", uc.Name, len(uc.Users), len(result.Profiles))

	for d, profile := range result.Profiles {
		var peak, sum float64
		peakMinute := 0
		for m, v := range profile {
			sum += v
			if v > peak {
				peak = v
				peakMinute = m
			}
		}
		mean := sum / float64(model.MinutesPerDay)
		fmt.Printf("day %2d  mean=%8.1fW  peak=%8.1fW at minute %4d (%02d:%02d)\n",
			d, mean, peak, peakMinute, peakMinute/60, peakMinute%60)
	}

	fmt.Println("\nSample minute-by-minute window for day 0, hour 18:00-18:10:")
	first := result.Profiles[0]
	for m := 18 * 60; m < 18*60+10; m++ {
		fmt.Printf("  %02d:%02d  %8.1fW\n", m/60, m%60, first[m])
	}
}

func buildDemoCommunity() (*model.UseCase, error) {
	uc := model.NewUseCase("demo village")

	household, err := model.NewUser("household", 3, 0)
	if err != nil {
		return nil, err
	}

	lightCfg, err := model.NewApplianceConfig(model.ApplianceConfigInput{
		Name:                          "indoor light",
		Number:                        5,
		Power:                         []float64{40},
		NumWindows:                    2,
		Window1:                       model.Window{Start: 17 * 60, End: 23 * 60},
		Window2:                       model.Window{Start: 5 * 60, End: 7 * 60},
		RandomVarW:                    0.2,
		FuncTime:                      120,
		TimeFractionRandomVariability: 0.1,
		FuncCycle:                     10,
	})
	if err != nil {
		return nil, err
	}
	household.AddAppliance(lightCfg)

	fridgeCfg, err := model.NewApplianceConfig(model.ApplianceConfigInput{
		Name:        "fridge",
		Number:      1,
		Power:       []float64{150},
		NumWindows:  1,
		Window1:     model.Window{Start: 0, End: model.MinutesPerDay},
		FuncTime:    model.MinutesPerDay,
		FuncCycle:   1,
		Fixed:       true,
		FixedCycle:  1,
		Cycle1: model.DutyCycleConfig{
			PA: 1.0, TA: 20,
			PB: 0.0, TB: 10,
			RC: 0.1,
		},
		ThermalPVar: 0.1,
	})
	if err != nil {
		return nil, err
	}
	household.AddAppliance(fridgeCfg)

	tvCfg, err := model.NewApplianceConfig(model.ApplianceConfigInput{
		Name:                          "television",
		Number:                        1,
		Power:                         []float64{60},
		NumWindows:                    1,
		Window1:                       model.Window{Start: 19 * 60, End: 23*60 + 30},
		RandomVarW:                    0.1,
		FuncTime:                      90,
		TimeFractionRandomVariability: 0.2,
		FuncCycle:                     30,
		OccasionalUse:                 0.8,
	})
	if err != nil {
		return nil, err
	}
	household.AddAppliance(tvCfg)

	uc.AddUser(household)
	return uc, nil
}
