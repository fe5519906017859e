package model

import "fmt"

// DaysPerYear is the length every power series is normalized to (spec.md §3:
// "power series length is exactly 366 after normalization").
const DaysPerYear = 366

// DutyCycleConfig describes one of up to three two-phase square power
// waveforms an appliance's switch-on events may follow (spec.md §3).
type DutyCycleConfig struct {
	PA, PB float64 // watts for phase a / phase b
	TA, TB int     // nominal duration (minutes) of phase a / phase b
	RC     float64 // fractional jitter applied to TA/TB, in [0,1]
	CwA    Window  // activation window selecting this cycle (part a)
	CwB    Window  // activation window selecting this cycle (part b)
}

// consistent reports whether the cycle's phase durations can produce a
// non-empty waveform (spec.md §3: "fixed_cycle > 0 requires... t_a+t_b>=1").
func (d DutyCycleConfig) consistent() bool {
	return d.TA+d.TB >= 1
}

// ApplianceConfig is the immutable, validated configuration of one
// appliance class (spec.md §3). Construct via NewApplianceConfig.
type ApplianceConfig struct {
	Name string

	Number int // N >= 1, count of identical copies

	Power [DaysPerYear]float64 // per-day rated power, watts

	NumWindows           int // 1, 2 or 3
	Window1, Window2, Window3 Window

	RandomVarW float64 // in [0,1]

	FuncTime                      int     // nominal total on-time per day, [0,1440]
	TimeFractionRandomVariability float64 // in [0,1]
	FuncCycle                     int     // >= 1

	Fixed bool
	Flat  bool

	FixedCycle int // 0..3
	Cycle1, Cycle2, Cycle3 DutyCycleConfig

	ThermalPVar float64 // in [0,1]

	OccasionalUse float64 // in [0,1]
	PrefIndex     int     // 0 means always eligible

	WdWeType int // 0=weekday-only, 1=weekend-only, 2=either
}

// ApplianceConfigInput is the raw, pre-normalization shape used to construct
// an ApplianceConfig. Power accepts either a single scalar (broadcast to
// 366 days) or an exact 366-length series, per spec.md §3/§6.
type ApplianceConfigInput struct {
	Name string

	Number int
	Power  []float64

	NumWindows             int
	Window1, Window2, Window3 Window
	RandomVarW             float64

	FuncTime                      int
	TimeFractionRandomVariability float64
	FuncCycle                     int

	Fixed bool
	Flat  bool

	FixedCycle             int
	Cycle1, Cycle2, Cycle3 DutyCycleConfig

	ThermalPVar   float64
	OccasionalUse float64
	PrefIndex     int
	WdWeType      int
}

// NewApplianceConfig validates in and returns an immutable ApplianceConfig,
// or a *ConfigurationError describing the first invariant violated
// (spec.md §3 Invariants).
func NewApplianceConfig(in ApplianceConfigInput) (*ApplianceConfig, error) {
	cfg := &ApplianceConfig{
		Name:                          in.Name,
		Number:                        in.Number,
		NumWindows:                    in.NumWindows,
		Window1:                       in.Window1,
		Window2:                       in.Window2,
		Window3:                       in.Window3,
		RandomVarW:                    in.RandomVarW,
		FuncTime:                      in.FuncTime,
		TimeFractionRandomVariability: in.TimeFractionRandomVariability,
		FuncCycle:                     in.FuncCycle,
		Fixed:                         in.Fixed,
		Flat:                          in.Flat,
		FixedCycle:                    in.FixedCycle,
		Cycle1:                        in.Cycle1,
		Cycle2:                        in.Cycle2,
		Cycle3:                        in.Cycle3,
		ThermalPVar:                   in.ThermalPVar,
		OccasionalUse:                 in.OccasionalUse,
		PrefIndex:                     in.PrefIndex,
		WdWeType:                      in.WdWeType,
	}

	if err := normalizePower(cfg, in.Power); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizePower(cfg *ApplianceConfig, power []float64) error {
	switch len(power) {
	case 0:
		return &ConfigurationError{Subject: cfg.Name, Message: "power must be a scalar or a 366-length series"}
	case 1:
		for i := range cfg.Power {
			cfg.Power[i] = power[0]
		}
	case DaysPerYear:
		copy(cfg.Power[:], power)
	default:
		return &ConfigurationError{Subject: cfg.Name, Message: fmt.Sprintf("power series has length %d, want 1 or %d", len(power), DaysPerYear)}
	}
	return nil
}

func (c *ApplianceConfig) validate() error {
	if c.Number < 1 {
		return &ConfigurationError{Subject: c.Name, Message: "number must be >= 1"}
	}
	if c.NumWindows < 1 || c.NumWindows > 3 {
		return &ConfigurationError{Subject: c.Name, Message: "num_windows must be in {1,2,3}"}
	}
	windows := c.windows()
	for i := c.NumWindows; i < 3; i++ {
		if !windows[i].Empty() {
			return &ConfigurationError{Subject: c.Name, Message: fmt.Sprintf("window_%d must be [0,0) when num_windows=%d", i+1, c.NumWindows)}
		}
	}
	var span int
	for i := 0; i < c.NumWindows; i++ {
		span += windows[i].Len()
	}
	if span < c.FuncTime {
		return &ConfigurationError{Subject: c.Name, Message: "sum of window spans is less than func_time"}
	}
	if c.FuncCycle < 1 {
		return &ConfigurationError{Subject: c.Name, Message: "func_cycle must be >= 1"}
	}
	if c.FixedCycle < 0 || c.FixedCycle > 3 {
		return &ConfigurationError{Subject: c.Name, Message: "fixed_cycle must be in {0,1,2,3}"}
	}
	cycles := []DutyCycleConfig{c.Cycle1, c.Cycle2, c.Cycle3}
	for k := 0; k < c.FixedCycle; k++ {
		if !cycles[k].consistent() {
			return &ConfigurationError{Subject: c.Name, Message: fmt.Sprintf("cycle %d has t_a+t_b < 1", k+1)}
		}
	}
	if c.RandomVarW < 0 || c.RandomVarW > 1 {
		return &ConfigurationError{Subject: c.Name, Message: "random_var_w must be in [0,1]"}
	}
	if c.TimeFractionRandomVariability < 0 || c.TimeFractionRandomVariability > 1 {
		return &ConfigurationError{Subject: c.Name, Message: "time_fraction_random_variability must be in [0,1]"}
	}
	if c.ThermalPVar < 0 || c.ThermalPVar > 1 {
		return &ConfigurationError{Subject: c.Name, Message: "thermal_p_var must be in [0,1]"}
	}
	if c.OccasionalUse < 0 || c.OccasionalUse > 1 {
		return &ConfigurationError{Subject: c.Name, Message: "occasional_use must be in [0,1]"}
	}
	if c.WdWeType < 0 || c.WdWeType > 2 {
		return &ConfigurationError{Subject: c.Name, Message: "wd_we_type must be in {0,1,2}"}
	}
	return nil
}

// windows returns the three configured windows, in order.
func (c *ApplianceConfig) windows() [3]Window {
	return [3]Window{c.Window1, c.Window2, c.Window3}
}

// Appliance is one appliance owned by a User. It holds an immutable
// configuration plus a back-reference to its owner for serialization
// convenience (spec.md §9 "Cyclic object graph"); the engine itself passes
// (userID, applianceID) pairs wherever only identity is needed, so the
// back-reference is never required for the core algorithm, only for the
// catalog round-trip.
type Appliance struct {
	Config *ApplianceConfig
	Owner  *User
}

// PowerOn returns the rated power for day d, or an error if d is out of range.
func (a *Appliance) PowerOn(day int) (float64, error) {
	if day < 0 || day >= DaysPerYear {
		return 0, &InvalidArgumentError{Message: fmt.Sprintf("day %d out of range [0,%d)", day, DaysPerYear)}
	}
	return a.Config.Power[day], nil
}
