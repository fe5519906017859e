// Package engine orchestrates appliance profile generation across users and
// days, sequentially or with a parallel fan-out over (day, appliance, copy)
// tasks (spec.md §4.7, §5).
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"loadsim/internal/model"
	"loadsim/internal/profile"
	"loadsim/internal/rng"
)

// RunRequest bundles the inputs to one orchestration run.
type RunRequest struct {
	UseCase     *model.UseCase
	NumProfiles int
	DayType     []int // aligned with NumProfiles; a single entry is broadcast
	PeakEnlarge float64
	Seed        int64
	Parallel    bool

	// Progress, if non-nil, is invoked once per day with the number of days
	// done so far (1-based) and the total day count. The sequential path
	// calls it as each day completes; the parallel path calls it for every
	// day after all tasks have finished. It is not called under a lock.
	Progress func(done, total int)
}

// Result is the two-dimensional array of per-day community profiles spec.md
// §6 describes as the core output contract: shape (NumProfiles, 1440).
type Result struct {
	Profiles [][model.MinutesPerDay]float64
}

// Engine runs RunRequests. It holds no mutable state between runs.
type Engine struct{}

// New returns an Engine.
func New() *Engine { return &Engine{} }

// Run executes req, dispatching to the sequential or parallel path
// depending on req.Parallel.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*Result, error) {
	if req.UseCase == nil {
		return nil, &model.InvalidArgumentError{Message: "use case is nil"}
	}
	if req.NumProfiles <= 0 {
		return nil, &model.InvalidArgumentError{Message: "num_profiles must be >= 1"}
	}
	dayTypes, err := expandDayTypes(req.DayType, req.NumProfiles)
	if err != nil {
		return nil, err
	}

	source := rng.NewPartitionedSource(req.Seed)
	peakStream := source.For(rng.TaskKey{DayID: -1, ApplianceID: "__peak__"})

	communityMax := req.UseCase.MaximumProfile()
	peakEnlarge := req.PeakEnlarge
	if peakEnlarge == 0 {
		peakEnlarge = profile.DefaultPeakEnlarge
	}
	peak := profile.ComputePeakTimeRange(peakStream, communityMax, peakEnlarge)

	if req.Parallel {
		return e.runParallel(ctx, req, dayTypes, source, peak)
	}
	return e.runSequential(req, dayTypes, source, peak)
}

// runSequential implements spec.md §4.7's day -> user -> member -> appliance
// iteration with a single RNG stream per task, in deterministic order.
func (e *Engine) runSequential(req RunRequest, dayTypes []int, source *rng.PartitionedSource, peak profile.PeakTimeRange) (*Result, error) {
	profiles := make([][model.MinutesPerDay]float64, req.NumProfiles)

	for day := 0; day < req.NumProfiles; day++ {
		var community [model.MinutesPerDay]float64
		for _, u := range req.UseCase.Users {
			userAccum, err := e.accumulateUser(source, u, day, dayTypes[day], peak)
			if err != nil {
				return nil, fmt.Errorf("day %d user %q: %w", day, u.Name, err)
			}
			for m := range community {
				community[m] += userAccum[m]
			}
		}
		profiles[day] = community
		if req.Progress != nil {
			req.Progress(day+1, req.NumProfiles)
		}
	}

	return &Result{Profiles: profiles}, nil
}

func (e *Engine) accumulateUser(source *rng.PartitionedSource, u *model.User, day, dayType int, peak profile.PeakTimeRange) ([model.MinutesPerDay]float64, error) {
	var accum [model.MinutesPerDay]float64
	for _, a := range u.Appliances {
		for member := 0; member < u.NumUsers; member++ {
			key := rng.TaskKey{DayID: day, ApplianceID: u.Name + "/" + a.Config.Name, CopyID: member}
			s := source.For(key)
			p, err := profile.GenerateApplianceProfile(s, a.Config, day, peak, dayType, u.UserPreference)
			if err != nil {
				return accum, fmt.Errorf("appliance %q: %w", a.Config.Name, err)
			}
			for m := range accum {
				accum[m] += p[m]
			}
		}
	}
	return accum, nil
}

// task is the unit of parallel work: one appliance's profile, for one
// household member, on one day (spec.md §5: "(day_id, appliance, copy)").
type task struct {
	day       int
	dayType   int
	userName  string
	userPref  int
	appliance *model.ApplianceConfig
	copyID    int
}

// runParallel implements spec.md §4.7/§5's parallel fan-out: tasks are
// independent and write into a day-keyed result map guarded by a mutex,
// bounded by GOMAXPROCS via errgroup.
func (e *Engine) runParallel(ctx context.Context, req RunRequest, dayTypes []int, source *rng.PartitionedSource, peak profile.PeakTimeRange) (*Result, error) {
	var tasks []task
	for day := 0; day < req.NumProfiles; day++ {
		for _, u := range req.UseCase.Users {
			for _, a := range u.Appliances {
				for member := 0; member < u.NumUsers; member++ {
					tasks = append(tasks, task{
						day: day, dayType: dayTypes[day],
						userName: u.Name, userPref: u.UserPreference,
						appliance: a.Config, copyID: member,
					})
				}
			}
		}
	}

	profiles := make([][model.MinutesPerDay]float64, req.NumProfiles)
	var mu sync.Mutex
	completedDays := make(map[int]bool, req.NumProfiles)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			key := rng.TaskKey{DayID: t.day, ApplianceID: t.userName + "/" + t.appliance.Name, CopyID: t.copyID}
			s := source.For(key)
			p, err := profile.GenerateApplianceProfile(s, t.appliance, t.day, peak, t.dayType, t.userPref)
			if err != nil {
				return fmt.Errorf("day %d appliance %q: %w", t.day, t.appliance.Name, err)
			}

			mu.Lock()
			for m := range p {
				profiles[t.day][m] += p[m]
			}
			if !completedDays[t.day] {
				completedDays[t.day] = true
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.Progress != nil {
		for day := 0; day < req.NumProfiles; day++ {
			req.Progress(day+1, req.NumProfiles)
		}
	}

	return &Result{Profiles: profiles}, nil
}

// RunAveraged runs the stochastic simulation rounds times per calendar day
// and returns the per-minute mean across rounds (spec.md §9 supplemented
// feature, mirroring the original's multi-draw averaging in ramp_run.py).
func (e *Engine) RunAveraged(ctx context.Context, req RunRequest, rounds int) (*Result, error) {
	if rounds < 1 {
		return nil, &model.InvalidArgumentError{Message: "rounds must be >= 1"}
	}

	sum := make([][model.MinutesPerDay]float64, req.NumProfiles)
	for r := 0; r < rounds; r++ {
		roundReq := req
		roundReq.Seed = req.Seed + int64(r)
		res, err := e.Run(ctx, roundReq)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", r, err)
		}
		for day := range sum {
			for m := range sum[day] {
				sum[day][m] += res.Profiles[day][m]
			}
		}
	}

	for day := range sum {
		for m := range sum[day] {
			sum[day][m] /= float64(rounds)
		}
	}
	return &Result{Profiles: sum}, nil
}

func expandDayTypes(in []int, n int) ([]int, error) {
	if len(in) == 0 {
		return nil, &model.InvalidArgumentError{Message: "day_type must have at least one entry"}
	}
	if len(in) == 1 {
		out := make([]int, n)
		for i := range out {
			out[i] = in[0]
		}
		return out, nil
	}
	if len(in) != n {
		return nil, &model.InvalidArgumentError{Message: "day_type length must be 1 or num_profiles"}
	}
	return in, nil
}
