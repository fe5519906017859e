package profile

import (
	"math"

	"loadsim/internal/rng"
)

// Coincidence parameters, from a single source-of-truth table per spec.md
// §4.5 (values per the RAMP paper's default switch-on parameterization).
const (
	muPeak   = 0.5
	sPeak    = 0.2
	opFactor = 0.5
)

// Coincidence implements spec.md §4.5: how many of the N identical copies of
// an appliance switch on together, conditioned on fixed / inside-peak /
// off-peak.
func Coincidence(s *rng.Stream, n int, fixed, insidePeak bool) int {
	if fixed {
		return n
	}
	if insidePeak {
		return coincidencePeak(s, n)
	}
	return coincidenceOffPeak(s, n)
}

func coincidencePeak(s *rng.Stream, n int) int {
	mu := float64(n)*muPeak + 0.5
	sigma := sPeak * float64(n) * muPeak
	draw := int(math.Ceil(s.Gaussian(mu, sigma)))
	if draw < 1 {
		draw = 1
	}
	if draw > n {
		draw = n
	}
	return draw
}

// coincidenceOffPeak implements spec.md §4.5 eq. 3 and the §9 N=1 guard:
// the upper bound (n-opFactor)/n can go negative when opFactor > n, in
// which case the branch returns 1 directly rather than sampling an inverted
// range.
func coincidenceOffPeak(s *rng.Stream, n int) int {
	upper := (float64(n) - opFactor) / float64(n)
	if upper <= 0 {
		return 1
	}
	p := s.Uniform(0, upper)
	onNumber := 1
	for i := n - 1; i >= 0; i-- {
		if p >= float64(i)/float64(n) {
			onNumber = i + 1
			break
		}
	}
	return onNumber
}
