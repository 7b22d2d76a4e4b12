// Package solver provides a bracketing bisection root finder for monotonic
// functions. It is a pure numeric primitive with no knowledge of ratings.
package solver

import (
	"errors"
	"math"
)

// Custom errors
var (
	ErrNoBracket      = errors.New("failed to bracket a sign change within the expansion budget")
	ErrNoConvergence  = errors.New("failed to converge within the iteration budget")
	ErrInvalidOptions = errors.New("invalid solver options")
)

// Options controls the termination policy of the search. The expansion and
// iteration limits are explicit configuration, not hidden constants, so the
// solver is guaranteed to terminate on any input.
type Options struct {
	Tolerance     float64
	InitialStep   float64
	MaxExpansions int
	MaxIterations int
}

// DefaultOptions returns a termination policy suitable for rating-scale
// inputs (roots in the low thousands).
func DefaultOptions() Options {
	return Options{
		Tolerance:     1e-9,
		InitialStep:   1.0,
		MaxExpansions: 64,
		MaxIterations: 200,
	}
}

func (o Options) validate() error {
	if o.Tolerance <= 0 || o.InitialStep <= 0 || o.MaxExpansions <= 0 || o.MaxIterations <= 0 {
		return ErrInvalidOptions
	}
	return nil
}

// FindZero returns x such that |f(x)| <= opts.Tolerance for a monotonic
// non-decreasing f known to cross zero. No bracket is required from the
// caller: the search interval is expanded outward by doubling until the sign
// condition holds at both ends, then bisected. Deterministic for a given f.
func FindZero(f func(float64) float64, opts Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	lo, hi := -opts.InitialStep, opts.InitialStep
	flo, fhi := f(lo), f(hi)

	expansions := 0
	for flo > 0 {
		if expansions >= opts.MaxExpansions {
			return 0, ErrNoBracket
		}
		lo *= 2
		flo = f(lo)
		expansions++
	}
	for fhi < 0 {
		if expansions >= opts.MaxExpansions {
			return 0, ErrNoBracket
		}
		hi *= 2
		fhi = f(hi)
		expansions++
	}

	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}

	for i := 0; i < opts.MaxIterations; i++ {
		mid := lo + (hi-lo)/2
		fmid := f(mid)
		if math.Abs(fmid) <= opts.Tolerance {
			return mid, nil
		}
		if fmid < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0, ErrNoConvergence
}
