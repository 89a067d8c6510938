// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// weight_fn.go - arc weight distributions.
//
// Scalars are projections of tropical or log weights: costs, or negated log
// probabilities. Any real number is a member, as is +Inf (Zero, a blocked arc).
// NaN and -Inf are not, and the constructors below panic on parameters that
// could produce them.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultArcWeight is the scalar assigned to each arc when no WeightFn is
// provided. It is One in every supported semiring.
const DefaultArcWeight float64 = 0

// WeightFn produces an arc weight scalar from an optional RNG. Stochastic
// functions return DefaultArcWeight when rng is nil.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultArcWeight.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultArcWeight
}

// member reports whether x is the scalar of some semiring weight.
func member(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, -1)
}

// ConstantWeightFn returns a WeightFn that always yields x. Negative costs are
// allowed. Panics on NaN and -Inf.
func ConstantWeightFn(x float64) WeightFn {
	if !member(x) {
		panic(fmt.Sprintf("builder: ConstantWeightFn(%g) is not a semiring member", x))
	}
	return func(_ *rand.Rand) float64 {
		return x
	}
}

// UniformWeightFn samples costs uniformly in [lo, hi). Both bounds must be
// finite with lo <= hi; lo == hi yields lo.
func UniformWeightFn(lo, hi float64) WeightFn {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi < lo {
		panic(fmt.Sprintf("builder: UniformWeightFn(%g, %g) needs finite lo <= hi", lo, hi))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultArcWeight
		}
		if lo == hi {
			return lo
		}
		return lo + rng.Float64()*(hi-lo)
	}
}

// ExponentialWeightFn samples non-negative costs from an exponential
// distribution with the given rate (mean 1/rate). Panics unless rate > 0.
func ExponentialWeightFn(rate float64) WeightFn {
	if !(rate > 0) || math.IsInf(rate, 1) {
		panic(fmt.Sprintf("builder: ExponentialWeightFn(%g) needs a finite rate > 0", rate))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultArcWeight
		}
		return rng.ExpFloat64() / rate
	}
}

// ProbabilityWeightFn samples a probability p uniformly in (lo, hi] and yields
// its cost -ln p, so arcs read as log-semiring probabilities. Requires
// 0 <= lo < hi <= 1.
func ProbabilityWeightFn(lo, hi float64) WeightFn {
	if !(lo >= 0 && lo < hi && hi <= 1) {
		panic(fmt.Sprintf("builder: ProbabilityWeightFn(%g, %g) needs 0 <= lo < hi <= 1", lo, hi))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultArcWeight
		}
		// 1-Float64 is in (0, 1], so p > lo and -ln p stays finite.
		p := lo + (1-rng.Float64())*(hi-lo)
		return -math.Log(p)
	}
}
