// SPDX-License-Identifier: MIT

package weight

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
)

// DefaultDelta is the comparison and convergence tolerance used when callers
// do not supply one.
const DefaultDelta = 1.0 / 1024.0

// Weight is a semiring value. It is a small immutable value type; copy it freely.
//
// The zero Weight has no semiring and is not a member of any; use Zero, One or
// FromScalar to construct weights.
type Weight struct {
	s Semiring
	v float64
}

// Zero returns the ⊕-identity of s (+Inf for every supported semiring).
// It is also the "not final" and "unreachable" sentinel.
func Zero(s Semiring) Weight { return Weight{s: s, v: math.Inf(1)} }

// One returns the ⊗-identity of s (0 for every supported semiring).
func One(s Semiring) Weight { return Weight{s: s, v: 0} }

// NoWeight returns the non-member weight of s, produced by undefined operations
// such as division by Zero.
func NoWeight(s Semiring) Weight { return Weight{s: s, v: math.NaN()} }

// FromScalar constructs a weight of semiring s from its scalar projection.
// An invalid s yields ErrUnsupportedSemiring and a logged diagnostic; NaN and
// -Inf yield ErrBadWeight.
func FromScalar(s Semiring, x float64) (Weight, error) {
	if !s.Valid() {
		Logger().Error("weight type not supported", zap.Stringer("semiring", s), zap.Float64("value", x))
		return Weight{}, fmt.Errorf("%w: %s", ErrUnsupportedSemiring, s)
	}
	if math.IsNaN(x) || math.IsInf(x, -1) {
		return Weight{}, fmt.Errorf("%w: %v", ErrBadWeight, x)
	}
	return Weight{s: s, v: s.round(x)}, nil
}

// FromScalarLenient resolves name and constructs a weight like FromScalar, but
// answers One(Tropical) for an unknown name instead of failing. The diagnostic is
// still logged. It exists for hosts written against that historical fallback.
func FromScalarLenient(name string, x float64) Weight {
	s, err := ParseSemiring(name)
	if err != nil {
		Logger().Warn("falling back to tropical one", zap.String("semiring", name))
		return One(Tropical)
	}
	return Weight{s: s, v: s.round(x)}
}

// Semiring returns the tag of w.
func (w Weight) Semiring() Semiring { return w.s }

// Value returns the type-erased scalar projection of w.
func (w Weight) Value() float64 { return w.v }

// IsZero reports whether w is the semiring Zero.
func (w Weight) IsZero() bool { return math.IsInf(w.v, 1) }

// IsOne reports whether w is the semiring One.
func (w Weight) IsOne() bool { return w.v == 0 }

// Member reports whether w is a proper element of its semiring.
func (w Weight) Member() bool {
	return w.s.Valid() && !math.IsNaN(w.v) && !math.IsInf(w.v, -1)
}

// String formats w the way weights are printed in text automata.
func (w Weight) String() string {
	switch {
	case math.IsNaN(w.v):
		return "BadNumber"
	case math.IsInf(w.v, 1):
		return "Infinity"
	case math.IsInf(w.v, -1):
		return "-Infinity"
	}
	bits := 32
	if w.s == Log64 {
		bits = 64
	}
	return strconv.FormatFloat(w.v, 'g', -1, bits)
}

// Plus returns a ⊕ b.
func Plus(a, b Weight) Weight {
	mustMatch(a, b)
	switch a.s {
	case Tropical:
		if a.v < b.v {
			return a
		}
		return b
	default:
		return Weight{s: a.s, v: a.s.round(logPlus(a.v, b.v))}
	}
}

// Times returns a ⊗ b.
func Times(a, b Weight) Weight {
	mustMatch(a, b)
	if a.IsZero() || b.IsZero() {
		return Zero(a.s)
	}
	return Weight{s: a.s, v: a.s.round(a.v + b.v)}
}

// Divide returns a ⊗ b⁻¹. Every supported semiring is commutative, so left and
// right division coincide. Dividing by Zero yields NoWeight.
func Divide(a, b Weight) Weight {
	mustMatch(a, b)
	if b.IsZero() {
		return NoWeight(a.s)
	}
	if a.IsZero() {
		return Zero(a.s)
	}
	return Weight{s: a.s, v: a.s.round(a.v - b.v)}
}

// Star returns the closure a* = ⊕_{k≥0} aᵏ. Divergent closures yield NoWeight.
func Star(a Weight) Weight {
	switch a.s {
	case Tropical:
		if a.v >= 0 {
			return One(a.s)
		}
		return NoWeight(a.s)
	default:
		if a.v > 0 {
			return Weight{s: a.s, v: a.s.round(math.Log1p(-math.Exp(-a.v)))}
		}
		return NoWeight(a.s)
	}
}

// Quantize rounds w to the nearest multiple of delta. Infinite and NaN
// values are returned unchanged.
func (w Weight) Quantize(delta float64) Weight {
	if math.IsInf(w.v, 0) || math.IsNaN(w.v) || delta <= 0 {
		return w
	}
	return Weight{s: w.s, v: w.s.round(math.Floor(w.v/delta+0.5) * delta)}
}

// ApproxEqual reports whether |a - b| ≤ delta on the scalar projection.
// Two Zero weights are equal.
func ApproxEqual(a, b Weight, delta float64) bool {
	mustMatch(a, b)
	return a.v <= b.v+delta && b.v <= a.v+delta
}

// Less reports whether a is strictly better than b in the natural order of
// a path semiring (a ⊕ b == a, a ≠ b). On the supported semirings this is the
// scalar order, which is also the order used to rank paths.
func Less(a, b Weight) bool {
	mustMatch(a, b)
	return a.v < b.v
}

// logPlus returns -log(e^-a + e^-b) without overflow.
func logPlus(a, b float64) float64 {
	if math.IsInf(a, 1) {
		return b
	}
	if math.IsInf(b, 1) {
		return a
	}
	if a > b {
		return b - math.Log1p(math.Exp(b-a))
	}
	return a - math.Log1p(math.Exp(a-b))
}
