// SPDX-License-Identifier: MIT

// Package weight defines the semirings that lvfst automata are weighted over and
// the Weight value that arcs and final states carry.
//
// A Semiring is a closed enumeration: Tropical, Log and Log64. Every Weight is
// tagged with exactly one Semiring and the algebra (Plus, Times, Divide, ...)
// only combines weights that share a tag. Combining weights of different
// semirings is a programming error and panics with an error wrapping
// ErrSemiringMismatch; boundary layers (script, capi) check tags before they
// call into the algebra, so host input can never trigger that panic.
//
// Semirings:
//
//	Tropical  ⊕ = min, ⊗ = +, Zero = +Inf, One = 0, single precision.
//	Log       ⊕ = -log(e^-a + e^-b), ⊗ = +, Zero = +Inf, One = 0, single precision.
//	Log64     as Log, double precision.
//
// Scalar projection:
//
// Value() returns the raw float64 of a weight. The projection is lossy: the
// tag is dropped, so converting back requires FromScalar(tag, x). Single
// precision semirings round on construction, so FromScalar(Tropical, x).Value()
// equals float64(float32(x)).
//
// Unsupported tags:
//
// FromScalar and ParseSemiring reject unknown tags with ErrUnsupportedSemiring
// and log a diagnostic through Logger(). FromScalarLenient keeps the older
// behaviour of answering Tropical One for an unknown tag name, still logging
// the diagnostic, for hosts that rely on it.
//
// FromScalar also rejects NaN and -Inf with ErrBadWeight. NoWeight is the only
// way to obtain a non-member, and only undefined operations produce it.
package weight
