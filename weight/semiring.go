// SPDX-License-Identifier: MIT

package weight

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Sentinel errors for the weight package.
var (
	// ErrUnsupportedSemiring indicates an unknown semiring tag or tag name.
	ErrUnsupportedSemiring = errors.New("weight: unsupported semiring")

	// ErrSemiringMismatch indicates two weights of different semirings were combined.
	ErrSemiringMismatch = errors.New("weight: semiring mismatch")

	// ErrNoPathProperty indicates an algorithm that ranks paths was asked to
	// run over a semiring without the path property.
	ErrNoPathProperty = errors.New("weight: semiring lacks the path property")

	// ErrBadWeight indicates a scalar that is not a member of any supported
	// semiring (NaN or -Inf).
	ErrBadWeight = errors.New("weight: scalar is not a semiring member")
)

// Semiring identifies the algebraic structure a Weight belongs to.
// The zero value is not a valid semiring.
type Semiring uint8

const (
	// Tropical is the (min, +) semiring over single precision reals.
	Tropical Semiring = iota + 1

	// Log is the (-log(e^-a + e^-b), +) semiring over single precision reals.
	Log

	// Log64 is Log over double precision reals.
	Log64
)

// Semirings lists every supported semiring in tag order.
var Semirings = []Semiring{Tropical, Log, Log64}

// Valid reports whether s is one of the supported semirings.
func (s Semiring) Valid() bool {
	switch s {
	case Tropical, Log, Log64:
		return true
	default:
		return false
	}
}

// String returns the weight type name ("tropical", "log", "log64").
func (s Semiring) String() string {
	switch s {
	case Tropical:
		return "tropical"
	case Log:
		return "log"
	case Log64:
		return "log64"
	default:
		return fmt.Sprintf("semiring(%d)", uint8(s))
	}
}

// ArcType returns the arc type name used for automata over s.
// Tropical automata use the historical "standard" name.
func (s Semiring) ArcType() string {
	switch s {
	case Tropical:
		return "standard"
	case Log:
		return "log"
	case Log64:
		return "log64"
	default:
		return "unknown"
	}
}

// HasPathProperty reports whether a ⊕ b is always either a or b.
// Shortest-path, pruning and disambiguation require it.
func (s Semiring) HasPathProperty() bool {
	return s == Tropical
}

// RequirePath returns ErrNoPathProperty unless s has the path property.
func (s Semiring) RequirePath() error {
	if !s.HasPathProperty() {
		return fmt.Errorf("%w: %s", ErrNoPathProperty, s)
	}
	return nil
}

// Idempotent reports whether a ⊕ a == a.
func (s Semiring) Idempotent() bool {
	return s == Tropical
}

// round applies the semiring's storage precision.
func (s Semiring) round(x float64) float64 {
	if s == Log64 {
		return x
	}
	return float64(float32(x))
}

// ParseSemiring resolves a weight type or arc type name to a Semiring.
// Unknown names are reported with ErrUnsupportedSemiring and logged.
func ParseSemiring(name string) (Semiring, error) {
	switch name {
	case "tropical", "standard":
		return Tropical, nil
	case "log":
		return Log, nil
	case "log64":
		return Log64, nil
	default:
		Logger().Error("weight type not supported", zap.String("semiring", name))
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedSemiring, name)
	}
}

// MismatchError is the panic value raised when weights of different
// semirings are combined. It unwraps to ErrSemiringMismatch.
type MismatchError struct {
	Left, Right Semiring
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("weight: semiring mismatch: %s vs %s", e.Left, e.Right)
}

// Unwrap returns ErrSemiringMismatch.
func (e *MismatchError) Unwrap() error { return ErrSemiringMismatch }

func mustMatch(a, b Weight) {
	if a.s != b.s {
		panic(&MismatchError{Left: a.s, Right: b.s})
	}
}
