// SPDX-License-Identifier: MIT

// Package script dispatches the algorithm packages from scalar arguments.
//
// Every entry point takes automata plus plain scalars (deltas, thresholds,
// counts, flags and option names), converts them into the typed options of
// the algorithm package, runs the algorithm and converts results back into
// scalars. It is the layer the flat capi boundary and the fstinfo tool call.
//
// Shapes:
//
//	– Producing:      Compose, Intersect, Difference, Determinize, Disambiguate,
//	                  EpsNormalize, RandGen, Reverse, ShortestPath, Synchronize.
//	– In-place:       ArcSort, Closure, Concat, Connect, Invert, Minimize, Prune,
//	                  Project, Push, RmEpsilon, TopSort, Union.
//	– Scalar/boolean: Equal, Equivalent, Isomorphic, ShortestDistance.
//
// Each call runs inside an OpenTelemetry span named "lvfst.<Op>" from the
// global tracer provider; failures are recorded on the span and logged at
// warn level through Logger.
//
// Errors (sentinel):
//
//	– ErrSemiringMismatch      if two operands use different semirings.
//	– ErrUnsupportedOption     if an option name is not recognized.
//	– ErrRequiresPathSemiring  if a path-ranking algorithm gets a log semiring.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors for dispatch.
var (
	// ErrSemiringMismatch indicates operands over different semirings.
	ErrSemiringMismatch = errors.New("script: operands have different semirings")

	// ErrUnsupportedOption indicates an unrecognized option value.
	ErrUnsupportedOption = errors.New("script: unsupported option")

	// ErrRequiresPathSemiring indicates a path-ranking algorithm over a
	// semiring without the path property. Errors carrying it also match
	// weight.ErrNoPathProperty.
	ErrRequiresPathSemiring = errors.New("script: algorithm requires a path semiring")
)

// Option names accepted by the dispatch functions. The empty string selects
// the first (default) value of each group.
const (
	ClosureStar = "star"
	ClosurePlus = "plus"

	ProjectInput  = "input"
	ProjectOutput = "output"

	ReweightInitial = "initial"
	ReweightFinal   = "final"

	DeterminizeFunctional   = "functional"
	DeterminizeDisambiguate = "disambiguate"

	NormalizeInput  = "input"
	NormalizeOutput = "output"

	SelectUniform = "uniform"
	SelectLogProb = "log_prob"

	FilterSequence = "sequence"
	FilterAuto     = "auto"

	SortILabel = "ilabel"
	SortOLabel = "olabel"
)

const tracerName = "github.com/katalvlaran/lvfst/script"

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the script package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the script package's logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// dispatch runs call inside a span named after op.
func dispatch(op string, f *fst.Fst, delta float64, call func() error) error {
	_, span := otel.Tracer(tracerName).Start(context.Background(), "lvfst."+op,
		trace.WithAttributes(
			attribute.String("lvfst.semiring", f.Semiring().String()),
			attribute.Int("lvfst.states", f.NumStates()),
			attribute.Float64("lvfst.delta", delta),
		),
	)
	defer span.End()

	err := call()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		Logger().Warn("algorithm failed",
			zap.String("op", op),
			zap.Stringer("semiring", f.Semiring()),
			zap.Int("states", f.NumStates()),
			zap.Error(err),
		)
	}
	return err
}

func sameSemiring(a, b *fst.Fst) error {
	if a.Semiring() != b.Semiring() {
		return fmt.Errorf("%w: %s and %s", ErrSemiringMismatch, a.Semiring(), b.Semiring())
	}
	return nil
}

func requirePath(op string, f *fst.Fst) error {
	if err := f.Semiring().RequirePath(); err != nil {
		return fmt.Errorf("%w: %s over %s: %w", ErrRequiresPathSemiring, op, f.Semiring(), err)
	}
	return nil
}

func unsupported(kind, value string) error {
	return fmt.Errorf("%w: %s %q", ErrUnsupportedOption, kind, value)
}

// orDefault maps a non-positive delta to weight.DefaultDelta.
func orDefault(delta float64) float64 {
	if delta > 0 {
		return delta
	}
	return weight.DefaultDelta
}
