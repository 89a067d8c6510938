// SPDX-License-Identifier: MIT

// Package capi is the flat, handle-based boundary over lvfst.
//
// A Session owns four handle tables: automata, state iterators, arc
// iterators and mutable arc iterators. Every object crosses the boundary
// as an opaque Handle that the caller releases exactly once with the
// matching Delete method. Using a released handle, or releasing it again,
// fails with ErrInvalidHandle. Iterators lease their automaton: deleting an
// automaton while iterators over it are alive fails with ErrHandleBorrowed.
//
// Results follow three conventions:
//
//	– Structural mutations report success as a bool and leave the automaton
//	  unchanged on false (invalid state id, invalid destination, ...).
//	– Queries never fail on bad state ids: they answer Zero's scalar (or 0
//	  for counts).
//	– Invalid handles, I/O and algorithm failures are returned as *Error.
//
// A Session is not safe for concurrent mutation of one automaton; its
// handle tables are internally locked.
package capi

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the capi package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the capi package's logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Session owns the handles issued to one caller.
type Session struct {
	ID uuid.UUID

	ctx   context.Context
	store store.Store

	fsts     *table[*fst.Fst]
	states   *table[*stateIter]
	arcs     *table[*arcIter]
	mutables *table[*mutableIter]
}

// Options configures a Session.
type Options struct {
	Store   store.Store     // backing store of FstRead/FstWrite
	Context context.Context // passed to the store
}

// Option represents a functional option for NewSession.
type Option func(*Options)

// WithStore binds FstRead and FstWrite to st.
func WithStore(st store.Store) Option {
	return func(o *Options) {
		if st != nil {
			o.Store = st
		}
	}
}

// WithContext sets the context handed to the store.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Context = ctx
		}
	}
}

// DefaultOptions returns a FileStore with keys used as paths and
// context.Background.
func DefaultOptions() Options {
	return Options{Store: store.NewFileStore(""), Context: context.Background()}
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{
		ID:       uuid.New(),
		ctx:      o.Context,
		store:    o.Store,
		fsts:     newTable[*fst.Fst]("fst"),
		states:   newTable[*stateIter]("state iterator"),
		arcs:     newTable[*arcIter]("arc iterator"),
		mutables: newTable[*mutableIter]("mutable arc iterator"),
	}
	Logger().Debug("session opened", s.field())
	return s
}

func (s *Session) field() zap.Field { return zap.Stringer("session", s.ID) }

// Live returns the number of live automaton and iterator handles.
func (s *Session) Live() int {
	return s.fsts.len() + s.states.len() + s.arcs.len() + s.mutables.len()
}

// Close releases every handle still held, iterators first. Leaked handles
// are logged at warn level.
func (s *Session) Close() {
	n := 0
	for _, h := range s.states.live() {
		n++
		_ = s.StateIteratorDelete(h)
	}
	for _, h := range s.arcs.live() {
		n++
		_ = s.ArcIteratorDelete(h)
	}
	for _, h := range s.mutables.live() {
		n++
		_ = s.MutableArcIteratorDelete(h)
	}
	for _, h := range s.fsts.live() {
		n++
		_ = s.FstDelete(h)
	}
	if n > 0 {
		Logger().Warn("session closed with live handles", s.field(), zap.Int("handles", n))
	}
}

func (s *Session) fst(op string, h Handle) (*fst.Fst, error) {
	f, err := s.fsts.get(h)
	return f, wrap(op, h, err)
}

func (s *Session) issue(op string, f *fst.Fst) (Handle, error) {
	h, err := s.fsts.add(f)
	return h, wrap(op, 0, err)
}

// rejected logs a structural mutation that returned false.
func (s *Session) rejected(op string, h Handle, err error) bool {
	Logger().Debug("mutation rejected", s.field(),
		zap.String("op", op), zap.Uint32("handle", uint32(h)), zap.Error(err))
	return false
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// VectorFstCreate returns an empty automaton over the semiring named tag
// ("tropical", "log", "log64").
func (s *Session) VectorFstCreate(tag string) (Handle, error) {
	sr, err := weight.ParseSemiring(tag)
	if err != nil {
		return 0, wrap("VectorFstCreate", 0, err)
	}
	f, err := fst.New(sr)
	if err != nil {
		return 0, wrap("VectorFstCreate", 0, err)
	}
	return s.issue("VectorFstCreate", f)
}

// FstRead loads the automaton stored under key (a path for the default
// FileStore).
func (s *Session) FstRead(key string) (Handle, error) {
	f, err := s.store.Load(s.ctx, key)
	if err != nil {
		return 0, wrapIO("FstRead", 0, err)
	}
	return s.issue("FstRead", f)
}

// FstWrite saves the automaton of h under key.
func (s *Session) FstWrite(h Handle, key string) error {
	f, err := s.fst("FstWrite", h)
	if err != nil {
		return err
	}
	return wrapIO("FstWrite", h, s.store.Save(s.ctx, key, f))
}

// FstDelete releases h.
func (s *Session) FstDelete(h Handle) error {
	_, err := s.fsts.release(h)
	return wrap("FstDelete", h, err)
}

// FstCopy returns a new handle to a deep copy of h.
func (s *Session) FstCopy(h Handle) (Handle, error) {
	f, err := s.fst("FstCopy", h)
	if err != nil {
		return 0, err
	}
	return s.issue("FstCopy", f.Copy())
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// FstStart returns the start state, or -1.
func (s *Session) FstStart(h Handle) (int32, error) {
	f, err := s.fst("FstStart", h)
	if err != nil {
		return fst.NoStateID, err
	}
	return f.Start(), nil
}

// FstFinal returns the final weight of state as a scalar; Zero's scalar for
// non-final or unknown states.
func (s *Session) FstFinal(h Handle, state int32) (float64, error) {
	f, err := s.fst("FstFinal", h)
	if err != nil {
		return weight.Zero(weight.Tropical).Value(), err
	}
	return f.Final(state).Value(), nil
}

// FstNumStates returns the number of states.
func (s *Session) FstNumStates(h Handle) (int, error) {
	f, err := s.fst("FstNumStates", h)
	if err != nil {
		return 0, err
	}
	return f.NumStates(), nil
}

// FstNumArcs returns the number of arcs leaving state, 0 for unknown states.
func (s *Session) FstNumArcs(h Handle, state int32) (int, error) {
	f, err := s.fst("FstNumArcs", h)
	if err != nil {
		return 0, err
	}
	return f.NumArcs(state), nil
}

// FstNumInputEpsilons returns the number of input-ε arcs leaving state.
func (s *Session) FstNumInputEpsilons(h Handle, state int32) (int, error) {
	f, err := s.fst("FstNumInputEpsilons", h)
	if err != nil {
		return 0, err
	}
	return f.NumInputEpsilons(state), nil
}

// FstNumOutputEpsilons returns the number of output-ε arcs leaving state.
func (s *Session) FstNumOutputEpsilons(h Handle, state int32) (int, error) {
	f, err := s.fst("FstNumOutputEpsilons", h)
	if err != nil {
		return 0, err
	}
	return f.NumOutputEpsilons(state), nil
}

// FstWeightType returns the semiring name.
func (s *Session) FstWeightType(h Handle) (string, error) {
	f, err := s.fst("FstWeightType", h)
	if err != nil {
		return "", err
	}
	return f.WeightType(), nil
}

// FstArcType returns the arc type name ("standard", "log", "log64").
func (s *Session) FstArcType(h Handle) (string, error) {
	f, err := s.fst("FstArcType", h)
	if err != nil {
		return "", err
	}
	return f.ArcType(), nil
}

// FstType returns the structural type name ("vector").
func (s *Session) FstType(h Handle) (string, error) {
	f, err := s.fst("FstType", h)
	if err != nil {
		return "", err
	}
	return f.Type(), nil
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// FstSetStart makes state the start state.
func (s *Session) FstSetStart(h Handle, state int32) (bool, error) {
	f, err := s.fst("FstSetStart", h)
	if err != nil {
		return false, err
	}
	if err := f.SetStart(state); err != nil {
		return s.rejected("FstSetStart", h, err), nil
	}
	return true, nil
}

// FstSetFinal sets the final weight of state from a scalar in the
// automaton's semiring.
func (s *Session) FstSetFinal(h Handle, state int32, w float64) (bool, error) {
	f, err := s.fst("FstSetFinal", h)
	if err != nil {
		return false, err
	}
	if err := f.SetFinalScalar(state, w); err != nil {
		return s.rejected("FstSetFinal", h, err), nil
	}
	return true, nil
}

// FstAddArc appends an arc to state.
func (s *Session) FstAddArc(h Handle, state, ilabel, olabel int32, w float64, next int32) (bool, error) {
	f, err := s.fst("FstAddArc", h)
	if err != nil {
		return false, err
	}
	if err := f.AddArcScalar(state, ilabel, olabel, w, next); err != nil {
		return s.rejected("FstAddArc", h, err), nil
	}
	return true, nil
}

// FstAddState appends a state and returns its id.
func (s *Session) FstAddState(h Handle) (int32, error) {
	f, err := s.fst("FstAddState", h)
	if err != nil {
		return fst.NoStateID, err
	}
	return f.AddState(), nil
}

// FstAddStates appends n states and returns the first new id, or -1 when
// n <= 0.
func (s *Session) FstAddStates(h Handle, n int) (int32, error) {
	f, err := s.fst("FstAddStates", h)
	if err != nil {
		return fst.NoStateID, err
	}
	return f.AddStates(n), nil
}

// FstDeleteArcs removes every arc leaving state.
func (s *Session) FstDeleteArcs(h Handle, state int32) (bool, error) {
	f, err := s.fst("FstDeleteArcs", h)
	if err != nil {
		return false, err
	}
	if state < 0 || int(state) >= f.NumStates() {
		return s.rejected("FstDeleteArcs", h, fst.ErrStateNotFound), nil
	}
	f.DeleteArcs(state)
	return true, nil
}

// FstDeleteStates removes every state.
func (s *Session) FstDeleteStates(h Handle) error {
	f, err := s.fst("FstDeleteStates", h)
	if err != nil {
		return err
	}
	f.DeleteStates()
	return nil
}

// FstReserveArcs is a capacity hint for n arcs on state.
func (s *Session) FstReserveArcs(h Handle, state int32, n int) (bool, error) {
	f, err := s.fst("FstReserveArcs", h)
	if err != nil {
		return false, err
	}
	if state < 0 || int(state) >= f.NumStates() {
		return s.rejected("FstReserveArcs", h, fst.ErrStateNotFound), nil
	}
	f.ReserveArcs(state, n)
	return true, nil
}

// FstReserveStates is a capacity hint for n states.
func (s *Session) FstReserveStates(h Handle, n int) error {
	f, err := s.fst("FstReserveStates", h)
	if err != nil {
		return err
	}
	f.ReserveStates(n)
	return nil
}
