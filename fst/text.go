// SPDX-License-Identifier: MIT
// File: text.go
// Role: AT&T-style text printing and compiling.
// Format (one item per line, fields separated by tabs or spaces):
//   arc     src dst ilabel olabel [weight]   (transducer)
//           src dst label [weight]           (acceptor)
//   final   state [weight]
// The first line's source state is the start. Weights equal to One are omitted.

package fst

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfst/weight"
)

// WriteText prints f in text form. When acceptor is true and f is an
// acceptor, arcs carry a single label column.
func WriteText(w io.Writer, f *Fst, acceptor bool) error {
	acceptor = acceptor && f.Kind() == Acceptor
	bw := bufio.NewWriter(w)
	emit := func(s StateID) {
		st := f.states[s]
		for _, a := range st.arcs {
			if acceptor {
				fmt.Fprintf(bw, "%d\t%d\t%d", s, a.NextState, a.ILabel)
			} else {
				fmt.Fprintf(bw, "%d\t%d\t%d\t%d", s, a.NextState, a.ILabel, a.OLabel)
			}
			if !a.Weight.IsOne() {
				fmt.Fprintf(bw, "\t%s", a.Weight)
			}
			bw.WriteByte('\n')
		}
		if st.final.IsZero() {
			return
		}
		if st.final.IsOne() {
			fmt.Fprintf(bw, "%d\n", s)
		} else {
			fmt.Fprintf(bw, "%d\t%s\n", s, st.final)
		}
	}
	if f.start != NoStateID {
		emit(f.start)
	}
	for s := range f.states {
		if StateID(s) != f.start {
			emit(StateID(s))
		}
	}
	return bw.Flush()
}

// textStateSlack is how far a state id may run ahead of the input consumed so
// far. Ids beyond it are ErrBadFormat, which keeps allocation proportional to
// the input size.
const textStateSlack = 1 << 12

// ReadText compiles the text form into a new automaton over semiring s.
// States are created up to the largest id mentioned, which may exceed the
// number of bytes read so far by at most textStateSlack.
func ReadText(r io.Reader, s weight.Semiring, acceptor bool) (*Fst, error) {
	f, err := New(s)
	if err != nil {
		return nil, err
	}
	arcFields := 4
	if acceptor {
		arcFields = 3
	}
	sc := bufio.NewScanner(r)
	line, consumed := 0, 0
	for sc.Scan() {
		line++
		consumed += len(sc.Bytes()) + 1
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		nids := 1
		if len(fields) > 2 {
			nids = min(len(fields), arcFields)
		}
		nums, err := parseIDs(fields, nids)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
		}
		src := nums[0]
		if err = ensureState(f, src, consumed); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
		}
		if f.start == NoStateID {
			f.start = src
		}
		switch {
		case len(fields) <= 2:
			x := 0.0
			if len(fields) == 2 {
				if x, err = parseWeight(fields[1]); err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
				}
			}
			if err = f.SetFinalScalar(src, x); err != nil {
				return nil, err
			}
		case len(fields) == arcFields || len(fields) == arcFields+1:
			dst := nums[1]
			if err = ensureState(f, dst, consumed); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
			}
			il := nums[2]
			ol := il
			if !acceptor {
				ol = nums[3]
			}
			x := 0.0
			if len(fields) == arcFields+1 {
				if x, err = parseWeight(fields[arcFields]); err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
				}
			}
			if err = f.AddArcScalar(src, il, ol, x, dst); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
			}
		default:
			return nil, fmt.Errorf("%w: line %d: %d fields", ErrBadFormat, line, len(fields))
		}
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func ensureState(f *Fst, s StateID, consumed int) error {
	need := int(s) + 1 - len(f.states)
	if need <= 0 {
		return nil
	}
	if int(s) > consumed+textStateSlack {
		return fmt.Errorf("state id %d after %d bytes", s, consumed)
	}
	f.AddStates(need)
	return nil
}

func parseIDs(fields []string, n int) ([]int32, error) {
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseInt(fields[i], 10, 32)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("negative id %d", v)
		}
		out[i] = int32(v)
	}
	return out, nil
}

func parseWeight(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
