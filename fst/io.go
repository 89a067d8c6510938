// SPDX-License-Identifier: MIT
// File: io.go
// Role: Binary serialization.
// Format (little endian):
//   header  magic "LVFS", version u8, semiring u8, pad u16, start i32, nstates i32
//   state   final f64, narcs i32
//   arc     ilabel i32, olabel i32, weight f64, next i32
// Weights are stored at float64 so every semiring round-trips exactly.

package fst

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvfst/weight"
)

const formatVersion uint8 = 1

var magic = [4]byte{'L', 'V', 'F', 'S'}

type fileHeader struct {
	Magic     [4]byte
	Version   uint8
	Semiring  uint8
	_         uint16
	Start     int32
	NumStates int32
}

type stateRecord struct {
	Final   float64
	NumArcs int32
}

type arcRecord struct {
	ILabel    int32
	OLabel    int32
	Weight    float64
	NextState int32
}

// Write encodes f to w in the binary format.
func (f *Fst) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	hdr := fileHeader{
		Magic:     magic,
		Version:   formatVersion,
		Semiring:  uint8(f.semiring),
		Start:     f.start,
		NumStates: int32(len(f.states)),
	}
	if err := binary.Write(bw, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	for _, st := range f.states {
		if err := binary.Write(bw, binary.LittleEndian, &stateRecord{Final: st.final.Value(), NumArcs: int32(len(st.arcs))}); err != nil {
			return err
		}
		for _, a := range st.arcs {
			rec := arcRecord{ILabel: a.ILabel, OLabel: a.OLabel, Weight: a.Weight.Value(), NextState: a.NextState}
			if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// maxReserve bounds capacity taken on trust from counts in the encoding.
// Slices grow past it only as records actually decode.
const maxReserve = 1 << 12

type decodedState struct {
	final float64
	arcs  []arcRecord
}

// Read decodes an automaton written by Write. Any structural inconsistency
// (bad magic, unknown semiring, truncation, dangling destination) is
// ErrBadFormat. Memory use is proportional to the bytes consumed, never to the
// counts the header claims.
func Read(r io.Reader) (*Fst, error) {
	br := bufio.NewReader(r)
	var hdr fileHeader
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadFormat, err)
	}
	if hdr.Magic != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadFormat, hdr.Magic[:])
	}
	if hdr.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadFormat, hdr.Version)
	}
	f, err := New(weight.Semiring(hdr.Semiring))
	if err != nil {
		return nil, err
	}
	if hdr.NumStates < 0 || hdr.Start < NoStateID || hdr.Start >= hdr.NumStates {
		return nil, fmt.Errorf("%w: start %d of %d states", ErrBadFormat, hdr.Start, hdr.NumStates)
	}

	states := make([]decodedState, 0, min(int(hdr.NumStates), maxReserve))
	for s := int32(0); s < hdr.NumStates; s++ {
		var sr stateRecord
		if err = binary.Read(br, binary.LittleEndian, &sr); err != nil {
			return nil, fmt.Errorf("%w: state %d: %v", ErrBadFormat, s, err)
		}
		if sr.NumArcs < 0 {
			return nil, fmt.Errorf("%w: state %d has %d arcs", ErrBadFormat, s, sr.NumArcs)
		}
		ds := decodedState{final: sr.Final, arcs: make([]arcRecord, 0, min(int(sr.NumArcs), maxReserve))}
		for i := int32(0); i < sr.NumArcs; i++ {
			var ar arcRecord
			if err = binary.Read(br, binary.LittleEndian, &ar); err != nil {
				return nil, fmt.Errorf("%w: state %d arc %d: %v", ErrBadFormat, s, i, err)
			}
			ds.arcs = append(ds.arcs, ar)
		}
		states = append(states, ds)
	}

	f.ReserveStates(len(states))
	f.AddStates(len(states))
	f.start = hdr.Start
	for s, ds := range states {
		if err = f.SetFinalScalar(StateID(s), ds.final); err != nil {
			return nil, fmt.Errorf("%w: state %d: %w", ErrBadFormat, s, err)
		}
		f.ReserveArcs(StateID(s), len(ds.arcs))
		for _, ar := range ds.arcs {
			if err = f.AddArcScalar(StateID(s), ar.ILabel, ar.OLabel, ar.Weight, ar.NextState); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBadFormat, err)
			}
		}
	}
	return f, nil
}

// ReadFile reads an automaton from the binary file at path.
func ReadFile(path string) (*Fst, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fst: read %s: %w", path, err)
	}
	defer fh.Close()
	f, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("fst: read %s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes f to path in the binary format, replacing any existing file.
func (f *Fst) WriteFile(path string) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fst: write %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, fh.Close())
	}()
	if err = f.Write(fh); err != nil {
		return fmt.Errorf("fst: write %s: %w", path, err)
	}
	return nil
}
