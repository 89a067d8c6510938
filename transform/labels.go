// SPDX-License-Identifier: MIT

package transform

import "github.com/katalvlaran/lvfst/fst"

// ProjectType selects the side kept by Project.
type ProjectType uint8

const (
	// ProjectInput copies input labels onto output labels.
	ProjectInput ProjectType = iota
	// ProjectOutput copies output labels onto input labels.
	ProjectOutput
)

// SortType selects the arc order of ArcSort.
type SortType uint8

const (
	// SortByILabel orders arcs by input label.
	SortByILabel SortType = iota
	// SortByOLabel orders arcs by output label.
	SortByOLabel
)

// Invert swaps the input and output label of every arc in place.
func Invert(f *fst.Fst) {
	mapArcs(f, func(a fst.Arc) fst.Arc {
		a.ILabel, a.OLabel = a.OLabel, a.ILabel
		return a
	})
}

// Project turns f into an acceptor of its input (or output) language in place.
func Project(f *fst.Fst, t ProjectType) {
	mapArcs(f, func(a fst.Arc) fst.Arc {
		if t == ProjectInput {
			a.OLabel = a.ILabel
		} else {
			a.ILabel = a.OLabel
		}
		return a
	})
}

// ArcSort orders the arcs of every state by input or output label.
func ArcSort(f *fst.Fst, t SortType) {
	if t == SortByOLabel {
		f.ArcSort(fst.OLabelLess)
		return
	}
	f.ArcSort(fst.ILabelLess)
}

// mapArcs rewrites every arc through fn using mutable arc iterators. fn must
// keep the destination and weight semiring, so SetValue cannot fail.
func mapArcs(f *fst.Fst, fn func(fst.Arc) fst.Arc) {
	for si := fst.NewStateIterator(f); !si.Done(); si.Next() {
		it, err := fst.NewMutableArcIterator(f, si.Value())
		if err != nil {
			continue
		}
		for ; !it.Done(); it.Next() {
			_ = it.SetValue(fn(it.Value()))
		}
		it.Close()
	}
}
