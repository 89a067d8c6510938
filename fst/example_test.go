package fst_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// ExampleFst builds a two-state tropical acceptor and prints it in text form.
func ExampleFst() {
	f, _ := fst.New(weight.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	_ = f.SetStart(s0)
	_ = f.AddArcScalar(s0, 1, 1, 0.5, s1)
	_ = f.SetFinalScalar(s1, 0)

	fmt.Println(f.ArcType(), f.NumStates(), f.NumArcs(s0))
	_ = fst.WriteText(os.Stdout, f, true)
	// Output:
	// standard 2 1
	// 0	1	1	0.5
	// 1
}

// ExampleMutableArcIterator rewrites every arc weight in place.
func ExampleMutableArcIterator() {
	f, _ := fst.New(weight.Log64)
	f.AddStates(2)
	_ = f.SetStart(0)
	_ = f.AddArcScalar(0, 1, 1, 1, 1)
	_ = f.AddArcScalar(0, 2, 2, 2, 1)

	it, _ := fst.NewMutableArcIterator(f, 0)
	for ; !it.Done(); it.Next() {
		a := it.Value()
		_ = it.SetValueScalar(a.ILabel, a.OLabel, a.Weight.Value()*10, a.NextState)
	}
	it.Close()
	for _, a := range f.Arcs(0) {
		fmt.Println(a.ILabel, a.Weight)
	}
	// Output:
	// 1 10
	// 2 20
}
