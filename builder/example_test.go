package builder_test

import (
	"os"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// ExampleBuild compiles the union of two strings with a final cost.
func ExampleBuild() {
	f, _ := builder.Build(weight.Tropical,
		[]builder.BuilderOption{builder.WithFinalWeight(2)},
		builder.Strings("a", "b"))
	_ = fst.WriteText(os.Stdout, f, true)
	// Output:
	// 0	1	97
	// 0	2	98
	// 1	2
	// 2	2
}
