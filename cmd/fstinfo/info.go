package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/weight"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(24)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))
)

type info struct {
	name       string
	fstType    string
	arcType    string
	semiring   string
	kind       string
	states     int
	arcs       int
	finals     int
	start      fst.StateID
	iEps       int
	oEps       int
	accessible int
	props      fst.Properties
	total      weight.Weight
	totalErr   error
}

func collect(name string, f *fst.Fst, delta float64) info {
	in := info{
		name:     name,
		fstType:  f.Type(),
		arcType:  f.ArcType(),
		semiring: f.WeightType(),
		kind:     f.Kind().String(),
		states:   f.NumStates(),
		arcs:     f.TotalArcs(),
		start:    f.Start(),
		props:    f.Properties(),
		total:    weight.Zero(f.Semiring()),
	}
	for s := fst.StateID(0); int(s) < in.states; s++ {
		if f.IsFinal(s) {
			in.finals++
		}
		in.iEps += f.NumInputEpsilons(s)
		in.oEps += f.NumOutputEpsilons(s)
	}
	if in.start == fst.NoStateID {
		return in
	}
	d, err := shortest.Distance(f, shortest.WithReverse(), shortest.WithDelta(delta))
	if err != nil {
		in.totalErr = err
	} else {
		in.total = d.At(in.start)
	}
	fwd, err := shortest.Distance(f, shortest.WithDelta(delta))
	if err == nil {
		for _, w := range fwd.Weights() {
			if !w.IsZero() {
				in.accessible++
			}
		}
	}
	return in
}

func (in info) rows() [][2]string {
	rows := [][2]string{
		{"fst type", in.fstType},
		{"arc type", in.arcType},
		{"weight type", in.semiring},
		{"kind", in.kind},
		{"# of states", fmt.Sprint(in.states)},
		{"# of arcs", fmt.Sprint(in.arcs)},
		{"initial state", fmt.Sprint(in.start)},
		{"# of final states", fmt.Sprint(in.finals)},
		{"# of input eps arcs", fmt.Sprint(in.iEps)},
		{"# of output eps arcs", fmt.Sprint(in.oEps)},
		{"# of accessible states", fmt.Sprint(in.accessible)},
		{"input deterministic", yesNo(in.props.InputDeterministic)},
		{"output deterministic", yesNo(in.props.OutputDeterministic)},
		{"weighted", yesNo(in.props.Weighted)},
		{"acyclic", yesNo(in.props.Acyclic)},
		{"initial acyclic", yesNo(in.props.InitialAcyclic)},
	}
	total := in.total.String()
	if in.totalErr != nil {
		total = "error: " + in.totalErr.Error()
	}
	return append(rows, [2]string{"total weight", total})
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// render formats in as a styled two-column table. Styles degrade to plain
// text when the output is not a terminal.
func (in info) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fstinfo"))
	b.WriteString(" ")
	b.WriteString(in.name)
	b.WriteString("\n\n")
	for _, r := range in.rows() {
		b.WriteString(keyStyle.Render(r[0]))
		b.WriteString(valueStyle.Render(r[1]))
		b.WriteString("\n")
	}
	return b.String()
}
