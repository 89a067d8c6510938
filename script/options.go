// SPDX-License-Identifier: MIT

package script

import (
	"github.com/katalvlaran/lvfst/compose"
	"github.com/katalvlaran/lvfst/determinize"
	"github.com/katalvlaran/lvfst/epsilon"
	"github.com/katalvlaran/lvfst/randgen"
	"github.com/katalvlaran/lvfst/rational"
	"github.com/katalvlaran/lvfst/reweight"
	"github.com/katalvlaran/lvfst/transform"
)

func closureType(s string) (rational.ClosureType, error) {
	switch s {
	case "", ClosureStar:
		return rational.ClosureStar, nil
	case ClosurePlus:
		return rational.ClosurePlus, nil
	}
	return 0, unsupported("closure type", s)
}

func projectType(s string) (transform.ProjectType, error) {
	switch s {
	case "", ProjectInput:
		return transform.ProjectInput, nil
	case ProjectOutput:
		return transform.ProjectOutput, nil
	}
	return 0, unsupported("project type", s)
}

func reweightType(s string) (reweight.Type, error) {
	switch s {
	case "", ReweightInitial:
		return reweight.ToInitial, nil
	case ReweightFinal:
		return reweight.ToFinal, nil
	}
	return 0, unsupported("reweight type", s)
}

func determinizeType(s string) (determinize.Type, error) {
	switch s {
	case "", DeterminizeFunctional:
		return determinize.TypeFunctional, nil
	case DeterminizeDisambiguate:
		return determinize.TypeDisambiguate, nil
	}
	return 0, unsupported("determinize type", s)
}

func normalizeType(s string) (epsilon.NormalizeType, error) {
	switch s {
	case "", NormalizeInput:
		return epsilon.NormalizeInput, nil
	case NormalizeOutput:
		return epsilon.NormalizeOutput, nil
	}
	return 0, unsupported("eps-normalize type", s)
}

func selector(s string) (randgen.Selector, error) {
	switch s {
	case "", SelectUniform:
		return randgen.UniformSelector, nil
	case SelectLogProb:
		return randgen.LogProbSelector, nil
	}
	return 0, unsupported("randgen selector", s)
}

func composeFilter(s string) (compose.FilterType, error) {
	switch s {
	case "", FilterSequence:
		return compose.SequenceFilter, nil
	case FilterAuto:
		return compose.AutoFilter, nil
	}
	return 0, unsupported("compose filter", s)
}

func sortType(s string) (transform.SortType, error) {
	switch s {
	case "", SortILabel:
		return transform.SortByILabel, nil
	case SortOLabel:
		return transform.SortByOLabel, nil
	}
	return 0, unsupported("sort type", s)
}
