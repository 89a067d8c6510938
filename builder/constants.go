// SPDX-License-Identifier: MIT

package builder

// Method names used to prefix constructor errors.
const (
	MethodBuild         = "Build"
	MethodLinear        = "Linear"
	MethodString        = "String"
	MethodTransduction  = "Transduction"
	MethodSigma         = "Sigma"
	MethodRandomStrings = "RandomStrings"
)

// MinAlphabet is the smallest alphabet RandomStrings can draw from.
const MinAlphabet = 1

// MinStrings is the smallest number of strings RandomStrings produces.
const MinStrings = 1
