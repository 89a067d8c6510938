// SPDX-License-Identifier: MIT

package transform

import "errors"

var (
	// ErrUnknownCode indicates a label that the Encoder never issued.
	ErrUnknownCode = errors.New("transform: label was not produced by this encoder")

	// ErrUnboundedDelay indicates that Synchronize met a cycle that grows the
	// delay between input and output without bound.
	ErrUnboundedDelay = errors.New("transform: automaton has unbounded delay")
)
