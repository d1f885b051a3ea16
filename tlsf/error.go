// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package tlsf

import "fmt"

// programmingError is the panic payload for caller misuse (double free,
// invalid alignment) and for corrupted allocator invariants. It
// implements error so a recovering test can assert the class of the
// failure without matching message text.
type programmingError struct {
	op  string
	msg string
}

func (e *programmingError) Error() string { return "tlsf: " + e.op + ": " + e.msg }

func panicMisuse(op, msg string) {
	panic(&programmingError{op: op, msg: msg})
}

func panicMisusef(op, format string, args ...any) {
	panic(&programmingError{op: op, msg: fmt.Sprintf(format, args...)})
}
