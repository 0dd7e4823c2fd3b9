// Package wenderr holds the two boundary error shapes that cross out of the
// lex/parse/analyze/interp pipeline: one struct per failure shape, each a
// plain error with no behavior beyond formatting itself.
package wenderr

import "fmt"

// ParseError is raised by lex or parse. Offset is the rune offset (matching
// token.Token.Offset) at which the failure was detected; for input
// exhausted mid-token it is the length of the input.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Message, e.Offset)
}

// EvalError is raised by analyze or interp. It carries no source position:
// analysis and interpretation both work over an already-parsed tree whose
// nodes record no source offsets.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}

// Newf constructs an EvalError with a formatted message. Most analyze/interp
// call sites use this rather than building an EvalError literal.
func Newf(format string, args ...interface{}) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}
