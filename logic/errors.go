package logic

import "fmt"

// LexError is returned when the tokenizer hits a character it cannot turn
// into a token, or an unterminated quoted label.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

// ParseError is returned on any grammar violation. Parsing never recovers or
// returns partial formulas.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

// InvalidStateError is returned when bound accessors are used on a formula
// that has no bound.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}
