package lambda

import "fmt"

// BadExpressionError indicates an expression that is malformed with respect
// to its Language: an out-of-range primitive or invention reference, or an
// invention that is not closed. It signals a programming error in the caller
// rather than an expected runtime condition, but is recoverable.
type BadExpressionError struct {
	Msg string
}

func (e *BadExpressionError) Error() string {
	return e.Msg
}

func NewBadExpressionError(format string, args ...any) *BadExpressionError {
	return &BadExpressionError{Msg: fmt.Sprintf(format, args...)}
}

// ParseError reports malformed textual input, with the byte offset at which
// parsing failed. It never indicates internal corruption.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at index %d", e.Msg, e.Offset)
}
