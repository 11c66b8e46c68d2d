package typesystem

import "fmt"

// UnificationError indicates that two types cannot be made equal.
type UnificationError struct {
	Left  Type
	Right Type
	Msg   string
}

func (e *UnificationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

func NewUnificationError(left, right Type) *UnificationError {
	return &UnificationError{Left: left, Right: right}
}
