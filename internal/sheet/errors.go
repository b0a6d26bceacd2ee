package sheet

import (
	"fmt"

	"github.com/vogtb/gosheet/internal/position"
)

// ErrInvalidPosition is returned when a caller names a position outside
// the addressable grid. No mutation occurs.
type ErrInvalidPosition struct {
	Pos position.Position
}

func (e *ErrInvalidPosition) Error() string {
	return fmt.Sprintf("sheet: invalid position %s", e.Pos)
}

// ErrFormulaParse is returned when SetCell's text fails to parse as a
// formula. No mutation occurs; the prior cell state is preserved.
type ErrFormulaParse struct {
	Pos position.Position
	Err error
}

func (e *ErrFormulaParse) Error() string {
	return fmt.Sprintf("sheet: %s: formula parse error: %v", e.Pos, e.Err)
}

func (e *ErrFormulaParse) Unwrap() error { return e.Err }

// ErrCircularDependency is returned when the prospective edit would
// close a cycle in the reference graph. No mutation occurs.
type ErrCircularDependency struct {
	Pos position.Position
}

func (e *ErrCircularDependency) Error() string {
	return fmt.Sprintf("sheet: %s: circular dependency", e.Pos)
}
