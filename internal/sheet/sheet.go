// Package sheet implements the evaluation core of the spreadsheet: a
// sparse two-dimensional table of cells, the bidirectional dependency
// graph maintained over formula references, the cycle check performed
// before an edit commits, and the reactive recomputation of dependents
// once it does.
package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/vogtb/gosheet/internal/position"
)

// Sheet is a sparse container mapping Position to Cell, plus the
// printable envelope — a rectangle anchored at (0,0) that SetCell grows
// to cover every position it writes and ClearCell shrinks back to the
// smallest one containing every non-Empty cell.
type Sheet struct {
	cells  map[position.Position]*Cell
	maxRow int
	maxCol int
}

// New creates an empty sheet.
func New() *Sheet {
	return &Sheet{cells: make(map[position.Position]*Cell)}
}

// SetCell installs text at pos, following the edit protocol of §4.5:
// validate, build the prospective content off to the side, check for a
// cycle, and only then commit — detaching old edges, installing the
// content, attaching new edges, and propagating the change to
// dependents. Any failure leaves the sheet bit-for-bit unchanged.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		return &ErrInvalidPosition{Pos: pos}
	}

	prospective, err := makeContent(text, cellLookup(s.cells))
	if err != nil {
		return &ErrFormulaParse{Pos: pos, Err: err}
	}

	refs := prospective.references()
	if wouldCreateCycle(s.cells, refs, pos) {
		return &ErrCircularDependency{Pos: pos}
	}

	target, existed := s.cells[pos]
	if !existed {
		target = newEmptyCell()
		s.cells[pos] = target
	}
	s.growEnvelope(pos)

	for _, q := range target.References() {
		s.cells[q].removeDependent(pos)
	}

	target.setContent(prospective)

	for _, q := range refs {
		depCell, ok := s.cells[q]
		if !ok {
			depCell = newEmptyCell()
			s.cells[q] = depCell
		}
		depCell.addDependent(pos)
	}

	s.propagate(pos)
	return nil
}

// GetCell returns a handle to the cell at pos, or nil if no cell exists
// there (never written or referenced, or removed by ClearCell). The
// returned *Cell is non-owning: it is
// invalidated by any subsequent SetCell or ClearCell call.
func (s *Sheet) GetCell(pos position.Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &ErrInvalidPosition{Pos: pos}
	}
	cell, ok := s.cells[pos]
	if !ok {
		return nil, nil
	}
	return cell, nil
}

// ClearCell removes pos's content. A cell that other formulas still
// reference is retained as Empty (invariant 1 requires the target of a
// reference to exist); a cell with no dependents is removed entirely.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return &ErrInvalidPosition{Pos: pos}
	}
	target, ok := s.cells[pos]
	if !ok {
		return nil
	}

	for _, q := range target.References() {
		s.cells[q].removeDependent(pos)
	}

	affected := affectedDependents(s.cells, pos)

	if target.hasDependents() {
		target.setContent(emptyContent())
	} else {
		delete(s.cells, pos)
	}

	s.propagateAffected(pos, affected)
	s.shrinkEnvelope()
	return nil
}

// propagate recomputes every cell transitively downstream of pos, in an
// order consistent with reverse topological order of the reference
// graph, per the ordering guarantee in §5.
func (s *Sheet) propagate(pos position.Position) {
	affected := affectedDependents(s.cells, pos)
	s.propagateAffected(pos, affected)
}

func (s *Sheet) propagateAffected(pos position.Position, affected map[position.Position]bool) {
	order := recomputeOrder(s.cells, pos, affected)
	lu := cellLookup(s.cells)
	for _, p := range order {
		s.cells[p].recompute(lu)
	}
}

func (s *Sheet) growEnvelope(pos position.Position) {
	if pos.Row+1 > s.maxRow {
		s.maxRow = pos.Row + 1
	}
	if pos.Col+1 > s.maxCol {
		s.maxCol = pos.Col + 1
	}
}

// shrinkEnvelope recomputes (maxRow, maxCol) exactly per invariant 5: a
// cell retained as an Empty placeholder for some other cell's
// dependents sits outside the envelope, same as a position with no
// cell at all.
func (s *Sheet) shrinkEnvelope() {
	h, w := 0, 0
	for pos, cell := range s.cells {
		if cell.isEmpty() {
			continue
		}
		if pos.Row+1 > h {
			h = pos.Row + 1
		}
		if pos.Col+1 > w {
			w = pos.Col + 1
		}
	}
	s.maxRow, s.maxCol = h, w
}

// GetPrintableSize returns the printable envelope. Every successful
// SetCell grows it to include the written position, even when the text
// is empty; it is the smallest rectangle anchored at (0,0) containing
// every non-Empty cell only as of the last ClearCell shrink pass, or
// when every SetCell wrote non-empty content.
func (s *Sheet) GetPrintableSize() (rows, cols int) {
	return s.maxRow, s.maxCol
}

// PrintValues writes the sheet's displayed values in row-major order,
// tab-separated within a row, newline after each row.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		return c.GetValue().String()
	})
}

// PrintTexts writes the sheet's raw text in row-major order, the same
// layout as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string {
		return c.GetRaw()
	})
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	var b strings.Builder
	for row := 0; row < s.maxRow; row++ {
		for col := 0; col < s.maxCol; col++ {
			if col > 0 {
				b.WriteByte('\t')
			}
			if cell, ok := s.cells[position.Position{Row: row, Col: col}]; ok {
				b.WriteString(render(cell))
			}
		}
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}
