package sheet

import (
	"github.com/vogtb/gosheet/internal/cellvalue"
	"github.com/vogtb/gosheet/internal/position"
)

// Cell owns one CellContent and the set of positions whose formulas
// directly reference it (its dependents, per §3/§4.4). A Cell never
// stores its own outgoing references; content.references() recomputes
// them on demand from the content itself.
type Cell struct {
	content    content
	dependents map[position.Position]struct{}
}

func newEmptyCell() *Cell {
	return &Cell{dependents: make(map[position.Position]struct{})}
}

// setContent replaces the cell's content. It never touches dependents;
// edge maintenance is the Sheet's job.
func (c *Cell) setContent(ct content) {
	c.content = ct
}

func (c *Cell) addDependent(pos position.Position) {
	c.dependents[pos] = struct{}{}
}

func (c *Cell) removeDependent(pos position.Position) {
	delete(c.dependents, pos)
}

// Dependents returns the positions of cells whose formulas directly
// reference this one.
func (c *Cell) Dependents() []position.Position {
	out := make([]position.Position, 0, len(c.dependents))
	for p := range c.dependents {
		out = append(out, p)
	}
	return out
}

// References delegates to the cell's content: the positions its
// formula directly reads, or nil for Empty/Text.
func (c *Cell) References() []position.Position {
	return c.content.references()
}

// recompute delegates to the cell's content; a no-op unless the
// content is a Formula.
func (c *Cell) recompute(lu lookup) {
	c.content.recompute(lu)
}

// GetValue returns the cell's displayed CellValue.
func (c *Cell) GetValue() cellvalue.CellValue {
	return c.content.getDisplayed()
}

// GetRaw returns the cell's raw text as SetCell would re-accept it.
func (c *Cell) GetRaw() string {
	return c.content.getRaw()
}

// GetReferencedCells returns the deduplicated positions this cell's
// formula reads (empty for Empty/Text content).
func (c *Cell) GetReferencedCells() []position.Position {
	return c.content.references()
}

func (c *Cell) isEmpty() bool {
	return c.content.kind == contentEmpty
}

func (c *Cell) hasDependents() bool {
	return len(c.dependents) > 0
}
