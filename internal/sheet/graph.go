package sheet

import "github.com/vogtb/gosheet/internal/position"

// wouldCreateCycle implements the cycle check of §4.5 step 3: starting
// from the prospective references of the cell being written at target,
// follow existing formula references transitively; if that walk ever
// reaches target, installing the new content would close a cycle.
//
// The walk uses only the sheet's *current* graph state — target's new
// content is never consulted, and nothing is mutated. A position that
// fails IsValid does not short-circuit the search: it simply has no
// outgoing edges, per spec.
func wouldCreateCycle(cells map[position.Position]*Cell, refs []position.Position, target position.Position) bool {
	visited := make(map[position.Position]bool)

	var visit func(p position.Position) bool
	visit = func(p position.Position) bool {
		if p == target {
			return true
		}
		if visited[p] {
			return false
		}
		visited[p] = true
		if !p.IsValid() {
			return false
		}
		cell, ok := cells[p]
		if !ok {
			return false
		}
		for _, next := range cell.References() {
			if visit(next) {
				return true
			}
		}
		return false
	}

	for _, r := range refs {
		if visit(r) {
			return true
		}
	}
	return false
}

// affectedDependents collects every position transitively reachable
// from target by following Dependents() edges — i.e. every cell whose
// formula (directly or indirectly) reads target. target itself is not
// included.
func affectedDependents(cells map[position.Position]*Cell, target position.Position) map[position.Position]bool {
	affected := make(map[position.Position]bool)
	var walk func(p position.Position)
	walk = func(p position.Position) {
		cell, ok := cells[p]
		if !ok {
			return
		}
		for _, dep := range cell.Dependents() {
			if affected[dep] {
				continue
			}
			affected[dep] = true
			walk(dep)
		}
	}
	walk(target)
	return affected
}

// recomputeOrder produces a reverse-topological order over affected
// (every cell recomputes after the inputs it reads, per the ordering
// guarantee in §5): a depth-first search that visits a node's
// in-affected-set precedents before appending the node itself. target
// is already up to date by the time this runs and is treated as a
// satisfied precedent, never revisited.
func recomputeOrder(cells map[position.Position]*Cell, target position.Position, affected map[position.Position]bool) []position.Position {
	visited := make(map[position.Position]bool)
	var order []position.Position

	var visit func(p position.Position)
	visit = func(p position.Position) {
		if visited[p] {
			return
		}
		visited[p] = true
		cell, ok := cells[p]
		if !ok {
			return
		}
		for _, ref := range cell.References() {
			if ref == target {
				continue
			}
			if affected[ref] {
				visit(ref)
			}
		}
		order = append(order, p)
	}

	for p := range affected {
		visit(p)
	}
	return order
}
