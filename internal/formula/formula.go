// Package formula implements the external collaborator described in
// spec §4.2: parsing an arithmetic expression over cell references,
// printing it back in a canonical minimal-parenthesization form, and
// evaluating it against a caller-supplied Lookup with first-error-wins,
// left-to-right short-circuiting.
package formula

import (
	"github.com/vogtb/gosheet/internal/cellvalue"
	"github.com/vogtb/gosheet/internal/position"
)

// Formula is an immutable, parsed arithmetic expression.
type Formula struct {
	root node
}

// Parse parses expr (the formula text with any leading "=" already
// stripped) into a Formula, or returns a *ParseError.
func Parse(expr string) (*Formula, error) {
	lx := newLexer(expr)
	tokens, err := lx.tokenize()
	if err != nil {
		return nil, &ParseError{Source: expr, Reason: err.Error()}
	}
	root, err := newParser(expr, tokens).parse()
	if err != nil {
		return nil, err
	}
	return &Formula{root: root}, nil
}

// PrintCanonical renders a stable, minimally-parenthesized form of the
// formula. Re-parsing the result yields a formula with the same
// canonical form. A same-precedence right operand of + or * is printed
// without parentheses, so "1+(2-3)" prints as "1+2-3" and re-parses
// grouped to the left.
func (f *Formula) PrintCanonical() string {
	return f.root.print(0)
}

// ReferencedCells returns the deduplicated positions the formula reads,
// in first-encountered order. Returned positions may be out of range;
// callers evaluate them to a Ref error rather than rejecting them here.
func (f *Formula) ReferencedCells() []position.Position {
	var out []position.Position
	f.root.collectRefs(make(map[position.Position]bool), &out)
	return out
}

// Evaluate walks the expression tree, resolving each referenced
// position through lookup. Division by zero or a non-finite result
// yields an Arithmetic error; any error from lookup short-circuits the
// whole evaluation (first error wins, left-to-right).
func (f *Formula) Evaluate(lookup Lookup) (float64, *cellvalue.CellError) {
	return f.root.eval(lookup)
}
