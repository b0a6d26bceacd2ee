package sheet

import (
	"strconv"
	"strings"

	"github.com/vogtb/gosheet/internal/cellvalue"
	"github.com/vogtb/gosheet/internal/formula"
	"github.com/vogtb/gosheet/internal/position"
)

// contentKind tags which alternative of content is populated: Empty,
// Text, or Formula, per spec §3/§4.3.
type contentKind uint8

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

// ParseError wraps a formula that failed to parse inside SetCell, kept
// distinct from formula.ParseError so callers outside this package
// don't need to import the formula package to recognize the failure.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string { return e.err.Error() }
func (e *ParseError) Unwrap() error { return e.err }

// content is the CellContent sum type of §4.3: Empty, Text(raw), or
// Formula(raw_source, ast, cached). Only the fields matching kind are
// meaningful.
type content struct {
	kind contentKind

	// Text variant.
	rawText string

	// Formula variant.
	rawSource string
	ast       *formula.Formula
	cached    cellvalue.CellValue
}

// lookup resolves a referenced position to a number, implementing the
// coercion table of §4.6.
type lookup = formula.Lookup

// makeContent builds the prospective CellContent for text per the
// factory rules of §4.3. A formula that fails to parse returns a
// *ParseError and no content; the caller must not mutate the sheet.
func makeContent(text string, lu lookup) (content, error) {
	switch {
	case text == "":
		return content{kind: contentEmpty}, nil
	case text == "=":
		return content{kind: contentText, rawText: text}, nil
	case strings.HasPrefix(text, "=") && len(text) > 1:
		f, err := formula.Parse(text[1:])
		if err != nil {
			return content{}, &ParseError{err: err}
		}
		c := content{
			kind:      contentFormula,
			rawSource: "=" + f.PrintCanonical(),
			ast:       f,
		}
		c.recompute(lu)
		return c, nil
	default:
		return content{kind: contentText, rawText: text}, nil
	}
}

func emptyContent() content {
	return content{kind: contentEmpty}
}

// getRaw returns the text GetRaw exposes: the original text for Text
// (apostrophe preserved), the canonical "="-prefixed source for
// Formula, or "" for Empty.
func (c content) getRaw() string {
	switch c.kind {
	case contentText:
		return c.rawText
	case contentFormula:
		return c.rawSource
	default:
		return ""
	}
}

// getDisplayed returns the CellValue GetDisplayed exposes: the cached
// value for Formula, text with one leading apostrophe stripped for
// Text, or Empty.
func (c content) getDisplayed() cellvalue.CellValue {
	switch c.kind {
	case contentText:
		return cellvalue.NewText(strings.TrimPrefix(c.rawText, "'"))
	case contentFormula:
		return c.cached
	default:
		return cellvalue.NewEmpty()
	}
}

// references returns the deduplicated positions a Formula reads; Empty
// and Text never reference anything.
func (c content) references() []position.Position {
	if c.kind != contentFormula {
		return nil
	}
	return c.ast.ReferencedCells()
}

// recompute re-runs Evaluate for a Formula, storing the result in
// cached. It is a no-op for Empty and Text.
func (c *content) recompute(lu lookup) {
	if c.kind != contentFormula {
		return
	}
	v, cellErr := c.ast.Evaluate(lu)
	if cellErr != nil {
		c.cached = cellvalue.CellValue{Kind: cellvalue.Error, Err: cellErr}
		return
	}
	c.cached = cellvalue.NewNumber(v)
}

// cellLookup implements formula.Lookup against a Sheet's current cell
// map, per the coercion rules of §4.6.
func cellLookup(cells map[position.Position]*Cell) lookup {
	return func(pos position.Position) (float64, *cellvalue.CellError) {
		if !pos.IsValid() {
			return 0, cellvalue.NewError(cellvalue.Ref)
		}
		cell, ok := cells[pos]
		if !ok {
			return 0, nil
		}
		v := cell.content.getDisplayed()
		switch v.Kind {
		case cellvalue.Empty:
			return 0, nil
		case cellvalue.Number:
			return v.Number, nil
		case cellvalue.Error:
			return 0, v.Err
		case cellvalue.Text:
			return parseNumericText(v.Text)
		default:
			return 0, nil
		}
	}
}

// parseNumericText implements the strict text-to-number coercion of
// §4.6: empty text is 0.0; otherwise every character must be a digit or
// '.' and the whole string must parse as a float, or the result is a
// Value error. This tightens the source's behavior, which let strings
// like "1.2.3" reach a partial numeric parse.
func parseNumericText(s string) (float64, *cellvalue.CellError) {
	if s == "" {
		return 0, nil
	}
	for _, ch := range s {
		if (ch < '0' || ch > '9') && ch != '.' {
			return 0, cellvalue.NewError(cellvalue.Value)
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, cellvalue.NewError(cellvalue.Value)
	}
	return v, nil
}
