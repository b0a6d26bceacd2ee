package formula

import (
	"math"
	"testing"

	"github.com/vogtb/gosheet/internal/cellvalue"
	"github.com/vogtb/gosheet/internal/position"
)

func TestParseValidFormulas(t *testing.T) {
	valid := []string{
		"1+2",
		"A1",
		"A1+B2",
		"(1+2)*3",
		"-A1",
		"+A1",
		"1-2-3",
		"10/2/5",
		"ZZ9999",
	}
	for _, src := range valid {
		t.Run(src, func(t *testing.T) {
			if _, err := Parse(src); err != nil {
				t.Errorf("Parse(%q) failed: %v", src, err)
			}
		})
	}
}

func TestParseInvalidFormulas(t *testing.T) {
	invalid := []string{
		"",
		"1+",
		"(1+2",
		"A",
		"1 2",
		"1..2",
		"#",
	}
	for _, src := range invalid {
		t.Run(src, func(t *testing.T) {
			if _, err := Parse(src); err == nil {
				t.Errorf("Parse(%q) unexpectedly succeeded", src)
			}
		})
	}
}

func TestPrintCanonicalRoundTrips(t *testing.T) {
	cases := []string{"1+2", "1+2*3", "(1+2)*3", "1-(2-3)", "A1*B1+C1"}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			f, err := Parse(src)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", src, err)
			}
			printed := f.PrintCanonical()
			f2, err := Parse(printed)
			if err != nil {
				t.Fatalf("re-parsing canonical form %q failed: %v", printed, err)
			}
			if f2.PrintCanonical() != printed {
				t.Errorf("canonical form not stable: %q -> %q", printed, f2.PrintCanonical())
			}
		})
	}
}

func TestPrintCanonicalMinimalParens(t *testing.T) {
	f, err := Parse("1+2+3")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := f.PrintCanonical(); got != "1+2+3" {
		t.Errorf("expected no redundant parens, got %q", got)
	}
}

func TestReferencedCellsDeduplicated(t *testing.T) {
	f, err := Parse("A1+A1+B2")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	refs := f.ReferencedCells()
	if len(refs) != 2 {
		t.Fatalf("expected 2 deduplicated references, got %d (%v)", len(refs), refs)
	}
	a1, _ := position.Parse("A1")
	b2, _ := position.Parse("B2")
	if refs[0] != a1 || refs[1] != b2 {
		t.Errorf("unexpected references: %v", refs)
	}
}

func TestReferencedCellsIncludesOutOfRange(t *testing.T) {
	f, err := Parse("ZZZZZZ9999999999")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	refs := f.ReferencedCells()
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].IsValid() {
		t.Errorf("expected out-of-range position to parse as syntactically valid but range-invalid")
	}
}

func constLookup(values map[string]float64, errs map[string]*cellvalue.CellError) Lookup {
	return func(pos position.Position) (float64, *cellvalue.CellError) {
		label := position.Format(pos)
		if e, ok := errs[label]; ok {
			return 0, e
		}
		return values[label], nil
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	f, err := Parse("A1+3*2-(A1-1)")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	lookup := constLookup(map[string]float64{"A1": 5}, nil)
	got, cellErr := f.Evaluate(lookup)
	if cellErr != nil {
		t.Fatalf("unexpected evaluation error: %v", cellErr)
	}
	want := 5.0 + 3*2 - (5.0 - 1)
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	f, err := Parse("A1/0")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, cellErr := f.Evaluate(constLookup(map[string]float64{"A1": 1}, nil))
	if cellErr == nil || cellErr.Category != cellvalue.Arithmetic {
		t.Fatalf("expected Arithmetic error, got %v", cellErr)
	}
}

func TestEvaluatePropagatesFirstError(t *testing.T) {
	f, err := Parse("A1+B1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	lookup := constLookup(nil, map[string]*cellvalue.CellError{
		"A1": cellvalue.NewError(cellvalue.Ref),
		"B1": cellvalue.NewError(cellvalue.Value),
	})
	_, cellErr := f.Evaluate(lookup)
	if cellErr == nil || cellErr.Category != cellvalue.Ref {
		t.Fatalf("expected left operand's Ref error to win, got %v", cellErr)
	}
}

func TestEvaluateOverflowIsArithmeticError(t *testing.T) {
	f, err := Parse("A1*A1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	_, cellErr := f.Evaluate(constLookup(map[string]float64{"A1": math.MaxFloat64}, nil))
	if cellErr == nil || cellErr.Category != cellvalue.Arithmetic {
		t.Fatalf("expected Arithmetic error on overflow, got %v", cellErr)
	}
}
