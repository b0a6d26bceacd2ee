// Package cellvalue implements the CellValue discriminated variant and the
// first-class formula error categories that flow through it.
package cellvalue

import "strconv"

// Kind tags which alternative of CellValue is populated.
type Kind uint8

const (
	Empty Kind = iota
	Text
	Number
	Error
)

// ErrorCategory enumerates the first-class error values that can live
// inside a CellValue. These are not Go errors that abort an operation;
// they are ordinary values that flow through arithmetic the way a
// number would.
type ErrorCategory uint8

const (
	// Ref marks a formula that referenced an out-of-range position.
	Ref ErrorCategory = iota
	// Value marks a formula that read a text cell that was not purely
	// numeric.
	Value
	// Arithmetic marks division by zero or a non-finite result.
	Arithmetic
)

// shortCodes gives each category its stable wire spelling. PrintValues
// and every test in this module agree on these strings.
var shortCodes = map[ErrorCategory]string{
	Ref:        "#REF!",
	Value:      "#VALUE!",
	Arithmetic: "#ARITHM!",
}

// CellError is the concrete error type carried by CellValue's Error
// variant and propagated out of formula evaluation.
type CellError struct {
	Category ErrorCategory
}

func NewError(category ErrorCategory) *CellError {
	return &CellError{Category: category}
}

// Error implements the error interface so a CellError can also travel
// through ordinary Go error-returning code paths (e.g. Formula.Evaluate).
func (e *CellError) Error() string {
	return e.ShortCode()
}

// ShortCode returns the stable wire spelling for the error's category.
func (e *CellError) ShortCode() string {
	return shortCodes[e.Category]
}

// CellValue is the tagged variant a cell displays: Empty, Text, Number,
// or Error. Only the field matching Kind is meaningful.
type CellValue struct {
	Kind   Kind
	Text   string
	Number float64
	Err    *CellError
}

func NewEmpty() CellValue {
	return CellValue{Kind: Empty}
}

func NewText(s string) CellValue {
	return CellValue{Kind: Text, Text: s}
}

func NewNumber(n float64) CellValue {
	return CellValue{Kind: Number, Number: n}
}

func NewErrorValue(category ErrorCategory) CellValue {
	return CellValue{Kind: Error, Err: NewError(category)}
}

// String renders the value the way PrintValues does: a bare number in
// Go's default float formatting, the text verbatim, the error's short
// code, or the empty string for an Empty cell.
func (v CellValue) String() string {
	switch v.Kind {
	case Empty:
		return ""
	case Text:
		return v.Text
	case Number:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case Error:
		return v.Err.ShortCode()
	default:
		return ""
	}
}
