package cellvalue

import "testing"

func TestConstructorsSetKind(t *testing.T) {
	cases := []struct {
		name string
		v    CellValue
		kind Kind
	}{
		{"empty", NewEmpty(), Empty},
		{"text", NewText("hi"), Text},
		{"number", NewNumber(3.5), Number},
		{"error", NewErrorValue(Ref), Error},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.v.Kind != c.kind {
				t.Errorf("Kind = %v, want %v", c.v.Kind, c.kind)
			}
		})
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		name string
		v    CellValue
		want string
	}{
		{"empty", NewEmpty(), ""},
		{"text", NewText("hello"), "hello"},
		{"integral number", NewNumber(5), "5"},
		{"fractional number", NewNumber(2.5), "2.5"},
		{"ref error", NewErrorValue(Ref), "#REF!"},
		{"value error", NewErrorValue(Value), "#VALUE!"},
		{"arithmetic error", NewErrorValue(Arithmetic), "#ARITHM!"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestCellErrorIsAnError(t *testing.T) {
	var err error = NewError(Arithmetic)
	if err.Error() != "#ARITHM!" {
		t.Errorf("Error() = %q, want %q", err.Error(), "#ARITHM!")
	}
}

func TestShortCodesAreStableAndDistinct(t *testing.T) {
	seen := make(map[string]ErrorCategory)
	for _, cat := range []ErrorCategory{Ref, Value, Arithmetic} {
		code := NewError(cat).ShortCode()
		if other, ok := seen[code]; ok {
			t.Errorf("categories %v and %v share short code %q", cat, other, code)
		}
		seen[code] = cat
	}
}
