package position

import "testing"

func TestParseValidLabels(t *testing.T) {
	cases := []struct {
		label string
		want  Position
	}{
		{"A1", Position{Row: 0, Col: 0}},
		{"B1", Position{Row: 0, Col: 1}},
		{"A2", Position{Row: 1, Col: 0}},
		{"Z1", Position{Row: 0, Col: 25}},
		{"AA1", Position{Row: 0, Col: 26}},
		{"AZ100", Position{Row: 99, Col: 51}},
		{"BA1", Position{Row: 0, Col: 52}},
	}
	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			got, err := Parse(c.label)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", c.label, err)
			}
			if got != c.want {
				t.Errorf("Parse(%q) = %+v, want %+v", c.label, got, c.want)
			}
		})
	}
}

func TestParseInvalidLabels(t *testing.T) {
	cases := []string{"", "1", "A", "1A", "A-1", "A0", "AB", "A1B2"}
	for _, label := range cases {
		t.Run(label, func(t *testing.T) {
			if _, err := Parse(label); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", label)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, label := range []string{"A1", "Z1", "AA1", "AZ100", "BA1", "ZZ9999"} {
		p, err := Parse(label)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", label, err)
		}
		if got := Format(p); got != label {
			t.Errorf("Format(Parse(%q)) = %q, want %q", label, got, label)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !(Position{Row: 0, Col: 0}).IsValid() {
		t.Error("origin should be valid")
	}
	if (Position{Row: -1, Col: 0}).IsValid() {
		t.Error("negative row should be invalid")
	}
	if (Position{Row: 0, Col: -1}).IsValid() {
		t.Error("negative col should be invalid")
	}
	if (Position{Row: MaxRows, Col: 0}).IsValid() {
		t.Error("row at MaxRows should be invalid")
	}
	if (Position{Row: 0, Col: MaxCols}).IsValid() {
		t.Error("col at MaxCols should be invalid")
	}
}

func TestParseOutOfRangeIsSyntacticallyValidButNotAddressable(t *testing.T) {
	p, err := Parse("ZZZZZZ9999999999")
	if err != nil {
		t.Fatalf("Parse returned error for a syntactically valid but huge label: %v", err)
	}
	if p.IsValid() {
		t.Error("position decoded from an absurdly large label should not be IsValid")
	}
}

func TestStringMatchesFormat(t *testing.T) {
	p, err := Parse("C5")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.String() != Format(p) {
		t.Errorf("String() = %q, Format() = %q", p.String(), Format(p))
	}
}
