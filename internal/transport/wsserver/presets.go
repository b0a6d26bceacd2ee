package wsserver

import (
	"github.com/tiendc/go-deepcopy"
)

// Edit is one SetCell call applied when a Preset loads.
type Edit struct {
	Address string
	Text    string
}

// Preset is a named, reusable sheet layout a client can ask the server
// to load in place of whatever it currently holds.
type Preset struct {
	Name  string
	Edits []Edit
}

type presetTable map[string]Preset

// clone returns a deep copy of the named preset so a loaded preset can
// never alias, and later mutate, the shared template.
func (t presetTable) clone(name string) (Preset, bool) {
	tmpl, ok := t[name]
	if !ok {
		return Preset{}, false
	}
	var out Preset
	if err := deepcopy.Copy(&out, &tmpl); err != nil {
		out = Preset{Name: tmpl.Name, Edits: append([]Edit(nil), tmpl.Edits...)}
	}
	return out, true
}

func builtinPresets() presetTable {
	return presetTable{
		"intro": {
			Name: "intro",
			Edits: []Edit{
				{Address: "A1", Text: "gosheet"},
				{Address: "B1", Text: "live demo"},
				{Address: "A3", Text: "10"},
				{Address: "B3", Text: "32"},
				{Address: "C3", Text: "=A3+B3"},
				{Address: "D3", Text: "sum of A3 and B3"},
			},
		},
		"chain": {
			Name: "chain",
			Edits: []Edit{
				{Address: "A1", Text: "1"},
				{Address: "B1", Text: "=A1+1"},
				{Address: "C1", Text: "=B1+1"},
				{Address: "D1", Text: "=C1+1"},
				{Address: "E1", Text: "=D1+1"},
			},
		},
		"diamond": {
			Name: "diamond",
			Edits: []Edit{
				{Address: "A1", Text: "1"},
				{Address: "B1", Text: "=A1+1"},
				{Address: "B2", Text: "=A1*2"},
				{Address: "C1", Text: "=B1+B2"},
			},
		},
	}
}
