package automatonfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

func sampleFSA() *automaton.FSA {
	f := automaton.NewFSA()
	f.Name = "ab*"
	f.AddState(automaton.State{ID: 0, Name: "q0", X: 10, Y: 20})
	f.AddState(automaton.State{ID: 1, Name: "q1", X: 110, Y: 20})
	f.SetInitial(0)
	f.SetAccepting(1)
	f.AddTransition(0, 1, "a")
	f.AddTransition(1, 1, "b")
	return f
}

func sampleMealy() *automaton.Transducer {
	m := automaton.NewMealy()
	m.AddState(automaton.State{ID: 0, Name: "q0"})
	m.AddState(automaton.State{ID: 1, Name: "q1"})
	m.SetInitial(0)
	m.AddTransition(0, 1, "a", "x")
	m.AddTransition(1, 0, "b", "y")
	return m
}

func sampleMoore() *automaton.Transducer {
	m := automaton.NewMoore()
	m.AddState(automaton.State{ID: 0, Name: "q0", Output: "0"})
	m.AddState(automaton.State{ID: 1, Name: "q1", Output: "1"})
	m.SetInitial(0)
	m.AddTransition(0, 1, "a", "")
	m.AddTransition(1, 1, "a", "")
	return m
}

func samplePDA() *automaton.PDA {
	p := automaton.NewPDA()
	p.Name = "parens"
	for id := range 3 {
		p.AddState(automaton.State{ID: id, Name: "p" + string(rune('0'+id))})
	}
	p.SetInitial(0)
	p.SetAccepting(2)
	p.AddTransition(0, 1, "", "Z", "Z")
	p.AddTransition(1, 1, "(", "Z", "(Z")
	p.AddTransition(1, 1, "(", "(", "((")
	p.AddTransition(1, 1, ")", "(", "")
	p.AddTransition(1, 2, "", "Z", "Z")
	return p
}

func samples() map[string]automaton.Automaton {
	return map[string]automaton.Automaton{
		"fsa":   sampleFSA(),
		"mealy": sampleMealy(),
		"moore": sampleMoore(),
		"pda":   samplePDA(),
	}
}

// JFLAP files carry no automaton name or description.
var ignoreJFFHeader = cmpopts.IgnoreFields(automaton.Header{}, "Name", "Description")

func diffOpts(format Format) []cmp.Option {
	if format == FormatJFF {
		return []cmp.Option{ignoreJFFHeader}
	}
	return nil
}

func TestRoundTrip(t *testing.T) {
	formats := []Format{FormatJSON, FormatYAML, FormatJFF}
	for name, a := range samples() {
		for _, format := range formats {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				data, err := Encode(a, format)
				if err != nil {
					t.Fatalf("Encode: %v", err)
				}
				got, err := Parse(data, format)
				if err != nil {
					t.Fatalf("Parse: %v\n%s", err, data)
				}
				if diff := cmp.Diff(a, got, diffOpts(format)...); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestParseJSONTypes(t *testing.T) {
	tests := []struct {
		typ  string
		want automaton.Kind
	}{
		{"fsa", automaton.KindFSA},
		{"dfa", automaton.KindFSA},
		{"NFA", automaton.KindFSA},
		{"mealy", automaton.KindMealy},
		{"moore", automaton.KindMoore},
		{"pda", automaton.KindPDA},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			a, err := ParseJSON([]byte(`{"type":"` + tt.typ + `","states":[{"id":0}],"initial":0,"transitions":[]}`))
			if err != nil {
				t.Fatalf("ParseJSON: %v", err)
			}
			if a.Kind() != tt.want {
				t.Errorf("Kind() = %q, want %q", a.Kind(), tt.want)
			}
		})
	}
}

func TestParseJSONUnknownType(t *testing.T) {
	_, err := ParseJSON([]byte(`{"type":"turing","states":[{"id":0}],"initial":0}`))
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestParseYAMLPDA(t *testing.T) {
	src := `
type: pda
name: anbn
states:
  - {id: 0}
  - {id: 1}
  - {id: 2}
initial: 0
accepting: [2]
transitions:
  - {from: 0, to: 0, input: a, pop: Z, push: AZ}
  - {from: 0, to: 0, input: a, pop: A, push: AA}
  - {from: 0, to: 1, input: b, pop: A}
  - {from: 1, to: 1, input: b, pop: A}
  - {from: 1, to: 2, pop: Z, push: Z}
`
	a, err := ParseYAML([]byte(src))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	p, ok := a.(*automaton.PDA)
	if !ok {
		t.Fatalf("expected *automaton.PDA, got %T", a)
	}
	want := automaton.PDATransition{From: 0, To: 1, Input: "b", Pop: "A"}
	if diff := cmp.Diff(want, p.Transitions[2]); diff != "" {
		t.Errorf("transition mismatch (-want +got):\n%s", diff)
	}
	for _, word := range []string{"ab", "aabb"} {
		ok, err := automaton.Accepts(p, word)
		if err != nil || !ok {
			t.Errorf("Accepts(%q) = %v, %v", word, ok, err)
		}
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.json":      FormatJSON,
		"a.YAML":      FormatYAML,
		"dir/a.yml":   FormatYAML,
		"a.jff":       FormatJFF,
		"machine.xml": FormatJFF,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		if err != nil {
			t.Errorf("FormatOf(%q): %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
	if _, err := FormatOf("a.txt"); err == nil {
		t.Error("expected error for .txt")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"m.json", "m.yaml", "m.jff"} {
		path := filepath.Join(dir, name)
		if err := Save(path, samplePDA()); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		format, _ := FormatOf(name)
		if diff := cmp.Diff(automaton.Automaton(samplePDA()), got, diffOpts(format)...); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
