package automatonfile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// Older JFLAP releases put states directly under <structure>.
const flatJFF = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<structure>
	<type>fa</type>
	<state id="0" name="q0">
		<x>50.0</x>
		<y>80.0</y>
		<initial/>
	</state>
	<state id="1" name="q1">
		<x>150.0</x>
		<y>80.0</y>
		<final/>
	</state>
	<transition>
		<from>0</from>
		<to>1</to>
		<read>a</read>
	</transition>
	<transition>
		<from>1</from>
		<to>1</to>
		<read/>
	</transition>
</structure>
`

const wrappedPDA = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<structure>
	<type>pda</type>
	<automaton>
		<state id="0" name="q0"><x>0</x><y>0</y><initial/></state>
		<state id="1" name="q1"><x>0</x><y>0</y><final/></state>
		<transition><from>0</from><to>0</to><read>a</read><pop>Z</pop><push>AZ</push></transition>
		<transition><from>0</from><to>1</to><read/><pop>Z</pop><push>Z</push></transition>
	</automaton>
</structure>
`

func TestParseJFFFlat(t *testing.T) {
	a, err := ParseJFF([]byte(flatJFF))
	if err != nil {
		t.Fatalf("ParseJFF: %v", err)
	}
	f, ok := a.(*automaton.FSA)
	if !ok {
		t.Fatalf("expected *automaton.FSA, got %T", a)
	}
	if f.Initial != 0 {
		t.Errorf("Initial = %d, want 0", f.Initial)
	}
	if diff := cmp.Diff([]int{1}, f.Accepting); diff != "" {
		t.Errorf("accepting mismatch (-want +got):\n%s", diff)
	}
	want := []automaton.Transition{{From: 0, To: 1, Input: "a"}, {From: 1, To: 1}}
	if diff := cmp.Diff(want, f.Transitions); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
	if s, _ := f.State(1); s.X != 150 {
		t.Errorf("state 1 x = %v, want 150", s.X)
	}
}

func TestParseJFFWrapped(t *testing.T) {
	a, err := ParseJFF([]byte(wrappedPDA))
	if err != nil {
		t.Fatalf("ParseJFF: %v", err)
	}
	p, ok := a.(*automaton.PDA)
	if !ok {
		t.Fatalf("expected *automaton.PDA, got %T", a)
	}
	want := []automaton.PDATransition{
		{From: 0, To: 0, Input: "a", Pop: "Z", Push: "AZ"},
		{From: 0, To: 1, Pop: "Z", Push: "Z"},
	}
	if diff := cmp.Diff(want, p.Transitions); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJFFNoInitial(t *testing.T) {
	src := strings.Replace(flatJFF, "<initial/>", "", 1)
	a, err := ParseJFF([]byte(src))
	if err != nil {
		t.Fatalf("ParseJFF: %v", err)
	}
	if err := a.Validate(); err == nil {
		t.Error("expected validation error without an initial state")
	}
}

func TestParseJFFUnsupported(t *testing.T) {
	src := strings.Replace(flatJFF, "<type>fa</type>", "<type>turing</type>", 1)
	if _, err := ParseJFF([]byte(src)); err == nil {
		t.Error("expected error for turing machine")
	}
}

func TestToJFFNamesStates(t *testing.T) {
	f := automaton.NewFSA()
	f.AddState(automaton.State{ID: 3})
	f.SetInitial(3)
	data, err := ToJFF(f)
	if err != nil {
		t.Fatalf("ToJFF: %v", err)
	}
	out := string(data)
	for _, want := range []string{`<?xml`, `<type>fa</type>`, `name="q3"`, `<initial></initial>`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
