package automatonfile

import (
	"encoding/xml"
	"fmt"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// JFLAP stores automata as <structure> documents. Older files keep states
// and transitions directly under <structure>, newer ones wrap them in
// <automaton>.
type jffStructure struct {
	XMLName     xml.Name        `xml:"structure"`
	Type        string          `xml:"type"`
	Automaton   *jffAutomaton   `xml:"automaton"`
	States      []jffState      `xml:"state"`
	Transitions []jffTransition `xml:"transition"`
}

type jffAutomaton struct {
	States      []jffState      `xml:"state"`
	Transitions []jffTransition `xml:"transition"`
}

type jffState struct {
	ID      int       `xml:"id,attr"`
	Name    string    `xml:"name,attr,omitempty"`
	X       float64   `xml:"x"`
	Y       float64   `xml:"y"`
	Initial *struct{} `xml:"initial"`
	Final   *struct{} `xml:"final"`
	Output  string    `xml:"output,omitempty"`
}

type jffTransition struct {
	From     int     `xml:"from"`
	To       int     `xml:"to"`
	Read     string  `xml:"read"`
	Pop      *string `xml:"pop"`
	Push     *string `xml:"push"`
	Transout *string `xml:"transout"`
}

// jffType maps automaton kinds to JFLAP's <type> values.
var jffType = map[automaton.Kind]string{
	automaton.KindFSA:   "fa",
	automaton.KindMealy: "mealy",
	automaton.KindMoore: "moore",
	automaton.KindPDA:   "pda",
}

// ParseJFF parses a JFLAP automaton file. Only fa, pda, mealy and moore
// structures are supported.
func ParseJFF(data []byte) (automaton.Automaton, error) {
	var s jffStructure
	if err := xml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse jff: %w", err)
	}

	states, transitions := s.States, s.Transitions
	if s.Automaton != nil {
		states = append(states, s.Automaton.States...)
		transitions = append(transitions, s.Automaton.Transitions...)
	}

	d := document{Type: s.Type, Initial: -1}
	for _, st := range states {
		d.States = append(d.States, docState{ID: st.ID, Name: st.Name, Output: st.Output, X: st.X, Y: st.Y})
		if st.Initial != nil {
			d.Initial = st.ID
		}
		if st.Final != nil {
			d.Accepting = append(d.Accepting, st.ID)
		}
	}
	for _, t := range transitions {
		d.Transitions = append(d.Transitions, docTransition{
			From:   t.From,
			To:     t.To,
			Input:  t.Read,
			Pop:    deref(t.Pop),
			Push:   deref(t.Push),
			Output: deref(t.Transout),
		})
	}
	return d.toAutomaton()
}

// ToJFF converts an automaton to a JFLAP file.
func ToJFF(a automaton.Automaton) ([]byte, error) {
	d := fromAutomaton(a)
	kind := a.Kind()
	accepting := make(map[int]bool, len(d.Accepting))
	for _, id := range d.Accepting {
		accepting[id] = true
	}

	auto := &jffAutomaton{}
	for _, st := range d.States {
		js := jffState{ID: st.ID, Name: st.Name, X: st.X, Y: st.Y}
		if js.Name == "" {
			js.Name = fmt.Sprintf("q%d", st.ID)
		}
		if st.ID == d.Initial {
			js.Initial = &struct{}{}
		}
		if accepting[st.ID] {
			js.Final = &struct{}{}
		}
		if kind == automaton.KindMoore {
			js.Output = st.Output
		}
		auto.States = append(auto.States, js)
	}
	for _, t := range d.Transitions {
		jt := jffTransition{From: t.From, To: t.To, Read: t.Input}
		switch kind {
		case automaton.KindPDA:
			jt.Pop, jt.Push = ptr(t.Pop), ptr(t.Push)
		case automaton.KindMealy, automaton.KindMoore:
			jt.Transout = ptr(t.Output)
		}
		auto.Transitions = append(auto.Transitions, jt)
	}

	out, err := xml.MarshalIndent(jffStructure{Type: jffType[kind], Automaton: auto}, "", "\t")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	return &s
}
