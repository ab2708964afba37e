// Package automatonfile reads and writes automata in JSON, YAML and JFLAP
// (.jff) formats and renders them as DOT or PNG.
package automatonfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// ErrUnknownType is returned for automaton types that cannot be loaded.
var ErrUnknownType = errors.New("unknown automaton type")

// document is the JSON/YAML representation of an automaton.
type document struct {
	Type        string          `json:"type" yaml:"type"`
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	States      []docState      `json:"states" yaml:"states"`
	Initial     int             `json:"initial" yaml:"initial"`
	Accepting   []int           `json:"accepting,omitempty" yaml:"accepting,omitempty"`
	Transitions []docTransition `json:"transitions" yaml:"transitions"`
}

type docState struct {
	ID     int     `json:"id" yaml:"id"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Output string  `json:"output,omitempty" yaml:"output,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
}

type docTransition struct {
	From   int    `json:"from" yaml:"from"`
	To     int    `json:"to" yaml:"to"`
	Input  string `json:"input,omitempty" yaml:"input,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Pop    string `json:"pop,omitempty" yaml:"pop,omitempty"`
	Push   string `json:"push,omitempty" yaml:"push,omitempty"`
}

// parseKind maps the type names accepted in files to automaton kinds.
// dfa, nfa and JFLAP's fa are all finite-state automata.
func parseKind(s string) (automaton.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fsa", "fa", "dfa", "nfa":
		return automaton.KindFSA, nil
	case "mealy":
		return automaton.KindMealy, nil
	case "moore":
		return automaton.KindMoore, nil
	case "pda":
		return automaton.KindPDA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

func (d *document) toAutomaton() (automaton.Automaton, error) {
	kind, err := parseKind(d.Type)
	if err != nil {
		return nil, err
	}

	h := automaton.Header{Name: d.Name, Description: d.Description, Initial: d.Initial}
	for _, s := range d.States {
		h.States = append(h.States, automaton.State{ID: s.ID, Name: s.Name, Output: s.Output, X: s.X, Y: s.Y})
	}

	switch kind {
	case automaton.KindFSA:
		f := &automaton.FSA{Header: h, Accepting: d.Accepting}
		for _, t := range d.Transitions {
			f.AddTransition(t.From, t.To, t.Input)
		}
		return f, nil
	case automaton.KindMealy, automaton.KindMoore:
		m := &automaton.Transducer{Header: h, Type: kind}
		for _, t := range d.Transitions {
			m.AddTransition(t.From, t.To, t.Input, t.Output)
		}
		return m, nil
	default:
		p := &automaton.PDA{Header: h, Accepting: d.Accepting}
		for _, t := range d.Transitions {
			p.AddTransition(t.From, t.To, t.Input, t.Pop, t.Push)
		}
		return p, nil
	}
}

func fromAutomaton(a automaton.Automaton) *document {
	h := a.Base()
	d := &document{
		Type:        string(a.Kind()),
		Name:        h.Name,
		Description: h.Description,
		Initial:     h.Initial,
		States:      make([]docState, 0, len(h.States)),
		Transitions: []docTransition{},
	}
	for _, s := range h.States {
		d.States = append(d.States, docState{ID: s.ID, Name: s.Name, Output: s.Output, X: s.X, Y: s.Y})
	}

	switch m := a.(type) {
	case *automaton.FSA:
		d.Accepting = m.Accepting
		for _, t := range m.Transitions {
			d.Transitions = append(d.Transitions, docTransition{From: t.From, To: t.To, Input: t.Input})
		}
	case *automaton.Transducer:
		for _, t := range m.Transitions {
			d.Transitions = append(d.Transitions, docTransition{From: t.From, To: t.To, Input: t.Input, Output: t.Output})
		}
	case *automaton.PDA:
		d.Accepting = m.Accepting
		for _, t := range m.Transitions {
			d.Transitions = append(d.Transitions, docTransition{From: t.From, To: t.To, Input: t.Input, Pop: t.Pop, Push: t.Push})
		}
	}
	return d
}
