// Package automaton provides the recognizer types consumed by the word
// generator: finite-state automata, Mealy/Moore transducers and pushdown
// automata.
package automaton

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the variant of an automaton.
type Kind string

const (
	KindFSA   Kind = "fsa"
	KindMealy Kind = "mealy"
	KindMoore Kind = "moore"
	KindPDA   Kind = "pda"
)

// BottomOfStack is the sentinel symbol every pushdown run starts with.
const BottomOfStack = "Z"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid automaton")

// State is a node of the transition graph.
type State struct {
	ID     int
	Name   string
	Output string // Moore only
	X, Y   float64
}

// Label returns the display name of the state.
func (s State) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("q%d", s.ID)
}

// Transition is an edge of a finite-state automaton or a transducer.
// An empty Input is a lambda move.
type Transition struct {
	From   int
	To     int
	Input  string
	Output string // Mealy only
}

// PDATransition is an edge of a pushdown automaton. The move reads Input,
// pops Pop (one symbol, or nothing when empty) and pushes Push, whose
// leftmost symbol ends up on top of the stack.
type PDATransition struct {
	From  int
	To    int
	Input string
	Pop   string
	Push  string
}

// Symbols splits a stack string into its symbols, one per rune.
func Symbols(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Automaton is implemented by *FSA, *Transducer and *PDA only.
type Automaton interface {
	Kind() Kind
	// Base returns the name, states and initial state shared by all variants.
	Base() *Header
	TransitionCount() int
	Validate() error

	sealed()
}

// Header holds the parts common to every automaton variant.
type Header struct {
	Name        string
	Description string
	States      []State
	Initial     int
}

// Base returns h. It lets variants embedding Header satisfy Automaton.
func (h *Header) Base() *Header { return h }

// AddState adds a state, replacing any state with the same ID.
func (h *Header) AddState(s State) {
	for i := range h.States {
		if h.States[i].ID == s.ID {
			h.States[i] = s
			return
		}
	}
	h.States = append(h.States, s)
}

// SetInitial sets the initial state.
func (h *Header) SetInitial(id int) {
	h.Initial = id
}

// StateIDs returns the IDs of all states in declaration order.
func (h *Header) StateIDs() []int {
	ids := make([]int, len(h.States))
	for i, s := range h.States {
		ids[i] = s.ID
	}
	return ids
}

// State returns the state with the given ID.
func (h *Header) State(id int) (State, bool) {
	for _, s := range h.States {
		if s.ID == id {
			return s, true
		}
	}
	return State{}, false
}

// HasState reports whether a state with the given ID exists.
func (h *Header) HasState(id int) bool {
	_, ok := h.State(id)
	return ok
}

// StateLabel returns the display name of a state, or its ID if unknown.
func (h *Header) StateLabel(id int) string {
	if s, ok := h.State(id); ok {
		return s.Label()
	}
	return fmt.Sprintf("q%d", id)
}

func (h *Header) validate() error {
	if len(h.States) == 0 {
		return fmt.Errorf("%w: no states", ErrInvalid)
	}
	seen := make(map[int]bool, len(h.States))
	for _, s := range h.States {
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate state id %d", ErrInvalid, s.ID)
		}
		seen[s.ID] = true
	}
	if !seen[h.Initial] {
		return fmt.Errorf("%w: initial state %d not in states", ErrInvalid, h.Initial)
	}
	return nil
}

func (h *Header) validateEdge(i, from, to int) error {
	if !h.HasState(from) {
		return fmt.Errorf("%w: transition %d: from state %d not in states", ErrInvalid, i, from)
	}
	if !h.HasState(to) {
		return fmt.Errorf("%w: transition %d: to state %d not in states", ErrInvalid, i, to)
	}
	return nil
}

// acceptingSet is shared by FSA and PDA.
type acceptingSet []int

func (a acceptingSet) contains(id int) bool {
	for _, acc := range a {
		if acc == id {
			return true
		}
	}
	return false
}

// FSA is a finite-state automaton, deterministic or not.
type FSA struct {
	Header
	Accepting   []int
	Transitions []Transition
}

// NewFSA creates an empty finite-state automaton.
func NewFSA() *FSA {
	return &FSA{}
}

func (*FSA) Kind() Kind             { return KindFSA }
func (f *FSA) TransitionCount() int { return len(f.Transitions) }
func (*FSA) sealed()                {}

// AddTransition adds a transition. An empty input is a lambda move.
func (f *FSA) AddTransition(from, to int, input string) {
	f.Transitions = append(f.Transitions, Transition{From: from, To: to, Input: input})
}

// SetAccepting sets the accepting states.
func (f *FSA) SetAccepting(ids ...int) {
	f.Accepting = ids
}

// IsAccepting returns true if the state is an accepting state.
func (f *FSA) IsAccepting(id int) bool {
	return acceptingSet(f.Accepting).contains(id)
}

// Validate checks that the FSA is well-formed.
func (f *FSA) Validate() error {
	if err := f.Header.validate(); err != nil {
		return err
	}
	for _, acc := range f.Accepting {
		if !f.HasState(acc) {
			return fmt.Errorf("%w: accepting state %d not in states", ErrInvalid, acc)
		}
	}
	for i, t := range f.Transitions {
		if err := f.validateEdge(i, t.From, t.To); err != nil {
			return err
		}
	}
	return nil
}

// Transducer is a Mealy or Moore machine. It has no accepting states.
type Transducer struct {
	Header
	Type        Kind // KindMealy or KindMoore
	Transitions []Transition
}

// NewMealy creates an empty Mealy machine.
func NewMealy() *Transducer {
	return &Transducer{Type: KindMealy}
}

// NewMoore creates an empty Moore machine.
func NewMoore() *Transducer {
	return &Transducer{Type: KindMoore}
}

func (t *Transducer) Kind() Kind           { return t.Type }
func (t *Transducer) TransitionCount() int { return len(t.Transitions) }
func (*Transducer) sealed()                {}

// AddTransition adds a transition. Output is ignored by Moore machines.
func (t *Transducer) AddTransition(from, to int, input, output string) {
	t.Transitions = append(t.Transitions, Transition{From: from, To: to, Input: input, Output: output})
}

// SetStateOutput sets the output for a state (Moore machine).
func (t *Transducer) SetStateOutput(id int, output string) {
	for i := range t.States {
		if t.States[i].ID == id {
			t.States[i].Output = output
			return
		}
	}
}

// Validate checks that the transducer is well-formed.
func (t *Transducer) Validate() error {
	if t.Type != KindMealy && t.Type != KindMoore {
		return fmt.Errorf("%w: transducer type %q", ErrInvalid, t.Type)
	}
	if err := t.Header.validate(); err != nil {
		return err
	}
	for i, tr := range t.Transitions {
		if err := t.validateEdge(i, tr.From, tr.To); err != nil {
			return err
		}
	}
	return nil
}

// PDA is a pushdown automaton accepting by final state. Every run starts
// with BottomOfStack alone on the stack.
type PDA struct {
	Header
	Accepting   []int
	Transitions []PDATransition
}

// NewPDA creates an empty pushdown automaton.
func NewPDA() *PDA {
	return &PDA{}
}

func (*PDA) Kind() Kind             { return KindPDA }
func (p *PDA) TransitionCount() int { return len(p.Transitions) }
func (*PDA) sealed()                {}

// AddTransition adds a transition reading input, popping pop and pushing push.
func (p *PDA) AddTransition(from, to int, input, pop, push string) {
	p.Transitions = append(p.Transitions, PDATransition{From: from, To: to, Input: input, Pop: pop, Push: push})
}

// SetAccepting sets the accepting states.
func (p *PDA) SetAccepting(ids ...int) {
	p.Accepting = ids
}

// IsAccepting returns true if the state is an accepting state.
func (p *PDA) IsAccepting(id int) bool {
	return acceptingSet(p.Accepting).contains(id)
}

// Validate checks that the PDA is well-formed.
func (p *PDA) Validate() error {
	if err := p.Header.validate(); err != nil {
		return err
	}
	for _, acc := range p.Accepting {
		if !p.HasState(acc) {
			return fmt.Errorf("%w: accepting state %d not in states", ErrInvalid, acc)
		}
	}
	for i, t := range p.Transitions {
		if err := p.validateEdge(i, t.From, t.To); err != nil {
			return err
		}
		if len(Symbols(t.Pop)) > 1 {
			return fmt.Errorf("%w: transition %d: pop %q is more than one symbol", ErrInvalid, i, t.Pop)
		}
	}
	return nil
}

// Alphabet returns the sorted set of non-empty input labels.
func Alphabet(a Automaton) []string {
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" {
			seen[s] = true
		}
	}
	switch m := a.(type) {
	case *FSA:
		for _, t := range m.Transitions {
			add(t.Input)
		}
	case *Transducer:
		for _, t := range m.Transitions {
			add(t.Input)
		}
	case *PDA:
		for _, t := range m.Transitions {
			add(t.Input)
		}
	}
	return sortedKeys(seen)
}

// Summary returns a one-line description such as "fsa: 3 states, 4 transitions".
func Summary(a Automaton) string {
	var sb strings.Builder
	sb.WriteString(string(a.Kind()))
	if name := a.Base().Name; name != "" {
		sb.WriteString(" " + name)
	}
	fmt.Fprintf(&sb, ": %d states, %d transitions", len(a.Base().States), a.TransitionCount())
	return sb.String()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
