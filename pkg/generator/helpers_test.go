package generator

import "github.com/ha1tch/fsm-wordgen/pkg/automaton"

// abStar accepts a followed by any number of b.
func abStar() *automaton.FSA {
	f := automaton.NewFSA()
	f.AddState(automaton.State{ID: 0})
	f.AddState(automaton.State{ID: 1})
	f.SetInitial(0)
	f.SetAccepting(1)
	f.AddTransition(0, 1, "a")
	f.AddTransition(1, 1, "b")
	return f
}

// singleWord accepts only "a".
func singleWord() *automaton.FSA {
	f := automaton.NewFSA()
	f.AddState(automaton.State{ID: 0})
	f.AddState(automaton.State{ID: 1})
	f.SetInitial(0)
	f.SetAccepting(1)
	f.AddTransition(0, 1, "a")
	return f
}

// loopAtInitial accepts a+ with the loop on the initial state.
func loopAtInitial() *automaton.FSA {
	f := automaton.NewFSA()
	f.AddState(automaton.State{ID: 0})
	f.SetInitial(0)
	f.SetAccepting(0)
	f.AddTransition(0, 0, "a")
	return f
}

// balancedParens accepts properly nested parentheses, pushing "(" on every
// opening parenthesis and popping it on the matching closing one.
func balancedParens() *automaton.PDA {
	p := automaton.NewPDA()
	for id := range 3 {
		p.AddState(automaton.State{ID: id})
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

// anbn accepts a^n b^n for n >= 1.
func anbn() *automaton.PDA {
	p := automaton.NewPDA()
	for id := range 4 {
		p.AddState(automaton.State{ID: id})
	}
	p.SetInitial(0)
	p.SetAccepting(3)
	p.AddTransition(0, 1, "a", "Z", "AZ")
	p.AddTransition(1, 1, "a", "A", "AA")
	p.AddTransition(1, 2, "b", "A", "")
	p.AddTransition(2, 2, "b", "A", "")
	p.AddTransition(2, 3, "", "Z", "Z")
	return p
}

// mealy alternates a/x into 1, then loops c/z or returns on b/y.
func mealy() *automaton.Transducer {
	m := automaton.NewMealy()
	m.AddState(automaton.State{ID: 0})
	m.AddState(automaton.State{ID: 1})
	m.SetInitial(0)
	m.AddTransition(0, 1, "a", "x")
	m.AddTransition(1, 0, "b", "y")
	m.AddTransition(1, 1, "c", "z")
	return m
}

func balanced(word string) bool {
	depth := 0
	for _, r := range word {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		default:
			return false
		}
	}
	return depth == 0
}
