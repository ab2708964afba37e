package generator

import (
	"math/rand/v2"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// edge is a transition as seen by a walker. Pop and push are only set for
// pushdown automata; push holds the pushed symbols top first.
type edge struct {
	index int // position in the automaton's transition list
	from  int
	to    int
	input string
	pop   []string
	push  []string
}

// graph indexes transitions by target state so that a reverse walk can look
// up the predecessors of the current state.
type graph struct {
	initial  int
	states   []int
	incoming map[int][]edge
	edges    int
}

func newGraph(h *automaton.Header) *graph {
	return &graph{
		initial:  h.Initial,
		states:   h.StateIDs(),
		incoming: make(map[int][]edge),
	}
}

func (g *graph) add(e edge) {
	g.incoming[e.to] = append(g.incoming[e.to], e)
	g.edges++
}

func finiteGraph(h *automaton.Header, ts []automaton.Transition) *graph {
	g := newGraph(h)
	for i, t := range ts {
		g.add(edge{index: i, from: t.From, to: t.To, input: t.Input})
	}
	return g
}

func pushdownGraph(h *automaton.Header, ts []automaton.PDATransition) *graph {
	g := newGraph(h)
	for i, t := range ts {
		g.add(edge{
			index: i,
			from:  t.From,
			to:    t.To,
			input: t.Input,
			pop:   automaton.Symbols(t.Pop),
			push:  automaton.Symbols(t.Push),
		})
	}
	return g
}

// incomingTransitions returns every transition whose target is state.
func (g *graph) incomingTransitions(state int) []edge {
	return g.incoming[state]
}

// chooseUniform picks one edge with uniform probability. es must not be empty.
func chooseUniform(rng *rand.Rand, es []edge) edge {
	return es[rng.IntN(len(es))]
}
