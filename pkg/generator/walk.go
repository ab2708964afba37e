package generator

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Step is one transition of a sample's path, in forward order.
type Step struct {
	Transition int    `json:"transition"`
	From       int    `json:"from"`
	To         int    `json:"to"`
	Input      string `json:"input"`
	// Stack is the pushdown stack, top first, right after the move.
	Stack []string `json:"stack,omitempty"`
}

// Sample is a generated word together with the path that produced it.
type Sample struct {
	Word string `json:"word"`
	Path []Step `json:"path"`
}

// walker produces one candidate word per call.
type walker interface {
	walk(rng *rand.Rand) (Sample, error)
}

// newSample turns a path collected backwards into a sample.
func newSample(reversed []Step) Sample {
	path := slices.Clone(reversed)
	slices.Reverse(path)
	var sb strings.Builder
	for _, st := range path {
		sb.WriteString(st.Input)
	}
	return Sample{Word: sb.String(), Path: path}
}

// finiteWalker walks finite-state automata and transducers backwards from a
// start state to the initial state.
type finiteWalker struct {
	g         *graph
	start     *startPicker
	pContinue float64
	maxSteps  int
}

func (w *finiteWalker) walk(rng *rand.Rand) (Sample, error) {
	current, err := w.start.pick(rng)
	if err != nil {
		return Sample{}, err
	}

	var path []Step
	for {
		in := w.g.incomingTransitions(current)
		if len(in) == 0 {
			// No predecessor: the word only traces a run if we are home.
			if current != w.g.initial {
				return Sample{}, errDeadEnd
			}
			break
		}
		if len(path) >= w.maxSteps {
			return Sample{}, errTooLong
		}

		t := chooseUniform(rng, in)
		path = append(path, Step{Transition: t.index, From: t.from, To: t.to, Input: t.input})
		current = t.from

		if current == w.g.initial {
			if len(w.g.incomingTransitions(current)) == 0 || rng.Float64() >= w.pContinue {
				break
			}
		}
	}

	return newSample(path), nil
}
