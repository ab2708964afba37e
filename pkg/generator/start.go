package generator

import (
	"fmt"
	"math/rand/v2"
)

// startPicker samples the state a reverse walk begins at.
type startPicker struct {
	states      []int
	eligible    func(state int) bool
	maxAttempts int
}

// check fails with ErrNoStartState when rejection sampling could never stop.
func (p *startPicker) check() error {
	for _, s := range p.states {
		if p.eligible(s) {
			return nil
		}
	}
	return ErrNoStartState
}

// pick draws states uniformly at random until an eligible one comes up.
func (p *startPicker) pick(rng *rand.Rand) (int, error) {
	for range p.maxAttempts {
		s := p.states[rng.IntN(len(p.states))]
		if p.eligible(s) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w after %d attempts", errStartAttempt, p.maxAttempts)
}

// acceptingStart begins walks at accepting states (FSA, PDA).
func acceptingStart(g *graph, accepting func(int) bool, maxAttempts int) *startPicker {
	return &startPicker{states: g.states, eligible: accepting, maxAttempts: maxAttempts}
}

// reachableStart begins walks at states entered by at least one transition
// (Mealy, Moore).
func reachableStart(g *graph, maxAttempts int) *startPicker {
	return &startPicker{
		states: g.states,
		eligible: func(s int) bool {
			return len(g.incomingTransitions(s)) > 0
		},
		maxAttempts: maxAttempts,
	}
}
