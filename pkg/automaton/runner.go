package automaton

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSearchLimit bounds the number of configurations Run explores.
const DefaultSearchLimit = 100000

// ErrSearchLimit is returned when a run gives up before deciding acceptance.
var ErrSearchLimit = errors.New("search limit reached")

// Result is the outcome of a forward run over an input word.
type Result struct {
	Accepted bool
	Output   string // Mealy/Moore only
	Explored int    // configurations visited
}

// configuration is one point of a forward run. For pushdown automata the
// stack is kept as a string whose first rune is the top.
type configuration struct {
	state  int
	pos    int
	stack  string
	output string
}

type configKey struct {
	state int
	pos   int
	stack string
}

// Accepts reports whether the automaton accepts word. Labels of several
// characters are matched as prefixes of the remaining input.
func Accepts(a Automaton, word string) (bool, error) {
	res, err := Run(a, word, DefaultSearchLimit)
	if err != nil {
		return false, err
	}
	return res.Accepted, nil
}

// Run simulates the automaton forward over word, exploring all
// nondeterministic choices breadth-first. Finite-state automata accept in an
// accepting state with the input consumed, transducers accept whenever the
// whole input can be read, and pushdown automata accept by final state.
// For PDAs with lambda cycles the search may not terminate on its own, so at
// most limit configurations are explored.
func Run(a Automaton, word string, limit int) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid automaton: %w", err)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var (
		accept func(c configuration) bool
		next   func(c configuration) []configuration
		start  = configuration{state: a.Base().Initial}
	)

	switch m := a.(type) {
	case *FSA:
		accept = func(c configuration) bool {
			return c.pos == len(word) && m.IsAccepting(c.state)
		}
		next = func(c configuration) []configuration {
			return stepFinite(m.Transitions, c, word, nil)
		}
	case *Transducer:
		accept = func(c configuration) bool { return c.pos == len(word) }
		if m.Type == KindMoore {
			if s, ok := m.State(m.Initial); ok {
				start.output = s.Output
			}
			next = func(c configuration) []configuration {
				return stepFinite(m.Transitions, c, word, func(t Transition) string {
					s, _ := m.State(t.To)
					return s.Output
				})
			}
		} else {
			next = func(c configuration) []configuration {
				return stepFinite(m.Transitions, c, word, func(t Transition) string {
					return t.Output
				})
			}
		}
	case *PDA:
		start.stack = BottomOfStack
		accept = func(c configuration) bool {
			return c.pos == len(word) && m.IsAccepting(c.state)
		}
		next = func(c configuration) []configuration {
			return stepPushdown(m.Transitions, c, word)
		}
	default:
		return nil, fmt.Errorf("unsupported automaton kind %q", a.Kind())
	}

	visited := map[configKey]bool{{start.state, start.pos, start.stack}: true}
	queue := []configuration{start}
	res := &Result{}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		res.Explored++

		if accept(c) {
			res.Accepted = true
			res.Output = c.output
			return res, nil
		}
		if res.Explored >= limit {
			return res, fmt.Errorf("%w after %d configurations", ErrSearchLimit, res.Explored)
		}

		for _, n := range next(c) {
			key := configKey{n.state, n.pos, n.stack}
			if visited[key] {
				continue
			}
			visited[key] = true
			queue = append(queue, n)
		}
	}

	return res, nil
}

// stepFinite returns the successors of c over finite-state transitions.
// emit, when set, yields the output produced by taking a transition.
func stepFinite(ts []Transition, c configuration, word string, emit func(Transition) string) []configuration {
	var out []configuration
	rest := word[c.pos:]
	for _, t := range ts {
		if t.From != c.state || !strings.HasPrefix(rest, t.Input) {
			continue
		}
		n := configuration{state: t.To, pos: c.pos + len(t.Input), output: c.output}
		if emit != nil {
			n.output += emit(t)
		}
		out = append(out, n)
	}
	return out
}

// stepPushdown returns the successors of c over pushdown transitions.
func stepPushdown(ts []PDATransition, c configuration, word string) []configuration {
	var out []configuration
	rest := word[c.pos:]
	for _, t := range ts {
		if t.From != c.state || !strings.HasPrefix(rest, t.Input) {
			continue
		}
		if !strings.HasPrefix(c.stack, t.Pop) {
			continue
		}
		out = append(out, configuration{
			state: t.To,
			pos:   c.pos + len(t.Input),
			stack: t.Push + c.stack[len(t.Pop):],
		})
	}
	return out
}
