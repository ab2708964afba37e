package generator

import (
	"slices"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// stack is the symbolic pushdown stack replayed in reverse. The top is the
// last element of the slice.
type stack []string

func newStack() stack {
	return stack{automaton.BottomOfStack}
}

// canUnwind reports whether reversing e is consistent with the stack: the
// symbols e pushed must be on top, in order, and undoing the move must not
// take the bottom-of-stack sentinel away.
func (s stack) canUnwind(e edge) bool {
	if len(e.push) > len(s) {
		return false
	}
	for i, sym := range e.push {
		if s[len(s)-1-i] != sym {
			return false
		}
	}
	return len(s)-len(e.push)+len(e.pop) > 0
}

// unwind undoes e: it pops what e pushed and pushes back what e popped.
func (s *stack) unwind(e edge) {
	*s = (*s)[:len(*s)-len(e.push)]
	*s = append(*s, e.pop...)
}

// atBottom reports whether only the sentinel is left.
func (s stack) atBottom() bool {
	return len(s) == 1 && s[0] == automaton.BottomOfStack
}

// topFirst returns a copy of the stack ordered from the top down.
func (s stack) topFirst() []string {
	out := slices.Clone(s)
	slices.Reverse(out)
	return out
}
