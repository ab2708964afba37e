package generator

import "math/rand/v2"

// pushdownWalker walks a pushdown automaton backwards, undoing the stack
// effect of every transition it crosses. A walk is complete once it is back
// at the initial state with only the sentinel on the stack.
type pushdownWalker struct {
	g        *graph
	start    *startPicker
	maxSteps int
}

func (w *pushdownWalker) walk(rng *rand.Rand) (Sample, error) {
	current, err := w.start.pick(rng)
	if err != nil {
		return Sample{}, err
	}

	st := newStack()
	var path []Step
	for {
		in := w.g.incomingTransitions(current)
		if len(in) == 0 {
			if current != w.g.initial || !st.atBottom() {
				return Sample{}, errDeadEnd
			}
			break
		}
		if len(path) >= w.maxSteps {
			return Sample{}, errTooLong
		}

		t, ok := chooseConsistent(rng, in, st)
		if !ok {
			return Sample{}, errStuck
		}
		after := st.topFirst()
		st.unwind(t)
		path = append(path, Step{Transition: t.index, From: t.from, To: t.to, Input: t.input, Stack: after})
		current = t.from

		if current == w.g.initial && st.atBottom() {
			break
		}
	}

	return newSample(path), nil
}

// chooseConsistent draws uniformly among the edges whose reversal matches
// the stack. This is the distribution obtained by resampling from in until a
// consistent edge comes up, without the unbounded loop.
func chooseConsistent(rng *rand.Rand, in []edge, st stack) (edge, bool) {
	var ok []edge
	for _, e := range in {
		if st.canUnwind(e) {
			ok = append(ok, e)
		}
	}
	if len(ok) == 0 {
		return edge{}, false
	}
	return chooseUniform(rng, ok), true
}
