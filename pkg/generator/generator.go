// Package generator produces random words accepted by an automaton.
//
// A word is built by a reverse random walk: starting from a state where a
// run may end, the walker repeatedly picks a transition entering the current
// state and prepends its label, until it reaches the initial state. For
// pushdown automata the walker also replays the stack backwards so that the
// path corresponds to a real run starting and ending with only the
// bottom-of-stack sentinel.
//
// Basic usage:
//
//	g := generator.New(generator.WithSeed(42))
//	report, err := g.Generate(ctx, a, 10)
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// Report is the outcome of one generation request. It may hold fewer words
// than requested when the language is small or the search stalls.
type Report struct {
	Kind      automaton.Kind `json:"kind"`
	Requested int            `json:"requested"`
	Generated int            `json:"generated"`
	Words     []string       `json:"words"`
	Samples   []Sample       `json:"samples,omitempty"`
	// Abandoned counts walks discarded before producing a word.
	Abandoned int    `json:"abandoned,omitempty"`
	Seed      uint64 `json:"seed"`
}

// Generator runs generation requests with its own random source. It is not
// safe for concurrent use; give each worker its own Generator.
type Generator struct {
	opts Options
	seed uint64
	rng  *rand.Rand
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()

	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		opts: o,
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed of the random source, for reproducing a run.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Reseed restarts the random source from seed.
func (g *Generator) Reseed(seed uint64) {
	g.seed = seed
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Words generates up to n distinct words with a fresh Generator using the
// given options.
func Words(a automaton.Automaton, n int, opts ...Option) (*Report, error) {
	return New(opts...).Generate(context.Background(), a, n)
}

// Generate produces up to n distinct words accepted by a. Generation stops
// once n words are found or after FailureFactor walks per transition in a
// row fail to produce a new word. The automaton is not modified.
//
// Cancelling ctx stops generation between walks; the words found so far are
// returned together with the context error.
func (g *Generator) Generate(ctx context.Context, a automaton.Automaton, n int) (*Report, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid automaton: %w", err)
	}

	w, err := g.walkerFor(a)
	if err != nil {
		return nil, err
	}

	log := g.opts.Logger.With("kind", a.Kind(), "requested", n)
	report := &Report{Kind: a.Kind(), Requested: n, Words: []string{}, Seed: g.seed}
	seen := make(map[string]bool, n)

	maxSinceLastNew := g.opts.FailureFactor * max(1, a.TransitionCount())
	sinceLastNew := 0

	for len(report.Words) < n && sinceLastNew < maxSinceLastNew {
		if err := ctx.Err(); err != nil {
			report.Generated = len(report.Words)
			return report, err
		}

		s, err := w.walk(g.rng)
		if err != nil {
			log.Debug("walk abandoned", "error", err)
			report.Abandoned++
			sinceLastNew++
			continue
		}
		if seen[s.Word] {
			sinceLastNew++
			continue
		}

		seen[s.Word] = true
		sinceLastNew = 0
		report.Words = append(report.Words, s.Word)
		if g.opts.Trace {
			report.Samples = append(report.Samples, s)
		}
	}

	report.Generated = len(report.Words)
	if report.Generated < n {
		log.Debug("cutoff reached", "generated", report.Generated, "failures", sinceLastNew)
	}
	log.Debug("generation finished",
		"generated", report.Generated, "abandoned", report.Abandoned, "seed", g.seed)

	return report, nil
}

// walkerFor selects the walker for the automaton variant.
func (g *Generator) walkerFor(a automaton.Automaton) (walker, error) {
	var (
		w     walker
		start *startPicker
	)

	switch m := a.(type) {
	case *automaton.FSA:
		gr := finiteGraph(&m.Header, m.Transitions)
		start = acceptingStart(gr, m.IsAccepting, g.opts.MaxStartAttempts)
		w = &finiteWalker{g: gr, start: start, pContinue: g.opts.ContinueProbability, maxSteps: g.opts.MaxWalkSteps}
	case *automaton.Transducer:
		gr := finiteGraph(&m.Header, m.Transitions)
		start = reachableStart(gr, g.opts.MaxStartAttempts)
		w = &finiteWalker{g: gr, start: start, pContinue: g.opts.ContinueProbability, maxSteps: g.opts.MaxWalkSteps}
	case *automaton.PDA:
		gr := pushdownGraph(&m.Header, m.Transitions)
		start = acceptingStart(gr, m.IsAccepting, g.opts.MaxStartAttempts)
		w = &pushdownWalker{g: gr, start: start, maxSteps: g.opts.MaxWalkSteps}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, a.Kind())
	}

	if err := start.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", a.Kind(), err)
	}
	return w, nil
}

// IsPrecondition reports whether err means the automaton can never yield
// words, as opposed to a failure of the request itself.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoStartState) || errors.Is(err, ErrUnsupported)
}
