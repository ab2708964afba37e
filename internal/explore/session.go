// Package explore is an interactive terminal browser for generated words.
package explore

import (
	"context"
	"fmt"
	"strings"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// Session holds the explorer state independently of any screen.
type Session struct {
	a        automaton.Automaton
	gen      *generator.Generator
	batch    int
	samples  []generator.Sample
	seen     map[string]bool
	selected int

	Message     string
	MessageType MessageType
}

// NewSession creates a session generating batch words at a time. Paths are
// always traced so that they can be displayed.
func NewSession(a automaton.Automaton, batch int, opts ...generator.Option) (*Session, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if batch < 1 {
		batch = 1
	}
	opts = append(opts, generator.WithTrace(true))
	return &Session{
		a:     a,
		gen:   generator.New(opts...),
		batch: batch,
		seen:  make(map[string]bool),
	}, nil
}

// Automaton returns the automaton being explored.
func (s *Session) Automaton() automaton.Automaton { return s.a }

// Seed returns the current generator seed.
func (s *Session) Seed() uint64 { return s.gen.Seed() }

// Samples returns the words found so far in discovery order.
func (s *Session) Samples() []generator.Sample { return s.samples }

// SelectedIndex returns the index of the selected sample, or -1.
func (s *Session) SelectedIndex() int {
	if len(s.samples) == 0 {
		return -1
	}
	return s.selected
}

// Selected returns the selected sample.
func (s *Session) Selected() (generator.Sample, bool) {
	i := s.SelectedIndex()
	if i < 0 {
		return generator.Sample{}, false
	}
	return s.samples[i], true
}

// Generate runs one batch and keeps the words not seen before. It returns
// the number of new words.
func (s *Session) Generate(ctx context.Context) (int, error) {
	report, err := s.gen.Generate(ctx, s.a, s.batch)
	if err != nil {
		s.setMessage(err.Error(), MsgError)
		return 0, err
	}

	added := 0
	for _, sm := range report.Samples {
		if s.seen[sm.Word] {
			continue
		}
		s.seen[sm.Word] = true
		s.samples = append(s.samples, sm)
		added++
	}
	if added == 0 {
		s.setMessage("no new words", MsgInfo)
	} else {
		s.setMessage(fmt.Sprintf("%d new words", added), MsgSuccess)
	}
	return added, nil
}

// Reseed discards all samples and restarts the generator from seed.
func (s *Session) Reseed(seed uint64) {
	s.gen.Reseed(seed)
	s.samples = nil
	s.seen = make(map[string]bool)
	s.selected = 0
	s.setMessage(fmt.Sprintf("seed %d", seed), MsgInfo)
}

// Move shifts the selection by delta, clamped to the sample list.
func (s *Session) Move(delta int) {
	if len(s.samples) == 0 {
		return
	}
	s.selected = max(0, min(len(s.samples)-1, s.selected+delta))
}

// StepLines describes the path of the selected sample, one move per line.
func (s *Session) StepLines() []string {
	sm, ok := s.Selected()
	if !ok {
		return nil
	}
	h := s.a.Base()
	lines := make([]string, 0, len(sm.Path))
	for i, st := range sm.Path {
		line := fmt.Sprintf("%2d. %s --%s--> %s", i+1, h.StateLabel(st.From), showWord(st.Input), h.StateLabel(st.To))
		if st.Stack != nil {
			line += "   [" + strings.Join(st.Stack, "") + "]"
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Session) setMessage(msg string, t MessageType) {
	s.Message = msg
	s.MessageType = t
}

func showWord(w string) string {
	if w == "" {
		return "λ"
	}
	return w
}
