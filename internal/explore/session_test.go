package explore

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

func abStar() *automaton.FSA {
	f := automaton.NewFSA()
	f.Name = "ab*"
	f.AddState(automaton.State{ID: 0})
	f.AddState(automaton.State{ID: 1})
	f.SetInitial(0)
	f.SetAccepting(1)
	f.AddTransition(0, 1, "a")
	f.AddTransition(1, 1, "b")
	return f
}

func anbn() *automaton.PDA {
	p := automaton.NewPDA()
	for id := range 3 {
		p.AddState(automaton.State{ID: id})
	}
	p.SetInitial(0)
	p.SetAccepting(2)
	p.AddTransition(0, 0, "a", "Z", "AZ")
	p.AddTransition(0, 0, "a", "A", "AA")
	p.AddTransition(0, 1, "b", "A", "")
	p.AddTransition(1, 1, "b", "A", "")
	p.AddTransition(1, 2, "", "Z", "Z")
	return p
}

func TestSessionGenerate(t *testing.T) {
	s, err := NewSession(abStar(), 4, generator.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, -1, s.SelectedIndex())

	added, err := s.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, added)
	assert.Equal(t, MsgSuccess, s.MessageType)

	re := regexp.MustCompile(`^ab*$`)
	seen := map[string]bool{}
	for _, sm := range s.Samples() {
		assert.Regexp(t, re, sm.Word)
		assert.False(t, seen[sm.Word], "duplicate %q", sm.Word)
		seen[sm.Word] = true
		assert.Len(t, sm.Path, len(sm.Word))
	}

	// Later batches only add words not seen before.
	_, err = s.Generate(context.Background())
	require.NoError(t, err)
	seen = map[string]bool{}
	for _, sm := range s.Samples() {
		assert.False(t, seen[sm.Word], "duplicate %q across batches", sm.Word)
		seen[sm.Word] = true
	}
}

func TestSessionMoveClamps(t *testing.T) {
	s, err := NewSession(abStar(), 3, generator.WithSeed(2))
	require.NoError(t, err)
	s.Move(1) // no samples yet
	assert.Equal(t, -1, s.SelectedIndex())

	_, err = s.Generate(context.Background())
	require.NoError(t, err)
	n := len(s.Samples())
	require.Positive(t, n)

	s.Move(-5)
	assert.Equal(t, 0, s.SelectedIndex())
	s.Move(100)
	assert.Equal(t, n-1, s.SelectedIndex())
}

func TestSessionReseed(t *testing.T) {
	s, err := NewSession(abStar(), 3, generator.WithSeed(5))
	require.NoError(t, err)
	_, err = s.Generate(context.Background())
	require.NoError(t, err)
	first := s.Samples()

	s.Reseed(5)
	assert.Empty(t, s.Samples())
	assert.Equal(t, uint64(5), s.Seed())

	_, err = s.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, s.Samples())
}

func TestSessionStepLinesPDA(t *testing.T) {
	s, err := NewSession(anbn(), 1, generator.WithSeed(3))
	require.NoError(t, err)
	_, err = s.Generate(context.Background())
	require.NoError(t, err)

	sm, ok := s.Selected()
	require.True(t, ok)
	lines := s.StepLines()
	require.Len(t, lines, len(sm.Path))

	// The last move is the lambda move into the accepting state with only
	// the sentinel left.
	assert.Equal(t, fmt.Sprintf("%2d. q1 --λ--> q2   [Z]", len(lines)), lines[len(lines)-1])
	assert.Contains(t, lines[0], "q0 --a--> q0   [AZ]")
}

func TestSessionPreconditionError(t *testing.T) {
	f := abStar()
	f.SetAccepting()
	s, err := NewSession(f, 2)
	require.NoError(t, err)

	_, err = s.Generate(context.Background())
	assert.ErrorIs(t, err, generator.ErrNoStartState)
	assert.Equal(t, MsgError, s.MessageType)
	assert.NotEmpty(t, s.Message)
}

func TestNewSessionInvalid(t *testing.T) {
	_, err := NewSession(automaton.NewFSA(), 1)
	assert.ErrorIs(t, err, automaton.ErrInvalid)
}
