package explore

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

func newSimExplorer(t *testing.T) (*Explorer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(80, 24)
	t.Cleanup(sim.Fini)

	s, err := NewSession(abStar(), 3, generator.WithSeed(11))
	require.NoError(t, err)
	e := New(context.Background(), sim, s)
	e.nextSeed = func() uint64 { return 42 }
	return e, sim
}

// screenText returns the visible screen as one string per row.
func screenText(sim tcell.SimulationScreen) []string {
	cells, w, h := sim.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(c.Runes[0])
		}
		rows[y] = sb.String()
	}
	return rows
}

func TestExplorerDraw(t *testing.T) {
	e, sim := newSimExplorer(t)
	_, err := e.session.Generate(context.Background())
	require.NoError(t, err)

	e.Draw()
	sim.Show()
	rows := screenText(sim)
	text := strings.Join(rows, "\n")

	assert.Contains(t, rows[0], "fsa ab*: 2 states, 2 transitions")
	assert.Contains(t, text, "Words")
	assert.Contains(t, text, "Path:")
	assert.Contains(t, text, "q0 --a--> q1")
	assert.Contains(t, rows[22], "g:Generate")
	assert.Contains(t, rows[23], "3 words  seed 11")
	for _, sm := range e.session.Samples() {
		assert.Contains(t, text, sm.Word)
	}
}

func TestExplorerKeys(t *testing.T) {
	e, _ := newSimExplorer(t)

	assert.False(t, e.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)))
	n := len(e.session.Samples())
	require.Positive(t, n)

	assert.False(t, e.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, min(1, n-1), e.session.SelectedIndex())
	assert.False(t, e.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	assert.Equal(t, 0, e.session.SelectedIndex())

	assert.False(t, e.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Equal(t, uint64(42), e.session.Seed())
	assert.NotEmpty(t, e.session.Samples())

	assert.True(t, e.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, e.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestExplorerLoopQuits(t *testing.T) {
	e, sim := newSimExplorer(t)
	sim.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	e.Loop()
	// One batch on start plus one for 'g'.
	assert.GreaterOrEqual(t, len(e.session.Samples()), 3)
}

func TestExplorerTinyScreen(t *testing.T) {
	e, sim := newSimExplorer(t)
	sim.SetSize(10, 3)
	e.Draw()
	sim.Show()
	assert.Contains(t, screenText(sim)[0], "terminal")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "λλ", truncate("λλλλ", 2))
}
