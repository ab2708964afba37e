package explore

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWord     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWordSel  = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleStep     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpText = "g:Generate  r:Reseed  ↑↓:Select  q/Esc:Quit"

// Explorer draws a Session on a tcell screen and handles keys.
type Explorer struct {
	screen  tcell.Screen
	session *Session
	ctx     context.Context
	top     int // first visible word

	// nextSeed supplies seeds for the reseed key.
	nextSeed func() uint64
}

// New creates an Explorer on an initialised screen.
func New(ctx context.Context, screen tcell.Screen, s *Session) *Explorer {
	return &Explorer{
		screen:   screen,
		session:  s,
		ctx:      ctx,
		nextSeed: func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// Run opens the terminal, explores s until the user quits and restores the
// terminal.
func Run(ctx context.Context, s *Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	New(ctx, screen, s).Loop()
	return nil
}

// Loop generates a first batch, then redraws and handles events until quit.
func (e *Explorer) Loop() {
	e.session.Generate(e.ctx)

	for {
		e.Draw()
		e.screen.Show()

		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventKey:
			if e.HandleKey(ev) {
				return
			}
		}
	}
}

// HandleKey applies a key press and reports whether the explorer should quit.
func (e *Explorer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		e.session.Move(-1)
	case tcell.KeyDown:
		e.session.Move(1)
	case tcell.KeyPgUp:
		e.session.Move(-10)
	case tcell.KeyPgDn:
		e.session.Move(10)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'g', 'G':
			e.session.Generate(e.ctx)
		case 'r', 'R':
			e.session.Reseed(e.nextSeed())
			e.top = 0
			e.session.Generate(e.ctx)
		case 'k':
			e.session.Move(-1)
		case 'j':
			e.session.Move(1)
		}
	}
	return false
}

// Draw renders the whole screen: word list on the left, the path of the
// selected word on the right, help and status at the bottom.
func (e *Explorer) Draw() {
	e.screen.Clear()
	w, h := e.screen.Size()
	if w < 20 || h < 6 {
		e.drawString(0, 0, "terminal too small", styleDefault)
		return
	}

	a := e.session.Automaton()
	e.drawString(1, 0, truncate(automaton.Summary(a), w-2), styleTitle)

	listW := w / 3
	listH := h - 4
	e.drawBox(0, 1, listW, listH+1)
	e.drawString(2, 1, " Words ", styleHeader)
	e.drawWords(1, 2, listW-2, listH-1)

	e.drawString(listW+1, 2, "Path:", styleHeader)
	for i, line := range e.session.StepLines() {
		y := 3 + i
		if y >= h-2 {
			e.drawString(listW+1, h-3, "  ...", styleStep)
			break
		}
		e.drawString(listW+1, y, truncate(line, w-listW-2), styleStep)
	}

	e.drawStatusBar(w, h)
}

func (e *Explorer) drawWords(x, y, width, height int) {
	samples := e.session.Samples()
	sel := e.session.SelectedIndex()
	if sel >= 0 {
		if sel < e.top {
			e.top = sel
		}
		if sel >= e.top+height {
			e.top = sel - height + 1
		}
	}
	for row := 0; row < height && e.top+row < len(samples); row++ {
		i := e.top + row
		style := styleWord
		if i == sel {
			style = styleWordSel
		}
		e.drawString(x, y+row, truncate(showWord(samples[i].Word), width), style)
	}
}

func (e *Explorer) drawStatusBar(w, h int) {
	e.drawString(1, h-2, truncate(helpText, w-2), styleHelp)

	y := h - 1
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	info := fmt.Sprintf("%d words  seed %d", len(e.session.Samples()), e.session.Seed())
	e.drawString(1, y, info, styleStatus)

	if msg := e.session.Message; msg != "" {
		style := styleStatus
		if e.session.MessageType == MsgError {
			style = styleMsgError
		}
		msg = truncate(msg, w/2)
		e.drawString(w-len([]rune(msg))-2, y, msg, style)
	}
}

func (e *Explorer) drawBox(x, y, w, h int) {
	e.screen.SetContent(x, y, '┌', nil, styleBorder)
	e.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	e.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	e.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
	for i := x + 1; i < x+w-1; i++ {
		e.screen.SetContent(i, y, '─', nil, styleBorder)
		e.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		e.screen.SetContent(x, i, '│', nil, styleBorder)
		e.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}
}

func (e *Explorer) drawString(x, y int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		e.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
