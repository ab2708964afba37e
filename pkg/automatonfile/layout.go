package automatonfile

import (
	"fmt"
	"math"
	"strings"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// LayoutAlgorithm represents a layout strategy.
type LayoutAlgorithm int

const (
	// LayoutAuto uses saved coordinates when the file has them and layers
	// otherwise.
	LayoutAuto LayoutAlgorithm = iota
	LayoutCircular
	LayoutLayered
	LayoutSaved
)

// ParseLayout maps a layout name to its algorithm.
func ParseLayout(s string) (LayoutAlgorithm, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return LayoutAuto, nil
	case "circular", "circle":
		return LayoutCircular, nil
	case "layered", "hierarchical":
		return LayoutLayered, nil
	case "saved":
		return LayoutSaved, nil
	default:
		return LayoutAuto, fmt.Errorf("unknown layout %q", s)
	}
}

// box is the area state centres may occupy.
type box struct {
	minX, minY, maxX, maxY float64
}

func (b box) width() float64  { return b.maxX - b.minX }
func (b box) height() float64 { return b.maxY - b.minY }

// LayoutStates returns state centres keyed by ID for a width x height
// canvas, keeping margin pixels clear on every side.
func LayoutStates(a automaton.Automaton, algorithm LayoutAlgorithm, width, height, margin float64) map[int][2]float64 {
	b := box{margin, margin, width - margin, height - margin}
	if b.width() < 0 || b.height() < 0 {
		b = box{width / 2, height / 2, width / 2, height / 2}
	}
	h := a.Base()

	if algorithm == LayoutAuto {
		algorithm = LayoutLayered
		if hasSavedPositions(h) {
			algorithm = LayoutSaved
		}
	}

	switch algorithm {
	case LayoutCircular:
		return layoutCircular(h, b)
	case LayoutSaved:
		return layoutSaved(h, b)
	default:
		return layoutLayered(a, b)
	}
}

func hasSavedPositions(h *automaton.Header) bool {
	for _, s := range h.States {
		if s.X != 0 || s.Y != 0 {
			return true
		}
	}
	return false
}

// layoutCircular places states evenly on a circle in declaration order,
// starting on the left so the initial arrow usually has room.
func layoutCircular(h *automaton.Header, b box) map[int][2]float64 {
	pos := make(map[int][2]float64, len(h.States))
	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	r := math.Min(b.width(), b.height()) / 2
	n := len(h.States)

	for i, st := range h.States {
		if n == 1 {
			pos[st.ID] = [2]float64{cx, cy}
			continue
		}
		angle := math.Pi + 2*math.Pi*float64(i)/float64(n)
		pos[st.ID] = [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pos
}

// layoutSaved scales the coordinates stored in the file into the box.
func layoutSaved(h *automaton.Header, b box) map[int][2]float64 {
	pos := make(map[int][2]float64, len(h.States))
	if len(h.States) == 0 {
		return pos
	}

	src := box{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, s := range h.States {
		src.minX, src.maxX = math.Min(src.minX, s.X), math.Max(src.maxX, s.X)
		src.minY, src.maxY = math.Min(src.minY, s.Y), math.Max(src.maxY, s.Y)
	}

	// Keep the aspect ratio of the drawing.
	scale := math.Inf(1)
	if src.width() > 0 {
		scale = b.width() / src.width()
	}
	if src.height() > 0 {
		scale = math.Min(scale, b.height()/src.height())
	}
	if math.IsInf(scale, 1) {
		scale = 0
	}
	offX := (b.minX+b.maxX)/2 - scale*(src.minX+src.maxX)/2
	offY := (b.minY+b.maxY)/2 - scale*(src.minY+src.maxY)/2

	for _, s := range h.States {
		pos[s.ID] = [2]float64{offX + scale*s.X, offY + scale*s.Y}
	}
	return pos
}

// layoutLayered arranges states in columns by distance from the initial
// state, left to right like the DOT output. Unreachable states share a
// final column.
func layoutLayered(a automaton.Automaton, b box) map[int][2]float64 {
	h := a.Base()
	adj := make(map[int][]int)
	for _, e := range TransitionLabels(a) {
		adj[e.From] = append(adj[e.From], e.To)
	}

	layer := map[int]int{h.Initial: 0}
	maxLayer := 0
	queue := []int{h.Initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, seen := layer[next]; seen {
				continue
			}
			layer[next] = layer[cur] + 1
			maxLayer = max(maxLayer, layer[next])
			queue = append(queue, next)
		}
	}

	unreachable := false
	for _, s := range h.States {
		if _, ok := layer[s.ID]; !ok {
			layer[s.ID] = maxLayer + 1
			unreachable = true
		}
	}
	if unreachable {
		maxLayer++
	}

	// Declaration order within each column.
	columns := make([][]int, maxLayer+1)
	for _, s := range h.States {
		l := layer[s.ID]
		columns[l] = append(columns[l], s.ID)
	}

	pos := make(map[int][2]float64, len(h.States))
	for l, ids := range columns {
		x := (b.minX + b.maxX) / 2
		if maxLayer > 0 {
			x = b.minX + b.width()*float64(l)/float64(maxLayer)
		}
		for i, id := range ids {
			y := (b.minY + b.maxY) / 2
			if len(ids) > 1 {
				y = b.minY + b.height()*float64(i)/float64(len(ids)-1)
			}
			pos[id] = [2]float64{x, y}
		}
	}
	return pos
}
