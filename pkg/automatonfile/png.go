// Native PNG rendering of automata with an optional highlighted path.

package automatonfile

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width       int
	Height      int
	Padding     int
	StateRadius int
	FontSize    int
	Title       string
	Layout      LayoutAlgorithm
	// Highlight holds indices of transitions drawn in the accent colour.
	Highlight map[int]bool
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:       800,
		Height:      600,
		Padding:     60,
		StateRadius: 26,
		FontSize:    14,
	}
}

// Colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorBlack     = color.RGBA{51, 51, 51, 255}   // #333
	colorGray      = color.RGBA{102, 102, 102, 255} // #666
	colorInitial   = color.RGBA{232, 245, 233, 255} // #e8f5e9
	colorAccepting = color.RGBA{255, 243, 224, 255} // #fff3e0
	colorHighlight = color.RGBA{198, 40, 40, 255}   // #c62828
)

// supersample is the factor images are drawn at before downscaling.
const supersample = 4

// renderContext holds rendering parameters including scale
type renderContext struct {
	img       *image.RGBA
	scale     float64
	lineWidth float64
	face      font.Face
}

func newRenderContext(img *image.RGBA, fontSize int) (*renderContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(fontSize * supersample),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return &renderContext{
		img:       img,
		scale:     supersample,
		lineWidth: 2 * supersample,
		face:      face,
	}, nil
}

// RenderPNG renders an automaton to PNG. States are placed by opts.Layout;
// parallel transitions share one arrow with stacked labels.
func RenderPNG(a automaton.Automaton, w io.Writer, opts PNGOptions) error {
	d := DefaultPNGOptions()
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = d.Width, d.Height
	}
	if opts.StateRadius <= 0 {
		opts.StateRadius = d.StateRadius
	}
	if opts.FontSize <= 0 {
		opts.FontSize = d.FontSize
	}

	large := image.NewRGBA(image.Rect(0, 0, opts.Width*supersample, opts.Height*supersample))
	ctx, err := newRenderContext(large, opts.FontSize)
	if err != nil {
		return err
	}
	draw.Draw(large, large.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)
	renderAutomaton(ctx, a, opts)

	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return png.Encode(w, final)
}

func renderAutomaton(ctx *renderContext, a automaton.Automaton, opts PNGOptions) {
	h := a.Base()
	radius := float64(opts.StateRadius) * ctx.scale
	margin := float64(opts.Padding + opts.StateRadius)
	pos := LayoutStates(a, opts.Layout, float64(opts.Width), float64(opts.Height), margin)
	for id, p := range pos {
		pos[id] = [2]float64{p[0] * ctx.scale, p[1] * ctx.scale}
	}

	if opts.Title != "" {
		drawTextCentered(ctx, ctx.img.Bounds().Dx()/2, int(float64(opts.Padding)*ctx.scale/2), opts.Title, colorBlack)
	}

	type pair struct {
		from, to int
		hot      bool
	}
	labels := make(map[pair][]string)
	var order []pair
	for i, e := range TransitionLabels(a) {
		k := pair{e.From, e.To, opts.Highlight[i]}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
		}
		labels[k] = append(labels[k], e.Label)
	}

	for _, k := range order {
		c := colorGray
		if k.hot {
			c = colorHighlight
		}
		from, to := pos[k.from], pos[k.to]
		var lx, ly float64
		if k.from == k.to {
			lx, ly = drawSelfLoop(ctx, from[0], from[1], radius, c)
		} else {
			lx, ly = drawTransition(ctx, from, to, radius, c)
		}
		lineHeight := float64(ctx.face.Metrics().Height.Ceil())
		for i, l := range labels[k] {
			drawTextCentered(ctx, int(lx), int(ly+float64(i)*lineHeight), l, c)
		}
	}

	for _, st := range h.States {
		p := pos[st.ID]
		fill := colorWhite
		switch {
		case st.ID == h.Initial:
			fill = colorInitial
		case isAccepting(a, st.ID):
			fill = colorAccepting
		}
		drawCircle(ctx, p[0], p[1], radius, fill, colorBlack)
		if isAccepting(a, st.ID) {
			drawCircle(ctx, p[0], p[1], radius-4*ctx.scale, color.Transparent, colorBlack)
		}
		label := st.Label()
		if a.Kind() == automaton.KindMoore && st.Output != "" {
			label += "/" + st.Output
		}
		drawTextCentered(ctx, int(p[0]), int(p[1]), label, colorBlack)

		if st.ID == h.Initial {
			drawArrowLine(ctx, p[0]-radius-30*ctx.scale, p[1], p[0]-radius, p[1], colorBlack)
		}
	}
}

// drawTransition draws a gently curved arrow between two states and returns
// the label position. Curving to one side keeps a->b and b->a apart.
func drawTransition(ctx *renderContext, from, to [2]float64, radius float64, c color.Color) (float64, float64) {
	dx, dy := to[0]-from[0], to[1]-from[1]
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return from[0], from[1]
	}
	nx, ny := dx/dist, dy/dist
	px, py := ny, -nx

	bend := dist * 0.15
	mx := (from[0]+to[0])/2 + px*bend
	my := (from[1]+to[1])/2 + py*bend

	sx, sy := from[0]+nx*radius, from[1]+ny*radius
	ex, ey := to[0]-nx*(radius+2*ctx.scale), to[1]-ny*(radius+2*ctx.scale)
	drawQuadBezierArrow(ctx, sx, sy, mx, my, ex, ey, c)

	// Bezier midpoint, nudged outwards.
	lx := 0.25*sx + 0.5*mx + 0.25*ex + px*8*ctx.scale
	ly := 0.25*sy + 0.5*my + 0.25*ey + py*8*ctx.scale
	return lx, ly
}

// drawSelfLoop draws a loop above the state and returns the label position.
func drawSelfLoop(ctx *renderContext, x, y, radius float64, c color.Color) (float64, float64) {
	loopR := radius * 0.6
	cy := y - radius - loopR*0.6
	drawCircle(ctx, x, cy, loopR, color.Transparent, c)
	return x, cy - loopR - 8*ctx.scale
}

// drawCircle draws a circle outline and optional fill.
func drawCircle(ctx *renderContext, cx, cy, r float64, fill, stroke color.Color) {
	img := ctx.img
	half := ctx.lineWidth / 2

	minX, maxX := int(cx-r-half)-1, int(cx+r+half)+1
	minY, maxY := int(cy-r-half)-1, int(cy+r+half)+1
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case math.Abs(d-r) <= half:
				img.Set(x, y, stroke)
			case d < r && fill != color.Transparent:
				img.Set(x, y, fill)
			}
		}
	}
}

// drawLine draws a line between two points with thickness from context.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	steps := math.Max(math.Max(math.Abs(dx), math.Abs(dy)), 1)
	half := ctx.lineWidth / 2

	var perpX, perpY float64
	if dist >= 1 {
		perpX, perpY = -dy/dist, dx/dist
	}
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		px := x1 + dx*t
		py := y1 + dy*t
		for offset := -half; offset <= half; offset += 0.5 {
			ctx.img.Set(int(px+perpX*offset), int(py+perpY*offset), c)
		}
	}
}

// drawArrowLine draws a line with an arrowhead at the end.
func drawArrowLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	drawLine(ctx, x1, y1, x2, y2, c)
	drawArrowHead(ctx, x2-x1, y2-y1, x2, y2, c)
}

// drawQuadBezierArrow draws a quadratic Bezier curve with arrowhead.
func drawQuadBezierArrow(ctx *renderContext, x1, y1, cx, cy, x2, y2 float64, c color.Color) {
	const steps = 60.0
	prevX, prevY := x1, y1
	for i := 1.0; i <= steps; i++ {
		t := i / steps
		x := (1-t)*(1-t)*x1 + 2*(1-t)*t*cx + t*t*x2
		y := (1-t)*(1-t)*y1 + 2*(1-t)*t*cy + t*t*y2
		drawLine(ctx, prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
	// Tangent at the end points from the control point.
	drawArrowHead(ctx, x2-cx, y2-cy, x2, y2, c)
}

// drawArrowHead fills a triangle pointing along (dx, dy) with its tip at (x, y).
func drawArrowHead(ctx *renderContext, dx, dy, x, y float64, c color.Color) {
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	nx, ny := dx/dist, dy/dist
	arrowLen := 8.0 * ctx.scale
	arrowWidth := 4.0 * ctx.scale

	ax1 := x - nx*arrowLen + ny*arrowWidth
	ay1 := y - ny*arrowLen - nx*arrowWidth
	ax2 := x - nx*arrowLen - ny*arrowWidth
	ay2 := y - ny*arrowLen + nx*arrowWidth
	for t := 0.0; t <= 1.0; t += 0.05 {
		drawLine(ctx, x, y, ax1+(ax2-ax1)*t, ay1+(ay2-ay1)*t, c)
	}
}

// drawTextCentered draws text centred on (x, y) using Go Regular.
func drawTextCentered(ctx *renderContext, x, y int, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()
	ascent := ctx.face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot:  fixed.Point26_6{X: fixed.I(x - width/2), Y: fixed.I(y + ascent*35/100)},
	}
	d.DrawString(text)
}
