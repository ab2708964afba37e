package automatonfile

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderPNG(t *testing.T) {
	for name, a := range samples() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := DefaultPNGOptions()
			opts.Width, opts.Height = 320, 240
			opts.Title = name
			if err := RenderPNG(a, &buf, opts); err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
				t.Errorf("size = %dx%d, want 320x240", b.Dx(), b.Dy())
			}
		})
	}
}

func TestRenderPNGHighlight(t *testing.T) {
	reddish := func(highlight map[int]bool) int {
		var buf bytes.Buffer
		opts := DefaultPNGOptions()
		opts.Width, opts.Height = 320, 240
		opts.Highlight = highlight
		if err := RenderPNG(sampleFSA(), &buf, opts); err != nil {
			t.Fatalf("RenderPNG: %v", err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		n := 0
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, _, _ := img.At(x, y).RGBA()
				if r>>8 > g>>8+60 {
					n++
				}
			}
		}
		return n
	}

	if n := reddish(nil); n != 0 {
		t.Errorf("plain render has %d highlighted pixels", n)
	}
	if n := reddish(map[int]bool{0: true}); n == 0 {
		t.Error("highlighted render has no highlighted pixels")
	}
}

func TestRenderPNGDefaultsZeroSize(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(sampleFSA(), &buf, PNGOptions{}); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
}
