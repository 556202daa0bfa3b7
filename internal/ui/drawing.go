package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ingyamilmolinar/rhythmlab/internal/view"
)

// drawRect draws a rectangle. It is defined as a variable so tests can
// override it to capture draw calls.
var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color, filled bool) {
	if filled {
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
	} else {
		vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, c, false)
	}
}

// drawButton renders a filled rectangle with a border. It can be overridden in tests.
var drawButton = func(dst *ebiten.Image, r image.Rectangle, fill, border color.Color, pressed bool) {
	fc := fill
	if pressed {
		if c, ok := fill.(color.RGBA); ok {
			fc = color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
		}
	}
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fc, false)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, border, false)
}

// drawPolygon strokes a closed outline through pts. One point draws a dot.
var drawPolygon = func(dst *ebiten.Image, pts []view.Point, width float32, c color.Color) {
	switch len(pts) {
	case 0:
		return
	case 1:
		vector.DrawFilledCircle(dst, float32(pts[0].X), float32(pts[0].Y), width, c, true)
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c, true)
	}
}

var drawCircle = func(dst *ebiten.Image, cx, cy, r float64, width float32, c color.Color, filled bool) {
	if filled {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c, true)
		return
	}
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), width, c, true)
}

var drawText = ebitenutil.DebugPrintAt

// drawTextCentered prints s centred horizontally on x.
func drawTextCentered(dst *ebiten.Image, s string, x, y int) {
	drawText(dst, s, x-textWidth(s)/2, y)
}
