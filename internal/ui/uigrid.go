package ui

import (
	"image"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Ebiten's debug font uses a 6x13 glyph.
	debugCharW = 6
	debugCharH = 13
)

// insetRect returns r shrunk by pad pixels on all sides; negative pad grows it.
func insetRect(r image.Rectangle, pad int) image.Rectangle {
	return image.Rect(r.Min.X+pad, r.Min.Y+pad, r.Max.X-pad, r.Max.Y-pad)
}

// ButtonVisual is implemented by styles capable of drawing a button.
// pressed indicates the mouse button is currently down; hovered indicates the
// cursor is over the control so styles can provide hover feedback.
type ButtonVisual interface {
	Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool)
}

// Button is a basic clickable component with a rectangular bounds and text label.
type Button struct {
	r       image.Rectangle
	Text    string
	Style   ButtonVisual
	OnClick func()
	pressed bool
	hovered bool
	held    int
}

func NewButton(text string, style ButtonVisual, onClick func()) *Button {
	return &Button{Text: text, Style: style, OnClick: onClick}
}

func (b *Button) Rect() image.Rectangle { return b.r }

func (b *Button) SetRect(r image.Rectangle) { b.r = r }

// Draw renders the button and its label.
func (b *Button) Draw(dst *ebiten.Image) {
	if b.Style != nil {
		b.Style.Draw(dst, b.r, b.pressed, b.hovered)
	}
	tr := b.textRect()
	drawText(dst, b.Text, tr.Min.X, tr.Min.Y)
}

// textRect returns the rectangle occupied by the button's text when drawn.
func (b *Button) textRect() image.Rectangle {
	w := debugCharW * utf8.RuneCountInString(b.Text)
	h := debugCharH
	x := b.r.Min.X + (b.r.Dx()-w)/2
	y := b.r.Min.Y + (b.r.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Handle processes the mouse at (mx,my). OnClick fires once per press that
// starts inside the button.
func (b *Button) Handle(mx, my int, pressed bool) bool {
	inside := pt(mx, my, b.r)
	b.hovered = inside
	if pressed && inside {
		b.held++
		if b.held == 1 && b.OnClick != nil {
			b.OnClick()
		}
		b.pressed = true
		return true
	}
	b.pressed = false
	b.held = 0
	return false
}

// GridLayout splits a rectangle into columns and rows by relative weight.
// Edges sit at the rounded cumulative weight, so cells tile the bounds with
// no gaps.
type GridLayout struct {
	bounds image.Rectangle
	xs, ys []int
}

func NewGridLayout(b image.Rectangle, cols, rows []float64) *GridLayout {
	return &GridLayout{
		bounds: b,
		xs:     edges(b.Min.X, b.Max.X, cols),
		ys:     edges(b.Min.Y, b.Max.Y, rows),
	}
}

// edges returns len(weights)+1 positions from lo to hi. Non-positive totals
// split evenly.
func edges(lo, hi int, weights []float64) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	out := make([]int, len(weights)+1)
	out[0] = lo
	acc := 0.0
	for i, w := range weights {
		if total <= 0 {
			acc += 1
			out[i+1] = lo + int(math.Round(float64(hi-lo)*acc/float64(len(weights))))
			continue
		}
		acc += w
		out[i+1] = lo + int(math.Round(float64(hi-lo)*acc/total))
	}
	out[len(weights)] = hi
	return out
}

// Cell returns the rectangle for the specified cell.
func (g *GridLayout) Cell(col, row int) image.Rectangle {
	return image.Rect(g.xs[col], g.ys[row], g.xs[col+1], g.ys[row+1])
}

// Row spans every column of one row.
func (g *GridLayout) Row(row int) image.Rectangle {
	return image.Rect(g.bounds.Min.X, g.ys[row], g.bounds.Max.X, g.ys[row+1])
}
