package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Slider is a horizontal slider over whole-number steps in [Min, Max].
type Slider struct {
	r        image.Rectangle
	Min, Max int
	Value    int
	// MinLabel and MaxLabel are drawn at the ends, e.g. "Slow" and "Fast".
	MinLabel, MaxLabel string
	// OnChange runs whenever the value moves.
	OnChange func(int)
	// OnRelease runs when a drag ends, like an end-of-edit callback.
	OnRelease func(int)
	dragging  bool
}

func NewSlider(lo, hi, v int) *Slider {
	s := &Slider{Min: lo, Max: hi}
	s.Value = s.clamp(v)
	s.MinLabel, s.MaxLabel = fmt.Sprint(lo), fmt.Sprint(hi)
	return s
}

func (s *Slider) SetRect(r image.Rectangle) { s.r = r }

func (s *Slider) Rect() image.Rectangle { return s.r }

// Set moves the slider without firing callbacks.
func (s *Slider) Set(v int) { s.Value = s.clamp(v) }

// Handle processes mouse interaction.
func (s *Slider) Handle(mx, my int, pressed bool) bool {
	if pressed {
		if s.dragging || image.Pt(mx, my).In(s.r) {
			s.dragging = true
			s.move(s.valueAt(mx))
			return true
		}
	} else if s.dragging {
		s.dragging = false
		if s.OnRelease != nil {
			s.OnRelease(s.Value)
		}
		return true
	}
	if image.Pt(mx, my).In(s.r) {
		if _, dy := wheel(); dy != 0 {
			step := 1
			if dy < 0 {
				step = -1
			}
			s.move(s.Value + step)
			if s.OnRelease != nil {
				s.OnRelease(s.Value)
			}
			return true
		}
	}
	return false
}

func (s *Slider) move(v int) {
	v = s.clamp(v)
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) valueAt(mx int) int {
	w := s.r.Dx() - 1
	if w <= 0 || s.Max <= s.Min {
		return s.Min
	}
	pos := math.Max(0, math.Min(float64(w), float64(mx-s.r.Min.X)))
	return s.Min + int(math.Round(pos/float64(w)*float64(s.Max-s.Min)))
}

func (s *Slider) clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

func (s *Slider) knobX() int {
	if s.Max <= s.Min {
		return s.r.Min.X
	}
	frac := float64(s.Value-s.Min) / float64(s.Max-s.Min)
	return s.r.Min.X + int(frac*float64(s.r.Dx()-1))
}

// Draw renders the track, knob and end labels.
func (s *Slider) Draw(dst *ebiten.Image) {
	trackY := s.r.Min.Y + s.r.Dy()/2 - 2
	drawRect(dst, image.Rect(s.r.Min.X, trackY, s.r.Max.X, trackY+4), color.RGBA{80, 80, 80, 255}, true)

	kx := s.knobX()
	drawRect(dst, image.Rect(kx-4, s.r.Min.Y, kx+4, s.r.Max.Y), color.RGBA{220, 220, 220, 255}, true)

	ly := s.r.Min.Y + (s.r.Dy()-debugCharH)/2
	drawText(dst, s.MinLabel, s.r.Min.X-textWidth(s.MinLabel)-8, ly)
	drawText(dst, s.MaxLabel, s.r.Max.X+8, ly)
}
