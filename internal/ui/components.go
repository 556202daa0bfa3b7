package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ButtonStyle describes rectangular button visuals.
type ButtonStyle struct {
	Fill   color.Color
	Border color.Color
	Hover  color.Color
}

// Draw renders the button rectangle using the global drawButton primitive.
func (s ButtonStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool) {
	border := s.Border
	if hovered && s.Hover != nil {
		border = s.Hover
	}
	drawButton(dst, r, s.Fill, border, pressed)
}

// TextInputStyle styles a text input box.
type TextInputStyle struct {
	Fill   color.Color
	Border color.Color
	Focus  color.RGBA
}

// DrawAnimated renders the box with a focus ring whose strength follows anim.
func (s TextInputStyle) DrawAnimated(dst *ebiten.Image, r image.Rectangle, focused bool, anim float64) {
	drawButton(dst, r, s.Fill, s.Border, false)
	if focused || anim > 0 {
		a := anim
		if focused {
			a = 1
		}
		drawRect(dst, insetRect(r, -2), fadeColor(s.Focus, a), false)
	}
}

// TileStyle draws one polymeter tile: the line colour at the tile's opacity.
type TileStyle struct {
	Border color.Color
}

func (s TileStyle) Draw(dst *ebiten.Image, r image.Rectangle, base color.RGBA, opacity float64) {
	drawRect(dst, r, fadeColor(base, opacity), true)
	drawRect(dst, r, s.Border, false)
}

var (
	DefaultButtonStyle = ButtonStyle{Fill: colButton, Border: colButtonBorder, Hover: colText}
	SelectedStyle      = ButtonStyle{Fill: colSelected, Border: colText}
	BeatBoxStyle       = TextInputStyle{Fill: colInputFill, Border: colButtonBorder, Focus: colTrack2}
	DefaultTileStyle   = TileStyle{Border: colButtonBorder}
)
