package ui

import "image/color"

var (
	colBGTop    = color.RGBA{14, 24, 40, 255}
	colBGBottom = color.RGBA{0, 0, 0, 255}

	colText         = color.RGBA{255, 255, 255, 255}
	colButton       = color.RGBA{0, 0, 0, 64}
	colButtonBorder = color.RGBA{255, 255, 255, 102}
	colSelected     = color.RGBA{40, 120, 200, 255}
	colInputFill    = color.RGBA{255, 255, 255, 255}
	colInputText    = color.RGBA{40, 80, 220, 255}

	// track colours: red for the first line, blue for the second
	colTrack1 = color.RGBA{230, 50, 50, 255}
	colTrack2 = color.RGBA{50, 110, 240, 255}
	colTrack3 = color.RGBA{60, 200, 120, 255}

	colCircle = color.RGBA{255, 255, 255, 255}
	colOrbit  = color.RGBA{255, 255, 255, 255}
)

func trackColor(track int) color.RGBA {
	switch track {
	case 1:
		return colTrack1
	case 2:
		return colTrack2
	default:
		return colTrack3
	}
}

// fadeColor scales c's alpha by a in [0,1].
func fadeColor(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// mix blends a towards b by t in [0,1].
func mix(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}
