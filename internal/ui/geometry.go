package ui

import (
	"image"
	"unicode/utf8"
)

// pt is a helper function to check if a point is within a rectangle.
func pt(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}

// centeredRect returns a w×h rectangle centred horizontally on cx.
func centeredRect(cx, y, w, h int) image.Rectangle {
	return image.Rect(cx-w/2, y, cx-w/2+w, y+h)
}

func textWidth(s string) int { return debugCharW * utf8.RuneCountInString(s) }
