package ui

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeInput feeds scripted mouse and keyboard state through the input hooks.
type fakeInput struct {
	x, y  int
	down  bool
	keys  map[ebiten.Key]bool
	chars []rune
	wy    float64
}

func installInput(t *testing.T) *fakeInput {
	t.Helper()
	f := &fakeInput{keys: map[ebiten.Key]bool{}}
	restore := SetInputForTest(
		func() (int, int) { return f.x, f.y },
		func(ebiten.MouseButton) bool { return f.down },
		func(k ebiten.Key) bool { return f.keys[k] },
		func() []rune {
			c := f.chars
			f.chars = nil
			return c
		},
		func() (float64, float64) { return 0, f.wy },
	)
	t.Cleanup(restore)
	return f
}

func center(r image.Rectangle) (int, int) {
	return (r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2
}

// click runs a release frame, a press frame and a release frame at r's centre.
func (f *fakeInput) click(t *testing.T, g *Game, r image.Rectangle) {
	t.Helper()
	f.x, f.y = center(r)
	for _, down := range []bool{false, true, false} {
		f.down = down
		if err := g.Update(); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
}
