package ui

import "github.com/hajimehoshi/ebiten/v2"

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	inputChars           = func() []rune { return ebiten.AppendInputChars(nil) }
	wheel                = ebiten.Wheel
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	chars func() []rune,
	wh func() (float64, float64),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldChars := inputChars
	oldWheel := wheel
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	inputChars = chars
	wheel = wh
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		inputChars = oldChars
		wheel = oldWheel
	}
}

// pointer reads the mouse for a page. A page created while the button is
// held ignores that press, so a click never lands on the next page too.
type pointer struct{ armed bool }

func (p *pointer) read() (mx, my int, pressed, ok bool) {
	mx, my = cursorPosition()
	pressed = isMouseButtonPressed(ebiten.MouseButtonLeft)
	if !pressed {
		p.armed = true
	}
	return mx, my, pressed, p.armed
}
