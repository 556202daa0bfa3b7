package ui

import (
	"image"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextInput is a reusable editable text box with cursor support.
type TextInput struct {
	Rect  image.Rectangle
	Style TextInputStyle
	Text  string
	// Accept filters typed runes; nil accepts everything printable.
	Accept func(rune) bool
	// MaxLen caps the rune count; 0 means unlimited.
	MaxLen int
	// OnChange runs after every edit with the new text.
	OnChange func(string)

	cursor  int
	focused bool
	anim    float64
	blink   int
	repeat  map[ebiten.Key]int
}

func NewTextInput(r image.Rectangle, style TextInputStyle) *TextInput {
	return &TextInput{Rect: r, Style: style, repeat: make(map[ebiten.Key]int)}
}

// NumericInput accepts digits and a decimal point only, like a decimal pad.
func NumericInput(r image.Rectangle, style TextInputStyle) *TextInput {
	t := NewTextInput(r, style)
	t.Accept = func(r rune) bool { return unicode.IsDigit(r) || r == '.' }
	return t
}

func (t *TextInput) Focused() bool { return t.focused }

// SetText sets the current text and resets the cursor to the end. It does
// not fire OnChange.
func (t *TextInput) SetText(s string) {
	t.Text = s
	t.cursor = utf8.RuneCountInString(s)
}

// Blur drops focus, e.g. when the page is left.
func (t *TextInput) Blur() { t.focused = false }

// Update processes mouse/keyboard input.
func (t *TextInput) Update() bool {
	mx, my := cursorPosition()
	consumed := false
	if isMouseButtonPressed(ebiten.MouseButtonLeft) {
		if image.Pt(mx, my).In(t.Rect) {
			t.focused = true
			t.anim = 1
			consumed = true
		} else {
			t.focused = false
		}
	}

	if !t.focused {
		t.blink = 0
		t.anim *= 0.85
		if t.anim < 0.01 {
			t.anim = 0
		}
		return consumed
	}

	t.blink++
	if t.blink > 60 {
		t.blink = 0
	}

	before := t.Text
	for _, r := range inputChars() {
		if !unicode.IsPrint(r) || (t.Accept != nil && !t.Accept(r)) {
			continue
		}
		if t.MaxLen > 0 && utf8.RuneCountInString(t.Text) >= t.MaxLen {
			break
		}
		bi := byteIndex(t.Text, t.cursor)
		t.Text = t.Text[:bi] + string(r) + t.Text[bi:]
		t.cursor++
	}

	if t.keyRepeat(ebiten.KeyBackspace) && t.cursor > 0 {
		bi := byteIndex(t.Text, t.cursor)
		prev := byteIndex(t.Text, t.cursor-1)
		t.Text = t.Text[:prev] + t.Text[bi:]
		t.cursor--
	}
	if t.keyRepeat(ebiten.KeyLeft) && t.cursor > 0 {
		t.cursor--
	}
	if t.keyRepeat(ebiten.KeyRight) && t.cursor < utf8.RuneCountInString(t.Text) {
		t.cursor++
	}
	if t.keyRepeat(ebiten.KeyEnter) {
		t.focused = false
	}

	if t.Text != before && t.OnChange != nil {
		t.OnChange(t.Text)
	}
	return consumed
}

func (t *TextInput) keyRepeat(k ebiten.Key) bool {
	if isKeyPressed(k) {
		t.repeat[k]++
		d := t.repeat[k]
		if d == 1 || d > 15 && (d-15)%3 == 0 {
			return true
		}
	} else {
		t.repeat[k] = 0
	}
	return false
}

// byteIndex returns the byte index of rune i in s.
func byteIndex(s string, i int) int {
	if i <= 0 {
		return 0
	}
	bi := 0
	for n := 0; n < i && bi < len(s); n++ {
		_, sz := utf8.DecodeRuneInString(s[bi:])
		bi += sz
	}
	return bi
}

// visibleText returns substring that fits in the box and the index of the first rune shown.
func (t *TextInput) visibleText() (string, int) {
	pad := 4
	maxRunes := (t.Rect.Dx() - pad*2) / debugCharW
	total := utf8.RuneCountInString(t.Text)
	start := 0
	if total > maxRunes {
		start = total - maxRunes
	}
	bi := byteIndex(t.Text, start)
	return t.Text[bi:], start
}

// Draw renders the input with its text centred.
func (t *TextInput) Draw(dst *ebiten.Image) {
	t.Style.DrawAnimated(dst, t.Rect, t.focused, t.anim)
	txt, start := t.visibleText()
	x := t.Rect.Min.X + (t.Rect.Dx()-textWidth(txt))/2
	y := t.Rect.Min.Y + (t.Rect.Dy()-debugCharH)/2
	drawText(dst, txt, x, y)
	if t.focused && t.blink < 30 {
		cx := x + debugCharW*(t.cursor-start)
		drawRect(dst, image.Rect(cx, y, cx+1, y+debugCharH), colInputText, true)
	}
}
