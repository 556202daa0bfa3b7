package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/rhythmlab/core/model"
)

type menuPage struct {
	g   *Game
	ptr pointer

	rhythmBtn *Button
	meterBtn  *Button
	loadBtn   *Button
	fileBtn   *Button
	soundBtns []*Button

	w int
}

func newMenuPage(g *Game) *menuPage {
	p := &menuPage{g: g}
	p.rhythmBtn = NewButton(PagePolyrhythm.String(), DefaultButtonStyle, func() { g.Show(PagePolyrhythm) })
	p.meterBtn = NewButton(PagePolymeter.String(), DefaultButtonStyle, func() { g.Show(PagePolymeter) })
	p.loadBtn = NewButton("Load sound folder...", DefaultButtonStyle, g.loadSounds)
	p.fileBtn = NewButton("Load one sound...", DefaultButtonStyle, g.loadSound)
	for _, s := range model.Sounds {
		s := s
		p.soundBtns = append(p.soundBtns, NewButton(s.String(), DefaultButtonStyle, func() {
			g.logger.Infof("[UI] sound set to %s", s)
			g.settings.SetSound(s)
		}))
	}
	return p
}

func (p *menuPage) Layout(w, h int) {
	p.w = w
	cx := w / 2
	p.rhythmBtn.SetRect(centeredRect(cx, 170, 220, 50))
	p.meterBtn.SetRect(centeredRect(cx, 240, 220, 50))
	const cellW, gap = 120, 20
	cols := make([]float64, len(p.soundBtns))
	for i := range cols {
		cols[i] = 1
	}
	grid := NewGridLayout(centeredRect(cx, 350, cellW*len(cols), 40), cols, []float64{1})
	for i, b := range p.soundBtns {
		c := grid.Cell(i, 0)
		b.SetRect(image.Rect(c.Min.X+gap/2, c.Min.Y, c.Max.X-gap/2, c.Max.Y))
	}
	p.loadBtn.SetRect(centeredRect(cx, 420, 220, 40))
	p.fileBtn.SetRect(centeredRect(cx, 470, 220, 40))
}

func (p *menuPage) Update() error {
	mx, my, pressed, ok := p.ptr.read()
	if !ok {
		return nil
	}
	current := p.g.settings.Sound()
	for i, b := range p.soundBtns {
		if model.Sounds[i] == current {
			b.Style = SelectedStyle
		} else {
			b.Style = DefaultButtonStyle
		}
		b.Handle(mx, my, pressed)
	}
	p.loadBtn.Handle(mx, my, pressed)
	p.fileBtn.Handle(mx, my, pressed)
	// navigation last: it replaces this page
	if p.meterBtn.Handle(mx, my, pressed) {
		return nil
	}
	p.rhythmBtn.Handle(mx, my, pressed)
	return nil
}

func (p *menuPage) Draw(dst *ebiten.Image) {
	cx := p.w / 2
	drawTextCentered(dst, "rhythmlab", cx, 80)
	drawTextCentered(dst, "Learn to hear and play polyrhythms and polymeters.", cx, 110)
	p.rhythmBtn.Draw(dst)
	p.meterBtn.Draw(dst)
	drawTextCentered(dst, "Sound", cx, 325)
	for _, b := range p.soundBtns {
		b.Draw(dst)
	}
	p.loadBtn.Draw(dst)
	p.fileBtn.Draw(dst)
	if s := p.g.status; s != "" {
		drawTextCentered(dst, s, cx, 530)
	}
}

func (p *menuPage) Close() {}
