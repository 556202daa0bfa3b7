package ui

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/internal/view"
)

const (
	tileSize = 60
	tileGap  = 8
)

// tileVisual draws a polymeter tile from the page's live state.
type tileVisual struct {
	p     *meterPage
	line  int
	index int
}

func (t tileVisual) Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered bool) {
	id := engine.TrackID(t.line)
	cur := t.p.view.Current[t.line-1] == t.index
	act := t.p.eng.Pattern(id).Contains(t.index)
	DefaultTileStyle.Draw(dst, r, trackColor(t.line), view.TileOpacity(cur, act))
}

type meterPage struct {
	g    *Game
	ptr  pointer
	eng  *engine.MeterEngine
	view *view.MeterView

	back    *Button
	goBtn   *Button
	bpm     *Slider
	lengths []*Slider
	tiles   [][]*Button

	w int
}

func newMeterPage(g *Game) *meterPage {
	p := &meterPage{g: g}
	opts := append(g.cfg.MeterOptions(g.logger), engine.WithMisses(true))
	p.view = view.NewMeterView(len(g.cfg.Lengths))
	p.eng = engine.NewMeterEngine(g.clock, g.sink(p.view), opts...)

	p.back = NewButton("< Menu", DefaultButtonStyle, func() { g.Show(PageMenu) })
	p.goBtn = NewButton("Go", DefaultButtonStyle, p.toggle)
	p.bpm = NewSlider(int(engine.MinBPM), int(engine.MaxBPM), int(p.eng.BPM()))
	p.bpm.OnChange = func(v int) {
		p.eng.SetBPM(float64(v))
		p.syncState()
	}
	for i := 0; i < p.eng.Tracks(); i++ {
		id := engine.TrackID(i + 1)
		s := NewSlider(1, engine.MaxLength, p.eng.Length(id))
		s.OnChange = func(v int) {
			p.eng.SetLength(id, v)
			p.view.Current[id-1] = p.eng.Index(id)
			p.layoutTiles()
		}
		p.lengths = append(p.lengths, s)
	}
	p.tiles = make([][]*Button, p.eng.Tracks())
	return p
}

func (p *meterPage) toggle() {
	if p.eng.Playing() {
		p.eng.Stop()
	} else {
		p.eng.Start()
	}
	p.syncState()
}

func (p *meterPage) syncState() {
	if p.eng.Playing() {
		p.goBtn.Text = "Stop"
	} else {
		p.goBtn.Text = "Go"
		p.view.Reset()
	}
}

func (p *meterPage) Layout(w, h int) {
	p.w = w
	cx := w / 2
	p.back.SetRect(image.Rect(10, 10, 90, 36))
	p.bpm.SetRect(centeredRect(cx, 130, 200, 20))
	for i, s := range p.lengths {
		s.SetRect(centeredRect(cx, 190+i*40, 200, 20))
	}
	p.layoutTiles()
	p.goBtn.SetRect(centeredRect(cx, p.tilesBottom()+50, 125, 50))
}

func (p *meterPage) tilesTop() int { return 210 + len(p.lengths)*40 + 40 }

func (p *meterPage) tilesBottom() int {
	return p.tilesTop() + len(p.lengths)*(tileSize+tileGap)
}

// layoutTiles rebuilds the tile buttons for the current lengths.
func (p *meterPage) layoutTiles() {
	x0 := p.w/2 - (engine.MaxLength*(tileSize+tileGap)-tileGap)/2
	for li := range p.tiles {
		line := li + 1
		id := engine.TrackID(line)
		n := p.eng.Length(id)
		row := make([]*Button, n)
		y := p.tilesTop() + li*(tileSize+tileGap)
		for i := range row {
			idx := i + 1
			b := NewButton(strconv.Itoa(idx), tileVisual{p: p, line: line, index: idx}, func() {
				on := p.eng.TogglePattern(id, idx)
				p.g.logger.Debugf("[UI] line %d beat %d active=%t", line, idx, on)
			})
			x := x0 + i*(tileSize+tileGap)
			b.SetRect(image.Rect(x, y, x+tileSize, y+tileSize))
			row[i] = b
		}
		p.tiles[li] = row
	}
}

func (p *meterPage) Update() error {
	mx, my, pressed, ok := p.ptr.read()
	if !ok {
		return nil
	}
	p.bpm.Handle(mx, my, pressed)
	for _, s := range p.lengths {
		s.Handle(mx, my, pressed)
	}
	for _, row := range p.tiles {
		for _, b := range row {
			b.Handle(mx, my, pressed)
		}
	}
	p.goBtn.Handle(mx, my, pressed)
	p.back.Handle(mx, my, pressed)
	return nil
}

func (p *meterPage) Draw(dst *ebiten.Image) {
	cx := p.w / 2
	drawTextCentered(dst, "Polymeters", cx, 40)
	drawTextCentered(dst, "Patterns of different lengths share the same beat, so they drift apart", cx, 70)
	drawTextCentered(dst, "and line up again after the least common multiple of their lengths.", cx, 86)
	p.back.Draw(dst)
	drawTextCentered(dst, "BPM "+strconv.Itoa(int(p.eng.BPM())), cx, 110)
	p.bpm.Draw(dst)
	drawTextCentered(dst, "Length of Patterns", cx, 170)
	for _, s := range p.lengths {
		s.Draw(dst)
	}
	drawTextCentered(dst, p.lengthsText(), cx, p.tilesTop()-24)
	for _, row := range p.tiles {
		for _, b := range row {
			b.Draw(dst)
		}
	}
	drawTextCentered(dst, "Tap the tiles to add or remove beats from the pattern.", cx, p.tilesBottom()+10)
	drawTextCentered(dst, fmt.Sprintf("Lines realign every %d beats.", p.eng.CycleLength()), cx, p.tilesBottom()+26)
	p.goBtn.Draw(dst)
}

func (p *meterPage) Close() { p.eng.Close() }

// lengthsText renders the line lengths as "5:4".
func (p *meterPage) lengthsText() string {
	lens := make([]string, len(p.lengths))
	for i := range p.lengths {
		lens[i] = strconv.Itoa(p.eng.Length(engine.TrackID(i + 1)))
	}
	return strings.Join(lens, ":")
}
