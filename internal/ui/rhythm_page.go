package ui

import (
	"image"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/internal/view"
)

const (
	circleRadius = 175
	orbitRadius  = 12
	beatBoxW     = 60
	beatBoxH     = 40
)

type rhythmPage struct {
	g    *Game
	ptr  pointer
	eng  *engine.RhythmEngine
	view *view.RhythmView

	back   *Button
	goBtn  *Button
	speed  *Slider
	inputs []*TextInput

	w      int
	center view.Point
}

func newRhythmPage(g *Game) *rhythmPage {
	p := &rhythmPage{g: g}
	p.view = view.NewRhythmView(len(g.cfg.Beats))
	p.eng = engine.NewRhythmEngine(g.clock, g.sink(p.view), g.cfg.RhythmOptions(g.logger)...)

	p.back = NewButton("< Menu", DefaultButtonStyle, func() { g.Show(PageMenu) })
	p.goBtn = NewButton("Go", DefaultButtonStyle, p.toggle)
	p.speed = NewSlider(engine.MinSpeed, engine.MaxSpeed, p.eng.Speed())
	p.speed.MinLabel, p.speed.MaxLabel = "Slow", "Fast"
	p.speed.OnChange = func(v int) {
		p.eng.SetSpeed(v)
		p.syncState()
	}
	for i := 0; i < p.eng.Tracks(); i++ {
		id := engine.TrackID(i + 1)
		in := NumericInput(image.Rectangle{}, BeatBoxStyle)
		in.MaxLen = 4
		in.SetText(p.eng.BeatsText(id))
		in.OnChange = func(txt string) {
			p.eng.SetBeats(id, txt)
			p.syncState()
		}
		p.inputs = append(p.inputs, in)
	}
	return p
}

func (p *rhythmPage) toggle() {
	if p.eng.Playing() {
		p.eng.Stop()
	} else {
		p.eng.Start()
		// Start may have capped the text at the beat limit
		for i, in := range p.inputs {
			in.SetText(p.eng.BeatsText(engine.TrackID(i + 1)))
		}
	}
	p.syncState()
}

func (p *rhythmPage) syncState() {
	if p.eng.Playing() {
		p.goBtn.Text = "Stop"
	} else {
		p.goBtn.Text = "Go"
		p.view.Reset()
	}
}

func (p *rhythmPage) Layout(w, h int) {
	p.w = w
	cx := w / 2
	p.back.SetRect(image.Rect(10, 10, 90, 36))
	p.speed.SetRect(centeredRect(cx, 130, 300, 20))
	n := len(p.inputs)
	const gap = 25
	x := cx - (n*beatBoxW+(n-1)*gap)/2
	for _, in := range p.inputs {
		in.Rect = image.Rect(x, 170, x+beatBoxW, 170+beatBoxH)
		x += beatBoxW + gap
	}
	p.goBtn.SetRect(centeredRect(cx, 230, 125, 50))
	p.center = view.Point{X: float64(cx), Y: 300 + circleRadius + 20}
}

func (p *rhythmPage) Update() error {
	p.view.Frame()
	mx, my, pressed, ok := p.ptr.read()
	if !ok {
		return nil
	}
	for _, in := range p.inputs {
		in.Update()
	}
	p.speed.Handle(mx, my, pressed)
	p.goBtn.Handle(mx, my, pressed)
	p.back.Handle(mx, my, pressed)
	return nil
}

func (p *rhythmPage) Draw(dst *ebiten.Image) {
	cx := p.w / 2
	drawTextCentered(dst, "Polyrhythms", cx, 40)
	drawTextCentered(dst, "Several rhythms share one cycle, each split into its own number of even beats.", cx, 70)
	drawTextCentered(dst, "Their first beats always line up. Press Go to listen, then try other counts.", cx, 86)
	p.back.Draw(dst)
	drawTextCentered(dst, "Speed", cx, 110)
	p.speed.Draw(dst)
	for i, in := range p.inputs {
		in.Draw(dst)
		if i > 0 {
			r := in.Rect
			drawText(dst, ":", r.Min.X-15, r.Min.Y+(r.Dy()-debugCharH)/2)
		}
	}
	p.goBtn.Draw(dst)

	c := p.center
	drawCircle(dst, c.X, c.Y, circleRadius, 2, colCircle, false)
	for i := range p.inputs {
		id := engine.TrackID(i + 1)
		col := trackColor(i + 1)
		width := float32(4 + 2*p.view.Flash(i+1))
		drawPolygon(dst, view.Polygon(p.eng.BeatCount(id), view.PolygonStart, c.X, c.Y, circleRadius), width, col)
	}
	if p.eng.Playing() {
		o := view.OrbitPoint(p.view.Angle, c.X, c.Y, circleRadius)
		drawCircle(dst, o.X, o.Y, orbitRadius, 0, colOrbit, true)
	}

	// beat counters beside the circle
	for i := range p.inputs {
		id := engine.TrackID(i + 1)
		x := int(c.X) - circleRadius - 60
		if i%2 == 1 {
			x = int(c.X) + circleRadius + 50
		}
		y := int(c.Y) + (i/2)*20
		drawText(dst, strconv.Itoa(p.eng.Index(id)), x, y)
	}

	texts := make([]string, len(p.inputs))
	for i := range p.inputs {
		texts[i] = p.eng.BeatsText(engine.TrackID(i + 1))
	}
	y := int(c.Y) + circleRadius + 30
	drawTextCentered(dst, view.Label(texts...), cx, y)
	drawTextCentered(dst, view.MnemonicText(p.eng.Mnemonic()), cx, y+20)
	for i := range p.inputs {
		if p.eng.BeatCount(engine.TrackID(i+1)) == beat.MaxBeats {
			drawTextCentered(dst, "Beat counts are capped at "+strconv.Itoa(beat.MaxBeats)+".", cx, y+40)
			break
		}
	}
}

func (p *rhythmPage) Close() {
	p.eng.Close()
	for _, in := range p.inputs {
		in.Blur()
	}
}
