package view

import (
	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	"github.com/ingyamilmolinar/rhythmlab/core/engine"
)

// Tile opacities of the polymeter grid.
const (
	OpacityCurrentActive = 1.0
	OpacityCurrent       = 0.7
	OpacityActive        = 0.4
	OpacityIdle          = 0.1
)

// TileOpacity picks the fill strength of a tile from whether the line is on
// it and whether it is in the pattern.
func TileOpacity(current, active bool) float64 {
	switch {
	case current && active:
		return OpacityCurrentActive
	case current:
		return OpacityCurrent
	case active:
		return OpacityActive
	default:
		return OpacityIdle
	}
}

type Tile struct {
	Index   int
	Current bool
	Active  bool
	Opacity float64
}

// Tiles lays out one polymeter line of length n.
func Tiles(n, current int, p beat.Pattern) []Tile {
	out := make([]Tile, n)
	for i := range out {
		idx := i + 1
		cur, act := idx == current, p.Contains(idx)
		out[i] = Tile{Index: idx, Current: cur, Active: act, Opacity: TileOpacity(cur, act)}
	}
	return out
}

// MeterView follows the current index of each polymeter line. Feed it from
// an engine built with engine.WithMisses(true) so every beat moves it.
type MeterView struct {
	Current []int
}

func NewMeterView(lines int) *MeterView {
	v := &MeterView{Current: make([]int, lines)}
	v.Reset()
	return v
}

func (v *MeterView) OnTick(t engine.Tick) {
	i := int(t.Track) - 1
	if i >= 0 && i < len(v.Current) {
		v.Current[i] = t.Index
	}
}

func (v *MeterView) OnRotate(float64) {}

// Reset puts every line back on its first beat, as Stop does.
func (v *MeterView) Reset() {
	for i := range v.Current {
		v.Current[i] = 1
	}
}
