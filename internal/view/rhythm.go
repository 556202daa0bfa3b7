package view

import (
	"fmt"
	"strings"

	"github.com/ingyamilmolinar/rhythmlab/core/engine"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
)

// FlashFrames is how many frames a track's polygon stays highlighted after
// it sounds.
const FlashFrames = 6

// RhythmView is the presentation state of the polyrhythm page. It is an
// engine.Sink and is only touched from the loop that drives the engine.
type RhythmView struct {
	Angle float64
	// Last is the index each track most recently sounded.
	Last  []int
	flash []int
}

func NewRhythmView(tracks int) *RhythmView {
	return &RhythmView{Last: make([]int, tracks), flash: make([]int, tracks)}
}

func (v *RhythmView) OnTick(t engine.Tick) {
	i := int(t.Track) - 1
	if i < 0 || i >= len(v.Last) {
		return
	}
	v.Last[i] = t.Index
	v.flash[i] = FlashFrames
}

func (v *RhythmView) OnRotate(angle float64) { v.Angle = angle }

// Frame ages the flash counters; call once per rendered frame.
func (v *RhythmView) Frame() {
	for i, f := range v.flash {
		if f > 0 {
			v.flash[i] = f - 1
		}
	}
}

// Flash is 1 right after a track sounds, fading to 0.
func (v *RhythmView) Flash(track int) float64 {
	if track < 1 || track > len(v.flash) {
		return 0
	}
	return float64(v.flash[track-1]) / FlashFrames
}

func (v *RhythmView) Reset() {
	v.Angle = 0
	for i := range v.Last {
		v.Last[i] = 0
		v.flash[i] = 0
	}
}

// Label is the heading under the figure, e.g. "4:3 polyrhythm".
func Label(beats ...string) string {
	return strings.Join(beats, ":") + " polyrhythm"
}

// MnemonicText quotes a phrase; NoPhrase is shown bare.
func MnemonicText(phrase string) string {
	if phrase == "" || phrase == model.NoPhrase {
		return model.NoPhrase
	}
	return fmt.Sprintf("%q", phrase)
}
