package audio

import (
	"math"
	"math/rand"
)

// HiHat renders a short, bright noise burst.
// It aims to mimic a closed hi-hat.
type HiHat struct{}

func (HiHat) NewVoice(sampleRate int) Voice {
	n := samplesFor(sampleRate, 0.06)
	buf := make([]float32, n)
	rng := rand.New(rand.NewSource(3))
	var prev float64
	for i := range buf {
		t := float64(i) / float64(n)
		noise := rng.Float64()*2 - 1
		// first difference keeps the top end
		hp := noise - prev
		prev = noise
		buf[i] = float32(0.5 * hp * math.Exp(-8*t))
	}
	return &bufferVoice{buf: buf}
}
