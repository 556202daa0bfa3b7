package audio

import (
	"math"
	"math/rand"
)

// Clap renders multiple short noise bursts for a hand clap.
type Clap struct{}

func (Clap) NewVoice(sampleRate int) Voice {
	n := samplesFor(sampleRate, 0.2)
	gap := samplesFor(sampleRate, 0.01)
	buf := make([]float32, n)
	rng := rand.New(rand.NewSource(5))
	for i := range buf {
		// three quick bursts, then a longer tail
		var env float64
		if i < 3*gap {
			env = math.Exp(-12 * float64(i%gap) / float64(gap))
		} else {
			env = math.Exp(-5 * float64(i-3*gap) / float64(n-3*gap))
		}
		buf[i] = float32(0.6 * (rng.Float64()*2 - 1) * env)
	}
	return &bufferVoice{buf: buf}
}
