package audio

import (
	"math"
	"math/rand"
)

// Tom renders a pitched drum tone with a slight noise attack.
type Tom struct{}

func (Tom) NewVoice(sampleRate int) Voice {
	n := samplesFor(sampleRate, 0.3)
	attack := samplesFor(sampleRate, 0.005)
	buf := make([]float32, n)
	rng := rand.New(rand.NewSource(4))
	sr := float64(sampleRate)
	var phase float64
	for i := range buf {
		t := float64(i) / float64(n)
		phase += 2 * math.Pi * (220 - 80*t) / sr
		v := math.Sin(phase) * math.Exp(-4*t)
		if i < attack {
			v += 0.3 * (rng.Float64()*2 - 1)
		}
		buf[i] = float32(v)
	}
	return &bufferVoice{buf: buf}
}
