package audio

import (
	"math"
	"math/rand"
)

// Snare is white noise over a short body tone.
type Snare struct{}

func (Snare) NewVoice(sampleRate int) Voice {
	n := samplesFor(sampleRate, 0.15)
	buf := make([]float32, n)
	rng := rand.New(rand.NewSource(2))
	sr := float64(sampleRate)
	for i := range buf {
		t := float64(i) / float64(n)
		noise := rng.Float64()*2 - 1
		body := math.Sin(2 * math.Pi * 180 * float64(i) / sr)
		buf[i] = float32((0.7*noise + 0.3*body) * math.Exp(-6*t))
	}
	return &bufferVoice{buf: buf}
}
