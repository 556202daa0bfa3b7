package audio

import "math"

// Click is a short metronome blip at a fixed pitch.
type Click struct {
	Freq float64
}

var (
	ClickHigh = Click{Freq: 1760}
	ClickLow  = Click{Freq: 1320}
)

func (c Click) NewVoice(sampleRate int) Voice {
	freq := c.Freq
	if freq <= 0 {
		freq = ClickHigh.Freq
	}
	n := samplesFor(sampleRate, 0.03)
	buf := make([]float32, n)
	sr := float64(sampleRate)
	for i := range buf {
		t := float64(i) / float64(n)
		buf[i] = float32(0.8 * math.Sin(2*math.Pi*freq*float64(i)/sr) * math.Exp(-10*t))
	}
	return &bufferVoice{buf: buf}
}
