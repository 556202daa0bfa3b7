package audio

import (
	"sort"
	"sync"
)

const (
	SampleRate          = 44100
	bufferSizeBytes10ms = SampleRate / 100 * 2 // 10ms of 16-bit mono audio
)

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// Instrument constructs a new Voice instance when triggered.
type Instrument interface {
	NewVoice(sampleRate int) Voice
}

// Trigger starts a voice on a playback channel.
type Trigger interface {
	Trigger(channel int, v Voice)
}

// Mixer mixes one voice per channel into a single 16-bit mono PCM stream.
// Triggering a channel that is still sounding replaces its voice. Create
// one with NewMixer.
type Mixer struct {
	mu       sync.Mutex
	channels map[int]Voice
	gain     float64
}

func NewMixer() *Mixer {
	return &Mixer{channels: map[int]Voice{}, gain: 1}
}

func (m *Mixer) Trigger(channel int, v Voice) {
	if v == nil {
		return
	}
	m.mu.Lock()
	if m.channels == nil {
		m.channels = map[int]Voice{}
	}
	m.channels[channel] = v
	m.mu.Unlock()
}

// Active reports whether a channel still has a sounding voice.
func (m *Mixer) Active(channel int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.channels[channel]
	return ok
}

// Clear silences every channel.
func (m *Mixer) Clear() {
	m.mu.Lock()
	m.channels = map[int]Voice{}
	m.mu.Unlock()
}

// SetGain sets the master gain, clamped to [0,1].
func (m *Mixer) SetGain(g float64) {
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	m.mu.Lock()
	m.gain = g
	m.mu.Unlock()
}

// Read implements io.Reader for oto.Player.
func (m *Mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	order := make([]int, 0, len(m.channels))
	for ch := range m.channels {
		order = append(order, ch)
	}
	sort.Ints(order)
	for i := 0; i < samples; i++ {
		var sum float64
		for _, ch := range order {
			v, ok := m.channels[ch]
			if !ok {
				continue
			}
			val, done := v.Sample()
			sum += val
			if done {
				delete(m.channels, ch)
			}
		}
		sum *= m.gain
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}
	return samples * 2, nil
}

// bufferVoice plays a rendered buffer once.
type bufferVoice struct {
	buf []float32
	i   int
}

func (v *bufferVoice) Sample() (float64, bool) {
	if v.i >= len(v.buf) {
		return 0, true
	}
	f := float64(v.buf[v.i])
	v.i++
	return f, false
}
