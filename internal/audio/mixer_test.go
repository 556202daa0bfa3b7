package audio

import "testing"

func firstNonZero(buf []byte, from int) int {
	for i := from; i < len(buf)/2; i++ {
		v := int16(buf[2*i]) | int16(buf[2*i+1])<<8
		if v != 0 {
			return i
		}
	}
	return -1
}

func TestMixerPlaysSequentialVoices(t *testing.T) {
	m := NewMixer()
	m.Trigger(1, Snare{}.NewVoice(SampleRate))
	buf := make([]byte, SampleRate/4*2)
	m.Read(buf)
	if firstNonZero(buf, 0) == -1 {
		t.Fatalf("expected audio from the first hit")
	}
	// drain the rest of the snare
	m.Read(make([]byte, SampleRate))
	if m.Active(1) {
		t.Fatalf("finished voice should be removed")
	}
	m.Trigger(1, Snare{}.NewVoice(SampleRate))
	m.Read(buf)
	if firstNonZero(buf, 0) == -1 {
		t.Fatalf("expected audio from the second hit")
	}
}

func TestMixerStartsWithinOneBuffer(t *testing.T) {
	m := NewMixer()
	m.Trigger(1, Kick{}.NewVoice(SampleRate))
	buf := make([]byte, bufferSizeBytes10ms)
	m.Read(buf)
	// The kick starts at phase 0, so allow a few samples of ramp.
	if i := firstNonZero(buf, 0); i == -1 || i > 8 {
		t.Fatalf("voice should sound at the start of the next buffer, first sample %d", i)
	}
}

type constVoice struct {
	v float64
	n int
}

func (c *constVoice) Sample() (float64, bool) {
	if c.n <= 0 {
		return 0, true
	}
	c.n--
	return c.v, false
}

func TestMixerTriggerReplacesVoiceOnChannel(t *testing.T) {
	m := NewMixer()
	m.Trigger(1, &constVoice{v: 0.5, n: 1000})
	m.Trigger(1, &constVoice{v: 0.25, n: 1000})
	buf := make([]byte, 4)
	m.Read(buf)
	got := int16(buf[0]) | int16(buf[1])<<8
	level := float64(0.25)
	if want := int16(level * 32767); got != want {
		t.Fatalf("sample = %d, want %d (replaced voice only)", got, want)
	}
}

func TestMixerSumsChannelsAndClamps(t *testing.T) {
	m := NewMixer()
	m.Trigger(1, &constVoice{v: 0.75, n: 10})
	m.Trigger(2, &constVoice{v: 0.75, n: 10})
	buf := make([]byte, 2)
	m.Read(buf)
	got := int16(buf[0]) | int16(buf[1])<<8
	if got != 32767 {
		t.Fatalf("sum should clamp to full scale, got %d", got)
	}

	m.SetGain(0)
	m.Read(buf)
	if got := int16(buf[0]) | int16(buf[1])<<8; got != 0 {
		t.Fatalf("zero gain should silence, got %d", got)
	}
}

func TestMixerClear(t *testing.T) {
	m := NewMixer()
	m.Trigger(1, &constVoice{v: 0.5, n: 100})
	m.Trigger(1, nil)
	if !m.Active(1) {
		t.Fatalf("nil voice must not clear the channel")
	}
	m.Clear()
	if m.Active(1) {
		t.Fatalf("Clear should silence every channel")
	}
}

func TestInstrumentsFinish(t *testing.T) {
	insts := map[string]Instrument{
		"kick": Kick{}, "snare": Snare{}, "hihat": HiHat{}, "tom": Tom{},
		"clap": Clap{}, "click-high": ClickHigh, "click-low": ClickLow,
	}
	for name, inst := range insts {
		v := inst.NewVoice(SampleRate)
		n := 0
		for {
			s, done := v.Sample()
			if done {
				break
			}
			if s > 1.5 || s < -1.5 {
				t.Fatalf("%s: sample %v out of range", name, s)
			}
			n++
			if n > SampleRate {
				t.Fatalf("%s: voice longer than a second", name)
			}
		}
		if n == 0 {
			t.Fatalf("%s: empty voice", name)
		}
	}
}
