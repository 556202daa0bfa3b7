package engine

import (
	"testing"
	"time"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
)

func TestMeterRealignsAfterLCM(t *testing.T) {
	clk := newClock()
	e := NewMeterEngine(clk, nil, WithLengths(5, 4))
	e.Start()

	if e.CycleLength() != 20 {
		t.Fatalf("CycleLength = %d, want 20", e.CycleLength())
	}
	for tick := 1; tick <= 20; tick++ {
		clk.Advance(e.TickInterval())
		aligned := e.Index(1) == 1 && e.Index(2) == 1
		if tick < 20 && aligned {
			t.Fatalf("tracks realigned early after %d ticks", tick)
		}
		if tick == 19 && aligned {
			t.Fatalf("tracks must not be aligned after 19 ticks")
		}
		if tick == 20 && !aligned {
			t.Fatalf("tracks should realign after 20 ticks, got %d and %d", e.Index(1), e.Index(2))
		}
	}
	if !e.Aligned() {
		t.Fatalf("Aligned() should agree after 20 ticks")
	}
}

func TestMeterFirstTickChecksWithoutAdvancing(t *testing.T) {
	clk := newClock()
	rec := &recorder{}
	e := NewMeterEngine(clk, rec,
		WithPatterns(beat.NewPattern(2), beat.NewPattern(1)))
	e.Start()

	if len(rec.ticks) != 1 || rec.ticks[0].Track != 2 || rec.ticks[0].Index != 1 {
		t.Fatalf("expected only track 2 to hit on the first check, got %+v", rec.ticks)
	}
	if e.Index(1) != 1 || e.Index(2) != 1 {
		t.Fatalf("first check must not advance")
	}

	rec.reset()
	clk.Advance(e.TickInterval())
	if len(rec.ticks) != 1 || rec.ticks[0].Track != 1 || rec.ticks[0].Index != 2 {
		t.Fatalf("expected track 1 to hit at index 2 on the first timer tick, got %+v", rec.ticks)
	}
}

func TestMeterDefaultPatternHits(t *testing.T) {
	clk := newClock()
	rec := &recorder{}
	e := NewMeterEngine(clk, rec)
	e.Start()
	clk.Advance(19 * e.TickInterval())

	// Track 1 (length 5, {1,3,4}) over 20 beats: 4 cycles * 3 hits.
	// Track 2 (length 4, {1}) over 20 beats: 5 hits.
	if rec.count(1) != 12 || rec.count(2) != 5 {
		t.Fatalf("hit counts = %d/%d, want 12/5", rec.count(1), rec.count(2))
	}
	for _, tk := range rec.ticks {
		if !tk.Hit {
			t.Fatalf("misses must not be reported by default: %+v", tk)
		}
	}
}

func TestMeterTrackOneBeforeTrackTwo(t *testing.T) {
	clk := newClock()
	rec := &recorder{}
	e := NewMeterEngine(clk, rec, WithPatterns(beat.NewPattern(1, 2, 3, 4, 5), beat.NewPattern(1, 2, 3, 4)))
	e.Start()
	clk.Advance(3 * e.TickInterval())
	for i := 0; i+1 < len(rec.ticks); i += 2 {
		if rec.ticks[i].Track != 1 || rec.ticks[i+1].Track != 2 {
			t.Fatalf("tick order broken at %d: %+v", i, rec.ticks)
		}
	}
}

func TestMeterTogglePatternIsLive(t *testing.T) {
	clk := newClock()
	rec := &recorder{}
	e := NewMeterEngine(clk, rec, WithPatterns(beat.NewPattern(), beat.NewPattern()))
	e.Start()
	if len(rec.ticks) != 0 {
		t.Fatalf("empty patterns should not hit")
	}

	if !e.TogglePattern(1, 2) {
		t.Fatalf("toggle should report the index as active")
	}
	clk.Advance(e.TickInterval())

	if !e.Playing() {
		t.Fatalf("toggling must not stop playback")
	}
	if len(rec.ticks) != 1 || rec.ticks[0].Track != 1 || rec.ticks[0].Index != 2 {
		t.Fatalf("toggled index should hit on the very next tick, got %+v", rec.ticks)
	}

	e.TogglePattern(1, 3)
	e.TogglePattern(1, 3)
	rec.reset()
	clk.Advance(e.TickInterval())
	if len(rec.ticks) != 0 {
		t.Fatalf("index toggled off should not hit, got %+v", rec.ticks)
	}
}

func TestMeterSetBPMWhilePlayingStops(t *testing.T) {
	clk := newClock()
	e := NewMeterEngine(clk, nil)
	e.Start()
	clk.Advance(e.TickInterval())
	e.SetBPM(200)
	if e.Playing() || clk.Pending() != 0 {
		t.Fatalf("SetBPM while playing should stop and cancel")
	}
	if e.Index(1) != 1 || e.Index(2) != 1 {
		t.Fatalf("stop must rewind indices")
	}
	if e.BPM() != 200 {
		t.Fatalf("BPM = %v", e.BPM())
	}
	if got, want := e.TickInterval(), 300*time.Millisecond; got != want {
		t.Fatalf("TickInterval at 200 bpm = %v, want %v", got, want)
	}
}

func TestMeterClampsConfiguration(t *testing.T) {
	e := NewMeterEngine(newClock(), nil, WithBPM(30), WithLengths(0, 12))
	if e.BPM() != MinBPM {
		t.Fatalf("BPM should clamp to %v, got %v", MinBPM, e.BPM())
	}
	if e.Length(1) != 1 || e.Length(2) != MaxLength {
		t.Fatalf("lengths should clamp, got %d/%d", e.Length(1), e.Length(2))
	}
	e.SetBPM(1000)
	if e.BPM() != MaxBPM {
		t.Fatalf("BPM should clamp to %v, got %v", MaxBPM, e.BPM())
	}
}

func TestMeterSetLengthDoesNotStop(t *testing.T) {
	clk := newClock()
	rec := &recorder{}
	e := NewMeterEngine(clk, rec, WithMisses(true))
	e.Start()
	clk.Advance(3 * e.TickInterval()) // track 1 at index 4

	e.SetLength(1, 2)
	if !e.Playing() {
		t.Fatalf("SetLength must not stop playback")
	}
	if e.Index(1) != 2 {
		t.Fatalf("index should be pulled into range, got %d", e.Index(1))
	}
	rec.reset()
	clk.Advance(e.TickInterval())
	if e.Index(1) != 1 {
		t.Fatalf("expected wrap to 1 on the next tick, got %d", e.Index(1))
	}
	// Pattern index 3 and 4 are now unreachable: harmless, never hit.
	for i := 0; i < 6; i++ {
		clk.Advance(e.TickInterval())
	}
	for _, tk := range rec.ticks {
		if tk.Track == 1 && tk.Hit && tk.Index != 1 {
			t.Fatalf("unreachable pattern index hit: %+v", tk)
		}
	}
}

func TestMeterReportsMissesWhenAsked(t *testing.T) {
	clk := newClock()
	rec := &recorder{}
	e := NewMeterEngine(clk, rec, WithMisses(true))
	e.Start()
	clk.Advance(e.TickInterval())
	// Start: both lines checked; one timer tick: both lines checked again.
	if len(rec.ticks) != 4 {
		t.Fatalf("expected 4 ticks with misses, got %d", len(rec.ticks))
	}
	if rec.ticks[2].Hit || rec.ticks[2].Index != 2 {
		t.Fatalf("track 1 index 2 is not in {1,3,4}: %+v", rec.ticks[2])
	}
}

func TestMeterStopIsIdempotentAndKeepsPatterns(t *testing.T) {
	clk := newClock()
	e := NewMeterEngine(clk, nil)
	e.TogglePattern(2, 3)
	e.Start()
	clk.Advance(2 * e.TickInterval())
	e.Stop()
	e.Stop()
	if e.Playing() || clk.Pending() != 0 {
		t.Fatalf("stop must cancel the shared timer")
	}
	if e.Index(1) != 1 || e.Index(2) != 1 {
		t.Fatalf("indices should rewind on stop")
	}
	if got := e.Pattern(2).String(); got != "{1,3}" {
		t.Fatalf("pattern not preserved across stop: %s", got)
	}
	if got := e.Pattern(1).String(); got != "{1,3,4}" {
		t.Fatalf("default pattern changed: %s", got)
	}
}

func TestMeterSingleSharedTimer(t *testing.T) {
	clk := newClock()
	e := NewMeterEngine(clk, nil)
	e.Start()
	e.Start()
	if clk.Pending() != 1 {
		t.Fatalf("expected one shared timer, got %d", clk.Pending())
	}
	e.Close()
	e.Start()
	if clk.Pending() != 0 || e.Playing() {
		t.Fatalf("closed engine must stay stopped")
	}
}

func TestMeterRestartFromSinkBeginsAtFirstBeat(t *testing.T) {
	clk := newClock()
	var e *MeterEngine
	rec := &recorder{}
	restarted := false
	rec.onTick = func(tk Tick) {
		// restart while track 1 reports the first scheduled beat
		if !restarted && tk.Track == 1 && tk.Index == 2 {
			restarted = true
			e.Start()
		}
	}
	e = NewMeterEngine(clk, rec, WithLengths(5, 4), WithMisses(true))
	e.Start()
	clk.Advance(e.TickInterval())

	if !restarted {
		t.Fatalf("timer never ticked")
	}
	if !e.Playing() || e.Index(1) != 1 || e.Index(2) != 1 {
		t.Fatalf("restart should begin at beat 1: playing=%t index=%d/%d", e.Playing(), e.Index(1), e.Index(2))
	}
	if clk.Pending() != 1 {
		t.Fatalf("pending=%d, want one shared timer", clk.Pending())
	}

	clk.Advance(e.TickInterval())
	if e.Index(1) != 2 || e.Index(2) != 2 {
		t.Fatalf("lines should move together after restart, got %d/%d", e.Index(1), e.Index(2))
	}
}
