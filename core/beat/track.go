package beat

import (
	"math"
	"strconv"
	"strings"
)

// MaxBeats bounds every track. Larger requests are clamped silently.
const MaxBeats = 40

// Track is a single periodic beat counter. Index is 1-based and always
// within [1, BeatCount].
type Track struct {
	count int
	index int
	max   int
}

// NewTrack returns a track with count beats, clamped to [1, MaxBeats].
func NewTrack(count int) *Track {
	return NewBoundedTrack(count, MaxBeats)
}

// NewBoundedTrack is NewTrack with a tighter upper bound. max is itself
// capped at MaxBeats.
func NewBoundedTrack(count, max int) *Track {
	if max < 1 || max > MaxBeats {
		max = MaxBeats
	}
	t := &Track{index: 1, max: max}
	t.SetBeatCount(count)
	return t
}

func (t *Track) BeatCount() int { return t.count }
func (t *Track) Index() int     { return t.index }
func (t *Track) Max() int       { return t.max }

// SetBeatCount clamps n to [1, Max]. If the track shrinks below its current
// index the index moves to the new last beat, so the next Advance wraps to 1.
func (t *Track) SetBeatCount(n int) {
	if n < 1 {
		n = 1
	}
	if n > t.max {
		n = t.max
	}
	t.count = n
	if t.index > n {
		t.index = n
	}
}

// SetBeatCountText parses user text with ParseBeatCount semantics.
func (t *Track) SetBeatCountText(s string) {
	t.SetBeatCount(parseCount(s))
}

// Advance moves to the next beat, wrapping to 1 after BeatCount.
func (t *Track) Advance() {
	if t.index < t.count {
		t.index++
		return
	}
	t.index = 1
}

// IsHit reports whether the current index is active in p.
func (t *Track) IsHit(p Pattern) bool { return p.Contains(t.index) }

func (t *Track) Reset() { t.index = 1 }

// ParseBeatCount converts text input to a beat count in [1, MaxBeats].
// Non-numeric or fractional input yields 1.
func ParseBeatCount(s string) int {
	n := parseCount(s)
	if n < 1 {
		return 1
	}
	if n > MaxBeats {
		return MaxBeats
	}
	return n
}

func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 1
	}
	if f > MaxBeats {
		return MaxBeats
	}
	if f < 1 {
		return 1
	}
	return int(f)
}
