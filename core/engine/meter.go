package engine

import (
	"math"
	"time"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	game_log "github.com/ingyamilmolinar/rhythmlab/internal/log"
	"github.com/ingyamilmolinar/rhythmlab/internal/utils"
)

const (
	MinBPM     = 120.0
	MaxBPM     = 240.0
	DefaultBPM = 180.0

	// MaxLength bounds each polymeter line.
	MaxLength = 8
)

var (
	DefaultLengths  = []int{5, 4}
	DefaultPatterns = []beat.Pattern{beat.NewPattern(1, 3, 4), beat.NewPattern(1)}
)

type MeterOption func(*MeterEngine)

func WithBPM(bpm float64) MeterOption {
	return func(e *MeterEngine) { e.bpm = clampBPM(bpm) }
}

// WithLengths sets the beat count of each line; two or more entries.
func WithLengths(ns ...int) MeterOption {
	return func(e *MeterEngine) {
		if len(ns) >= 2 {
			e.lengths = append([]int(nil), ns...)
		}
	}
}

// WithPatterns sets each line's active indices. Missing lines get an empty
// pattern.
func WithPatterns(ps ...beat.Pattern) MeterOption {
	return func(e *MeterEngine) {
		e.patterns = make([]beat.Pattern, len(ps))
		for i, p := range ps {
			e.patterns[i] = p.Clone()
		}
	}
}

// WithMisses makes the engine report beats that are not in the pattern as
// Tick{Hit: false}. Without it only hits are emitted.
func WithMisses(report bool) MeterOption {
	return func(e *MeterEngine) { e.misses = report }
}

func WithMeterLogger(l *game_log.Logger) MeterOption {
	return func(e *MeterEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// MeterEngine plays a polymeter: lines of different lengths advance on one
// shared beat, realigning every CycleLength beats.
type MeterEngine struct {
	sched  beat.Scheduler
	sink   Sink
	logger *game_log.Logger

	bpm      float64
	lengths  []int
	tracks   []*beat.Track
	patterns []beat.Pattern
	misses   bool

	state  State
	run    uint64 // bumped by Start and Stop
	handle beat.Handle
	closed bool
}

func NewMeterEngine(sched beat.Scheduler, sink Sink, opts ...MeterOption) *MeterEngine {
	e := &MeterEngine{
		sched:   sched,
		sink:    orNop(sink),
		logger:  game_log.Nop(),
		bpm:     DefaultBPM,
		lengths: append([]int(nil), DefaultLengths...),
	}
	WithPatterns(DefaultPatterns...)(e)
	for _, opt := range opts {
		opt(e)
	}
	e.tracks = make([]*beat.Track, len(e.lengths))
	for i, n := range e.lengths {
		e.tracks[i] = beat.NewBoundedTrack(n, MaxLength)
	}
	for len(e.patterns) < len(e.tracks) {
		e.patterns = append(e.patterns, beat.NewPattern())
	}
	e.patterns = e.patterns[:len(e.tracks)]
	return e
}

func (e *MeterEngine) State() State  { return e.state }
func (e *MeterEngine) Playing() bool { return e.state == Playing }
func (e *MeterEngine) BPM() float64  { return e.bpm }
func (e *MeterEngine) Tracks() int   { return len(e.tracks) }

// TickInterval is the shared beat period, 60/bpm seconds.
func (e *MeterEngine) TickInterval() time.Duration {
	return time.Duration(float64(time.Minute) / e.bpm)
}

func (e *MeterEngine) Index(id TrackID) int {
	if t := e.track(id); t != nil {
		return t.Index()
	}
	return 0
}

func (e *MeterEngine) Length(id TrackID) int {
	if t := e.track(id); t != nil {
		return t.BeatCount()
	}
	return 0
}

// Pattern returns a copy of a line's active indices.
func (e *MeterEngine) Pattern(id TrackID) beat.Pattern {
	if e.track(id) == nil {
		return beat.NewPattern()
	}
	return e.patterns[id-1].Clone()
}

// CycleLength is the number of shared beats after which every line is back
// on its first beat.
func (e *MeterEngine) CycleLength() int {
	ns := make([]int, len(e.tracks))
	for i, t := range e.tracks {
		ns[i] = t.BeatCount()
	}
	return utils.LCM(ns...)
}

// Aligned reports whether every line is on its first beat.
func (e *MeterEngine) Aligned() bool {
	for _, t := range e.tracks {
		if t.Index() != 1 {
			return false
		}
	}
	return true
}

// SetBPM changes the tempo. Editing tempo while playing stops playback.
func (e *MeterEngine) SetBPM(bpm float64) {
	if e.state == Playing {
		e.logger.Infof("[METER] bpm changed while playing; stopping")
		e.Stop()
	}
	e.bpm = clampBPM(bpm)
}

// SetLength resizes a line without interrupting playback.
func (e *MeterEngine) SetLength(id TrackID, n int) {
	t := e.track(id)
	if t == nil {
		e.logger.Warnf("[METER] SetLength: no track %d", id)
		return
	}
	t.SetBeatCount(n)
}

// TogglePattern flips one index of a line's pattern and returns its new
// membership. It takes effect on the next beat, playing or not.
func (e *MeterEngine) TogglePattern(id TrackID, index int) bool {
	if e.track(id) == nil {
		e.logger.Warnf("[METER] TogglePattern: no track %d", id)
		return false
	}
	on := e.patterns[id-1].Toggle(index)
	e.logger.Debugf("[METER] track %d pattern now %s", id, e.patterns[id-1])
	return on
}

func (e *MeterEngine) SetPattern(id TrackID, p beat.Pattern) {
	if e.track(id) == nil {
		return
	}
	e.patterns[id-1] = p.Clone()
}

// Start checks every line at its current index, then runs one shared timer.
// A running engine is restarted from the first beat.
func (e *MeterEngine) Start() {
	if e.closed {
		e.logger.Warnf("[METER] Start on closed engine ignored")
		return
	}
	if e.state == Playing {
		e.Stop()
	}
	e.state = Playing
	e.run++
	run := e.run
	e.logger.Infof("[METER] start: bpm=%.0f lengths=%v cycle=%d", e.bpm, e.lengthsNow(), e.CycleLength())

	for i := range e.tracks {
		if e.run != run {
			return
		}
		e.check(TrackID(i + 1))
	}
	if e.run != run {
		return
	}
	e.handle = e.sched.Every(e.TickInterval(), e.step)
}

// Stop cancels the timer and rewinds every line; patterns are kept.
func (e *MeterEngine) Stop() {
	e.sched.Cancel(e.handle)
	e.handle = 0
	if e.state != Playing {
		return
	}
	e.state = Stopped
	e.run++
	for _, t := range e.tracks {
		t.Reset()
	}
	e.logger.Infof("[METER] stop")
}

// Close stops the engine for good; later Starts are ignored.
func (e *MeterEngine) Close() {
	e.Stop()
	e.closed = true
}

func (e *MeterEngine) step() {
	if e.state != Playing {
		return
	}
	run := e.run
	for i, t := range e.tracks {
		if e.run != run {
			return
		}
		t.Advance()
		e.check(TrackID(i + 1))
	}
}

func (e *MeterEngine) check(id TrackID) {
	t := e.tracks[id-1]
	hit := t.IsHit(e.patterns[id-1])
	if hit || e.misses {
		e.sink.OnTick(Tick{Track: id, Index: t.Index(), Hit: hit})
	}
}

func (e *MeterEngine) lengthsNow() []int {
	out := make([]int, len(e.tracks))
	for i, t := range e.tracks {
		out[i] = t.BeatCount()
	}
	return out
}

func (e *MeterEngine) track(id TrackID) *beat.Track {
	if id < 1 || int(id) > len(e.tracks) {
		return nil
	}
	return e.tracks[id-1]
}

func clampBPM(bpm float64) float64 {
	if math.IsNaN(bpm) {
		return DefaultBPM
	}
	return math.Max(MinBPM, math.Min(MaxBPM, bpm))
}
