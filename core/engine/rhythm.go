package engine

import (
	"strconv"
	"time"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
	"github.com/ingyamilmolinar/rhythmlab/core/model"
	game_log "github.com/ingyamilmolinar/rhythmlab/internal/log"
	"github.com/ingyamilmolinar/rhythmlab/internal/utils"
)

const (
	// CapacityFactor and the speed dial give the cycle length in seconds:
	// CapacityFactor - speed + 1, so speed 5 is the fastest.
	CapacityFactor = 5
	MinSpeed       = 1
	MaxSpeed       = 5
	DefaultSpeed   = 3

	// RotationSteps is how many rotation ticks make up one cycle.
	RotationSteps = 12
	// RotationStep is the angle in degrees added per rotation tick.
	RotationStep = 30.0
)

var DefaultBeats = []string{"4", "3"}

type RhythmOption func(*RhythmEngine)

// WithBeats sets the initial beat-count text of each track. Two or more
// entries; fewer fall back to the defaults.
func WithBeats(texts ...string) RhythmOption {
	return func(e *RhythmEngine) {
		if len(texts) >= 2 {
			e.texts = append([]string(nil), texts...)
		}
	}
}

func WithSpeed(speed int) RhythmOption {
	return func(e *RhythmEngine) { e.speed = utils.Clamp(speed, MinSpeed, MaxSpeed) }
}

func WithRhythmLogger(l *game_log.Logger) RhythmOption {
	return func(e *RhythmEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// RhythmEngine plays a polyrhythm: every track shares one cycle duration and
// divides it into its own number of beats, so first beats always coincide.
type RhythmEngine struct {
	sched  beat.Scheduler
	sink   Sink
	logger *game_log.Logger

	speed  int
	texts  []string
	tracks []*beat.Track

	angle    float64
	state    State
	run      uint64 // bumped by Start and Stop
	handles  []beat.Handle
	mnemonic string
	closed   bool
}

func NewRhythmEngine(sched beat.Scheduler, sink Sink, opts ...RhythmOption) *RhythmEngine {
	e := &RhythmEngine{
		sched:  sched,
		sink:   orNop(sink),
		logger: game_log.Nop(),
		speed:  DefaultSpeed,
		texts:  append([]string(nil), DefaultBeats...),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.tracks = make([]*beat.Track, len(e.texts))
	for i, txt := range e.texts {
		e.tracks[i] = beat.NewTrack(1)
		e.tracks[i].SetBeatCountText(txt)
	}
	e.mnemonic = e.lookupMnemonic()
	return e
}

func (e *RhythmEngine) State() State   { return e.state }
func (e *RhythmEngine) Playing() bool  { return e.state == Playing }
func (e *RhythmEngine) Angle() float64 { return e.angle }
func (e *RhythmEngine) Speed() int     { return e.speed }
func (e *RhythmEngine) Tracks() int    { return len(e.tracks) }

// Mnemonic is the phrase computed at construction and at the last Start.
func (e *RhythmEngine) Mnemonic() string { return e.mnemonic }

func (e *RhythmEngine) Index(id TrackID) int {
	if t := e.track(id); t != nil {
		return t.Index()
	}
	return 0
}

func (e *RhythmEngine) BeatCount(id TrackID) int {
	if t := e.track(id); t != nil {
		return t.BeatCount()
	}
	return 0
}

// BeatsText is the beat count as the user entered it.
func (e *RhythmEngine) BeatsText(id TrackID) string {
	if e.track(id) == nil {
		return ""
	}
	return e.texts[id-1]
}

// TotalDuration is the shared cycle length of every track.
func (e *RhythmEngine) TotalDuration() time.Duration {
	return time.Duration(CapacityFactor-e.speed+1) * time.Second
}

// Interval is the beat period of a track: TotalDuration / beat count.
func (e *RhythmEngine) Interval(id TrackID) time.Duration {
	t := e.track(id)
	if t == nil {
		return 0
	}
	return time.Duration(float64(e.TotalDuration()) / float64(t.BeatCount()))
}

func (e *RhythmEngine) RotationInterval() time.Duration {
	return e.TotalDuration() / RotationSteps
}

// SetSpeed changes the speed dial. A running engine is stopped so no timer
// keeps a stale period.
func (e *RhythmEngine) SetSpeed(speed int) {
	e.stopForReconfigure("speed")
	e.speed = utils.Clamp(speed, MinSpeed, MaxSpeed)
}

// SetBeats changes a track's beat count from user text. A running engine is
// stopped.
func (e *RhythmEngine) SetBeats(id TrackID, text string) {
	t := e.track(id)
	if t == nil {
		e.logger.Warnf("[RHYTHM] SetBeats: no track %d", id)
		return
	}
	e.stopForReconfigure("beats")
	e.texts[id-1] = text
	t.SetBeatCountText(text)
}

// Start begins playback, replacing any timers from a previous Start. Both
// tracks tick immediately at index 1, then each track's timer takes over.
func (e *RhythmEngine) Start() {
	if e.closed {
		e.logger.Warnf("[RHYTHM] Start on closed engine ignored")
		return
	}
	if e.state == Playing {
		e.Stop()
	}
	e.capTexts()
	e.mnemonic = e.lookupMnemonic()
	e.state = Playing
	e.run++
	run := e.run
	e.logger.Infof("[RHYTHM] start: speed=%d beats=%v cycle=%v", e.speed, e.texts, e.TotalDuration())

	e.rotate()
	for i, t := range e.tracks {
		if e.run != run {
			return
		}
		e.sink.OnTick(Tick{Track: TrackID(i + 1), Index: t.Index(), Hit: true})
	}
	if e.run != run {
		return
	}

	e.handles = append(e.handles, e.sched.Every(e.RotationInterval(), e.rotate))
	for i := range e.tracks {
		id := TrackID(i + 1)
		e.handles = append(e.handles, e.sched.Every(e.Interval(id), func() { e.tick(id) }))
	}
}

// Stop cancels every timer and returns to the initial state. Calling it
// when stopped does nothing.
func (e *RhythmEngine) Stop() {
	e.cancelAll()
	if e.state != Playing {
		return
	}
	e.state = Stopped
	e.run++
	for _, t := range e.tracks {
		t.Reset()
	}
	e.angle = 0
	e.logger.Infof("[RHYTHM] stop")
	e.sink.OnRotate(0)
}

// Close stops the engine for good; later Starts are ignored.
func (e *RhythmEngine) Close() {
	e.Stop()
	e.closed = true
}

func (e *RhythmEngine) tick(id TrackID) {
	if e.state != Playing {
		return
	}
	t := e.tracks[id-1]
	run := e.run
	e.sink.OnTick(Tick{Track: id, Index: t.Index(), Hit: true})
	// a sink that stopped or restarted the engine owns the tracks now
	if e.run != run {
		return
	}
	t.Advance()
	e.logger.Debugf("[RHYTHM] track %d -> %d/%d", id, t.Index(), t.BeatCount())
}

func (e *RhythmEngine) rotate() {
	if e.state != Playing {
		return
	}
	e.angle += RotationStep
	e.sink.OnRotate(e.angle)
}

func (e *RhythmEngine) cancelAll() {
	for _, h := range e.handles {
		e.sched.Cancel(h)
	}
	e.handles = e.handles[:0]
}

func (e *RhythmEngine) stopForReconfigure(what string) {
	if e.state == Playing {
		e.logger.Infof("[RHYTHM] %s changed while playing; stopping", what)
		e.Stop()
	}
}

// capTexts rewrites beat text above MaxBeats to the cap so the display
// agrees with the clamped count.
func (e *RhythmEngine) capTexts() {
	for i, t := range e.tracks {
		if t.BeatCount() == beat.MaxBeats && e.texts[i] != strconv.Itoa(beat.MaxBeats) {
			e.texts[i] = strconv.Itoa(beat.MaxBeats)
		}
	}
}

func (e *RhythmEngine) lookupMnemonic() string {
	if len(e.texts) != 2 {
		return model.NoPhrase
	}
	return model.Mnemonic(e.texts[0], e.texts[1])
}

func (e *RhythmEngine) track(id TrackID) *beat.Track {
	if id < 1 || int(id) > len(e.tracks) {
		return nil
	}
	return e.tracks[id-1]
}
