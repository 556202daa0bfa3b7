package engine

// TrackID is the 1-based number of a beat track within an engine.
type TrackID int

// Tick is emitted when a beat position becomes current on a track.
type Tick struct {
	Track TrackID
	Index int
	Hit   bool
}

// Sink consumes engine output. Implementations must not block; they run on
// the scheduler's control loop.
type Sink interface {
	OnTick(Tick)
	OnRotate(angle float64)
}

// SinkFuncs adapts plain functions to Sink. Nil fields are skipped.
type SinkFuncs struct {
	Tick   func(Tick)
	Rotate func(angle float64)
}

func (s SinkFuncs) OnTick(t Tick) {
	if s.Tick != nil {
		s.Tick(t)
	}
}

func (s SinkFuncs) OnRotate(a float64) {
	if s.Rotate != nil {
		s.Rotate(a)
	}
}

// Fanout forwards every event to each sink in order.
type Fanout []Sink

func (f Fanout) OnTick(t Tick) {
	for _, s := range f {
		s.OnTick(t)
	}
}

func (f Fanout) OnRotate(a float64) {
	for _, s := range f {
		s.OnRotate(a)
	}
}

type EventKind int

const (
	EventTick EventKind = iota
	EventRotate
)

// Event is the channel form of a sink callback.
type Event struct {
	Kind  EventKind
	Tick  Tick
	Angle float64
}

// ChanSink publishes events on C without blocking; events are dropped when
// the buffer is full.
type ChanSink struct {
	C chan Event
}

func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{C: make(chan Event, buffer)}
}

func (c *ChanSink) OnTick(t Tick) {
	select {
	case c.C <- Event{Kind: EventTick, Tick: t}:
	default:
	}
}

func (c *ChanSink) OnRotate(a float64) {
	select {
	case c.C <- Event{Kind: EventRotate, Angle: a}:
	default:
	}
}

// State of an engine.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "Playing"
	}
	return "Stopped"
}

func orNop(s Sink) Sink {
	if s == nil {
		return SinkFuncs{}
	}
	return s
}
