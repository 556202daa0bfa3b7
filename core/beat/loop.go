package beat

import (
	"context"
	"time"
)

// DefaultResolution is how often a Loop polls its Clock.
const DefaultResolution = 2 * time.Millisecond

// Loop owns a Clock and runs it on its own goroutine. Timer callbacks and
// functions passed to Do all execute on that goroutine, one at a time.
type Loop struct {
	clock  *Clock
	calls  chan func()
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoop starts polling clock every resolution until ctx is cancelled or
// Close is called. A non-positive resolution uses DefaultResolution.
func NewLoop(ctx context.Context, clock *Clock, resolution time.Duration) *Loop {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{
		clock:  clock,
		calls:  make(chan func()),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go l.run(resolution)
	return l
}

func (l *Loop) run(resolution time.Duration) {
	defer close(l.done)
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.clock.Poll()
		case fn := <-l.calls:
			fn()
		case <-l.ctx.Done():
			return
		}
	}
}

// Scheduler exposes the loop's clock. Only touch it from inside Do or a
// timer callback.
func (l *Loop) Scheduler() Scheduler { return l.clock }

// Do runs fn on the loop goroutine and waits for it to return. It reports
// false if the loop has already stopped. Do must not be called from a timer
// callback or from inside another Do.
func (l *Loop) Do(fn func()) bool {
	ran := make(chan struct{})
	select {
	case l.calls <- func() { fn(); close(ran) }:
	case <-l.ctx.Done():
		return false
	}
	<-ran
	return true
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Close stops the loop and waits for the goroutine to exit.
func (l *Loop) Close() {
	l.cancel()
	<-l.done
}
