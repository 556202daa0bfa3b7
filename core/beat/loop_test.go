package beat

import (
	"context"
	"testing"
	"time"
)

func TestLoopRunsCallbacksAndCommands(t *testing.T) {
	l := NewLoop(context.Background(), NewClock(), time.Millisecond)
	defer l.Close()

	fired := make(chan struct{}, 1)
	ok := l.Do(func() {
		l.Scheduler().Every(5*time.Millisecond, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	})
	if !ok {
		t.Fatalf("Do on a running loop should succeed")
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("timer registered through Do never fired")
	}
}

func TestLoopDoAfterCloseReportsFalse(t *testing.T) {
	l := NewLoop(context.Background(), NewClock(), 0)
	l.Close()
	if l.Do(func() {}) {
		t.Fatalf("Do after Close should report false")
	}
	select {
	case <-l.Done():
	default:
		t.Fatalf("Done should be closed after Close")
	}
}
