package frame

import (
	"context"
	"sync"
	"time"
)

// DefaultRate is the frame rate of a Loop if none is given.
const DefaultRate = 60

// Loop is a frame loop flushing a Queue on a ticker. All callbacks are
// executed on the loop's goroutine.
type Loop struct {
	Queue
	interval time.Duration
	mx       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
}

var _ Requester = &Loop{}

// NewLoop creates a frame loop running at fps frames per second.
// fps <= 0 selects DefaultRate.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultRate
	}
	return &Loop{interval: time.Second / time.Duration(fps)}
}

// Interval returns the duration of one frame.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Start starts the loop's goroutine. The loop runs until ctx is done or Stop
// is called. Starting a running loop is a no-op.
func (l *Loop) Start(ctx context.Context) {
	l.mx.Lock()
	defer l.mx.Unlock()
	if l.done != nil {
		return
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
	tracer().Debugf("frame loop started, interval = %v", l.interval)
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Flush()
		}
	}
}

// Stop stops the loop and waits for the executing frame to finish. Pending
// requests stay in the queue. Stop must not be called from a frame callback.
func (l *Loop) Stop() {
	l.mx.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mx.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	tracer().Debugf("frame loop stopped")
}
