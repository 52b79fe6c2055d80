package frame

import "sync"

// ID identifies a frame request. The zero ID never denotes a request.
type ID uint64

// Requester is the scheduling primitive: request a callback with the next
// frame, or cancel a pending request. Cancelling an unknown or already
// executed request is a no-op.
type Requester interface {
	Request(callback func()) ID
	Cancel(id ID)
}

type request struct {
	id       ID
	callback func()
}

// Queue is a manually driven frame queue. Its zero value is ready to use.
// A Queue is safe for concurrent use, but frames must be flushed from one
// goroutine at a time.
type Queue struct {
	mx      sync.Mutex
	lastID  ID
	pending []request // requests for the next frame
	running []request // remaining requests of the executing frame
	frames  uint64
}

var _ Requester = &Queue{}

// Request schedules callback to run with the next frame.
func (q *Queue) Request(callback func()) ID {
	q.mx.Lock()
	defer q.mx.Unlock()
	q.lastID++
	q.pending = append(q.pending, request{id: q.lastID, callback: callback})
	return q.lastID
}

// Cancel removes a request. This works for requests of the executing frame
// as well, as long as their callback has not started yet.
func (q *Queue) Cancel(id ID) {
	if id == 0 {
		return
	}
	q.mx.Lock()
	defer q.mx.Unlock()
	q.pending = remove(q.pending, id)
	q.running = remove(q.running, id)
}

func remove(requests []request, id ID) []request {
	for i, r := range requests {
		if r.id == id {
			return append(requests[:i], requests[i+1:]...)
		}
	}
	return requests
}

// Len returns the number of requests not yet executed.
func (q *Queue) Len() int {
	q.mx.Lock()
	defer q.mx.Unlock()
	return len(q.pending) + len(q.running)
}

// Frames returns the number of frames flushed so far.
func (q *Queue) Frames() uint64 {
	q.mx.Lock()
	defer q.mx.Unlock()
	return q.frames
}

// Flush executes one frame: every callback pending at the time of the call
// runs, in request order. Requests issued by these callbacks are left for
// the next frame. Flush returns the number of callbacks executed.
func (q *Queue) Flush() int {
	q.mx.Lock()
	q.running = append(q.running, q.pending...)
	q.pending = nil
	q.frames++
	q.mx.Unlock()
	n := 0
	for {
		q.mx.Lock()
		if len(q.running) == 0 {
			q.mx.Unlock()
			break
		}
		r := q.running[0]
		q.running = q.running[1:]
		q.mx.Unlock()
		r.callback()
		n++
	}
	if n > 0 {
		tracer().Debugf("frame #%d executed %d callbacks", q.Frames(), n)
	}
	return n
}

// Drain flushes frames until no requests are pending or max frames have been
// executed (max <= 0 means no limit). It returns the number of frames flushed.
func (q *Queue) Drain(max int) int {
	frames := 0
	for q.Len() > 0 && (max <= 0 || frames < max) {
		q.Flush()
		frames++
	}
	return frames
}
