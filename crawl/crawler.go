package crawl

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/npillmayer/fontcrawl/entry"
	"github.com/npillmayer/fontcrawl/frame"
	"github.com/npillmayer/fontcrawl/variant"
)

// ErrBusy is returned when a crawl is started while an asynchronous crawl is
// pending.
var ErrBusy = errors.New("crawl: asynchronous crawl pending")

// ErrNoFrames is returned by CrawlAsync for crawlers without a frame requester.
var ErrNoFrames = errors.New("crawl: no frame requester for asynchronous crawl")

// Config configures a Crawler. It applies to both crawl modes.
type Config[E comparable] struct {
	entry.Options[E]
	ExcludeFamilies []string         // families dropped at aggregation time
	Budget          Budget           // slice budget for CrawlAsync
	Clock           func() time.Time // clock for time budgets, defaults to time.Now
}

// Crawler computes font-usage maps for the sub-tree under a root element.
// A Crawler may be used for any number of crawls, but at most one
// asynchronous crawl may be pending at any time.
type Crawler[E comparable] struct {
	host     Host[E]
	frames   frame.Requester
	root     E
	opts     entry.Options[E]
	excluded map[string]struct{}
	budget   Budget
	now      func() time.Time
	mx       sync.Mutex
	pending  *session[E] // nil if idle
}

// session is the state of an asynchronous crawl. It exists only while the
// crawl is pending.
type session[E comparable] struct {
	collected  bool
	queue      []entry.Entry[E]
	next       int
	usage      *variant.Usage
	sliceStart time.Time
	handle     frame.ID
	onDone     func(*variant.Usage, error)
	slices     int
}

// New creates a crawler for the sub-tree under root. frames may be nil for
// crawlers used for synchronous crawls only.
func New[E comparable](host Host[E], frames frame.Requester, root E, conf Config[E]) *Crawler[E] {
	c := &Crawler[E]{
		host:     host,
		frames:   frames,
		root:     root,
		opts:     conf.Options,
		excluded: make(map[string]struct{}, len(conf.ExcludeFamilies)),
		budget:   conf.Budget.normalized(),
		now:      conf.Clock,
	}
	for _, f := range conf.ExcludeFamilies {
		c.excluded[familyKey(f)] = struct{}{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

var unquote = strings.NewReplacer(`"`, "", `'`, "")

// familyKey is the comparison key for family exclusion: trimmed, unquoted
// and case-insensitive.
func familyKey(family string) string {
	return strings.ToLower(strings.TrimSpace(unquote.Replace(family)))
}

// Budget returns the effective slice budget.
func (c *Crawler[E]) Budget() Budget {
	return c.budget
}

// IsPending is true while an asynchronous crawl is in flight.
func (c *Crawler[E]) IsPending() bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.pending != nil
}

// Crawl collects and samples all entries synchronously and returns the
// font-usage map. It fails with ErrBusy if an asynchronous crawl is pending.
// Host errors are returned unmodified, together with a nil map.
func (c *Crawler[E]) Crawl() (*variant.Usage, error) {
	if c.IsPending() {
		return nil, ErrBusy
	}
	entries, err := entry.Collect[E](c.host, c.root, c.opts)
	if err != nil {
		return nil, err
	}
	acc := variant.NewUsage()
	for _, e := range entries {
		if acc, err = c.fold(acc, e); err != nil {
			return nil, err
		}
	}
	tracer().Infof("crawl sampled %d entries, found %d font families", len(entries), acc.Len())
	return acc, nil
}

// fold samples a single entry and records its face into the accumulator.
func (c *Crawler[E]) fold(acc *variant.Usage, e entry.Entry[E]) (*variant.Usage, error) {
	face, err := c.host.ComputedFont(e.Element, e.Pseudo)
	if err != nil {
		return acc, err
	}
	if _, skip := c.excluded[familyKey(face.Family)]; skip {
		return acc, nil
	}
	return acc.RecordFace(face), nil
}

// CrawlAsync starts an asynchronous crawl and returns immediately. The
// entry pipeline runs with the first frame, sampling continues in slices
// limited by the crawler's budget, one slice per frame.
//
// After all entries are sampled, the crawler turns idle and onDone is
// dispatched with the next frame; the map handed to onDone will not be
// mutated any further. A host error ends the crawl as well: the partial map
// is discarded and onDone receives the error unmodified.
//
// CrawlAsync fails with ErrBusy if a crawl is already pending.
func (c *Crawler[E]) CrawlAsync(onDone func(*variant.Usage, error)) error {
	if c.frames == nil {
		return ErrNoFrames
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.pending != nil {
		return ErrBusy
	}
	s := &session[E]{onDone: onDone, usage: variant.NewUsage()}
	c.pending = s
	s.handle = c.frames.Request(func() { c.slice(s) })
	tracer().Debugf("async crawl started with %v", c.budget)
	return nil
}

// Clear cancels a pending asynchronous crawl. The crawler is idle afterwards
// and the crawl's completion callback will never be called. Clear is a no-op
// for idle crawlers.
//
// Clear may be called from host methods and option callbacks of a running
// slice. The slice then stops after the entry being sampled.
func (c *Crawler[E]) Clear() {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.pending == nil {
		return
	}
	c.frames.Cancel(c.pending.handle)
	c.pending = nil
	tracer().Debugf("async crawl cancelled")
}

// current is true if s is the pending session.
func (c *Crawler[E]) current(s *session[E]) bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.pending == s
}

// slice is the frame callback of an asynchronous crawl. Session fields are
// touched by slices only, which never overlap. The crawler lock is held for
// state transitions only, as host methods and option callbacks may call
// back into the crawler.
func (c *Crawler[E]) slice(s *session[E]) {
	if !c.current(s) { // cancelled, possibly followed by a new crawl
		return
	}
	s.slices++
	s.sliceStart = c.now()
	if !s.collected {
		entries, err := entry.Collect[E](c.host, c.root, c.opts)
		if err != nil {
			c.finish(s, nil, err)
			return
		}
		s.queue, s.collected = entries, true
		tracer().Debugf("async crawl collected %d entries", len(entries))
	}
	processed := 0
	for s.next < len(s.queue) {
		if !c.current(s) {
			tracer().Debugf("async crawl slice #%d stops after %d entries", s.slices, processed)
			return
		}
		acc, err := c.fold(s.usage, s.queue[s.next])
		if err != nil {
			c.finish(s, nil, err)
			return
		}
		s.usage = acc
		s.next++
		processed++
		if s.next < len(s.queue) && c.budget.exhausted(processed, c.now().Sub(s.sliceStart)) {
			c.yield(s, processed)
			return
		}
	}
	c.finish(s, s.usage, nil)
}

// yield schedules the next slice of s, unless s has been cancelled.
func (c *Crawler[E]) yield(s *session[E], processed int) {
	c.mx.Lock()
	defer c.mx.Unlock()
	if c.pending != s {
		return
	}
	tracer().Debugf("async crawl slice #%d yields after %d entries", s.slices, processed)
	s.handle = c.frames.Request(func() { c.slice(s) })
}

// finish turns the crawler idle and dispatches the completion callback
// through the frame requester. Cancelled sessions finish silently.
func (c *Crawler[E]) finish(s *session[E], usage *variant.Usage, err error) {
	c.mx.Lock()
	if c.pending != s {
		c.mx.Unlock()
		return
	}
	c.pending = nil
	c.mx.Unlock()
	if err != nil {
		tracer().Errorf("async crawl failed: %v", err)
	} else {
		tracer().Infof("async crawl sampled %d entries in %d slices, found %d font families",
			len(s.queue), s.slices, usage.Len())
	}
	if s.onDone == nil {
		return
	}
	onDone := s.onDone
	c.frames.Request(func() { onDone(usage, err) })
}
