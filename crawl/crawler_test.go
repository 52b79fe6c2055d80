package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/fontcrawl/crawl"
	"github.com/npillmayer/fontcrawl/dom/styledom"
	"github.com/npillmayer/fontcrawl/dom/styledtree"
	"github.com/npillmayer/fontcrawl/entry"
	"github.com/npillmayer/fontcrawl/frame"
	"github.com/npillmayer/fontcrawl/variant"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Flat test host --------------------------------------------------------

// flatHost has elements 1…n below root 0. Every sample advances the clock
// by 5ms.
type flatHost struct {
	n        int
	faces    map[int]variant.Face
	now      time.Time
	samples  int
	failAt   int // element failing to sample, if > 0
	failWith error
	queryErr error
	onSample func(el int) // called before an element is sampled
}

func newFlatHost(n int) *flatHost {
	return &flatHost{n: n, faces: map[int]variant.Face{}, now: time.Unix(0, 0)}
}

func (h *flatHost) clock() time.Time { return h.now }

func (h *flatHost) QueryAll(root int, selector string) ([]int, error) {
	if h.queryErr != nil {
		return nil, h.queryErr
	}
	els := make([]int, h.n)
	for i := range els {
		els[i] = i + 1
	}
	return els, nil
}

func (h *flatHost) Matches(el int, selector string) (bool, error) {
	return selector == "*", nil
}

func (h *flatHost) ChildTexts(el int) ([]string, error) {
	return []string{"x"}, nil
}

func (h *flatHost) TextContent(el int) (string, error) {
	return "x", nil
}

func (h *flatHost) ComputedFont(el int, pseudo string) (variant.Face, error) {
	if h.onSample != nil {
		h.onSample(el)
	}
	h.now = h.now.Add(5 * time.Millisecond)
	h.samples++
	if el == h.failAt {
		return variant.Face{}, h.failWith
	}
	if f, ok := h.faces[el]; ok {
		return f, nil
	}
	return variant.Face{Family: "Arial", Weight: fmt.Sprintf("%d", 100*(1+el%9)), Style: "normal"}, nil
}

var _ crawl.Host[int] = &flatHost{}

type result struct {
	calls int
	usage *variant.Usage
	err   error
}

func (r *result) onDone(u *variant.Usage, err error) {
	r.calls++
	r.usage, r.err = u, err
}

// --- Tests -----------------------------------------------------------------

func TestSyncAndAsyncAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	doc, err := styledom.Parse(strings.NewReader(`<html><head><style>
	body { font-family: Georgia }
	h1 { font-family: "Playfair Display" }
	.note::before { content: "!"; font-weight: 700 }
	</style></head><body>
	<h1>Title</h1>
	<p class="note">Some <em>emphasized</em> and <b>bold</b> text.</p>
	<p><i>italic <b>bold italic</b></i></p>
	</body></html>`))
	require.NoError(t, err)
	conf := crawl.Config[*styledtree.StyNode]{}
	conf.Pseudo = entry.PseudoString[*styledtree.StyNode]("before")
	conf.Budget = crawl.CountBudget(2)
	var q frame.Queue
	c := crawl.New[*styledtree.StyNode](doc, &q, doc.Body(), conf)
	usage, err := c.Crawl()
	require.NoError(t, err)
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	frames := q.Drain(100)
	assert.Greater(t, frames, 2)
	require.Equal(t, 1, r.calls)
	require.NoError(t, r.err)
	assert.Equal(t, usage.Map(), r.usage.Map())
	assert.Equal(t, usage.Families(), r.usage.Families())
	assert.Equal(t, map[string][]string{
		"Georgia":            {"400", "400i", "700", "700i"},
		`"Playfair Display"`: {"700"},
	}, usage.Map())
}

func TestExamples(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	doc, err := styledom.Parse(strings.NewReader(`<div id="one">
	<span style="font-family: Arial; font-weight: 700; font-style: italic">hi</span>
	</div><div id="two">
	<span style="font-family: Georgia; font-weight: 400; font-style: italic">a</span>
	<span style="font-family: Georgia; font-weight: 400; font-style: normal">b</span>
	</div>`))
	require.NoError(t, err)
	one, err := doc.QueryFirst(doc.Root(), "#one")
	require.NoError(t, err)
	two, err := doc.QueryFirst(doc.Root(), "#two")
	require.NoError(t, err)
	//
	usage, err := crawl.New[*styledtree.StyNode](doc, nil, one, crawl.Config[*styledtree.StyNode]{}).Crawl()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Arial": {"700i"}}, usage.Map())
	usage, err = crawl.New[*styledtree.StyNode](doc, nil, two, crawl.Config[*styledtree.StyNode]{}).Crawl()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Georgia": {"400", "400i"}}, usage.Map())
}

func TestBusyWhilePending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	var q frame.Queue
	c := crawl.New[int](newFlatHost(3), &q, 0, crawl.Config[int]{})
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	assert.True(t, c.IsPending())
	assert.ErrorIs(t, c.CrawlAsync(r.onDone), crawl.ErrBusy)
	_, err := c.Crawl()
	assert.ErrorIs(t, err, crawl.ErrBusy)
	assert.True(t, c.IsPending(), "a rejected crawl must not change the state")
	q.Drain(10)
	assert.False(t, c.IsPending())
	assert.Equal(t, 1, r.calls)
}

func TestClearCancelsCrawl(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(10)
	var q frame.Queue
	c := crawl.New[int](host, &q, 0, crawl.Config[int]{Budget: crawl.CountBudget(3), Clock: host.clock})
	first := &result{}
	require.NoError(t, c.CrawlAsync(first.onDone))
	q.Flush()
	assert.Equal(t, 3, host.samples)
	c.Clear()
	c.Clear() // idempotent
	assert.False(t, c.IsPending())
	q.Drain(10)
	assert.Equal(t, 3, host.samples, "no slice may run after Clear")
	assert.Equal(t, 0, first.calls)
	//
	second := &result{}
	require.NoError(t, c.CrawlAsync(second.onDone))
	q.Drain(10)
	assert.Equal(t, 0, first.calls)
	require.Equal(t, 1, second.calls)
	assert.NoError(t, second.err)
	assert.Len(t, second.usage.Variants("Arial"), 9)
}

func TestClearBeforeFirstFrame(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(2)
	var q frame.Queue
	c := crawl.New[int](host, &q, 0, crawl.Config[int]{})
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	c.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain(10))
	assert.Equal(t, 0, host.samples)
	assert.Equal(t, 0, r.calls)
}

func TestTimeBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(10)
	var q frame.Queue
	c := crawl.New[int](host, &q, 0, crawl.Config[int]{
		Budget: crawl.TimeBudget(16 * time.Millisecond),
		Clock:  host.clock,
	})
	assert.False(t, c.Budget().IsCountBased())
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	var perFrame []int
	for i := 0; i < 3; i++ {
		before := host.samples
		q.Flush()
		perFrame = append(perFrame, host.samples-before)
	}
	assert.Equal(t, []int{4, 4, 2}, perFrame)
	assert.False(t, c.IsPending())
	assert.Equal(t, 0, r.calls, "completion is dispatched with the next frame")
	q.Flush()
	assert.Equal(t, 1, r.calls)
}

func TestCountBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(2500)
	var q frame.Queue
	c := crawl.New[int](host, &q, 0, crawl.Config[int]{Budget: crawl.CountBudget(0), Clock: host.clock})
	assert.Equal(t, crawl.DefaultMaxEntries, c.Budget().MaxEntries)
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	frames := q.Drain(100)
	assert.Equal(t, 4, frames, "3 sampling frames + completion frame")
	assert.Equal(t, 2500, host.samples)
	require.Equal(t, 1, r.calls)
	assert.NoError(t, r.err)
}

func TestHostErrorsPropagate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	errSample := errors.New("element detached")
	host := newFlatHost(10)
	host.failAt, host.failWith = 5, errSample
	var q frame.Queue
	c := crawl.New[int](host, &q, 0, crawl.Config[int]{Budget: crawl.CountBudget(2), Clock: host.clock})
	_, err := c.Crawl()
	assert.True(t, err == errSample, "error must not be wrapped")
	//
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	q.Drain(100)
	require.Equal(t, 1, r.calls)
	assert.Nil(t, r.usage)
	assert.True(t, r.err == errSample, "error must not be wrapped")
	assert.False(t, c.IsPending())
	//
	host.failAt, host.queryErr = 0, errors.New("no document")
	r = &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	q.Drain(100)
	require.Equal(t, 1, r.calls)
	assert.True(t, r.err == host.queryErr)
}

func TestNoFrames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	c := crawl.New[int](newFlatHost(1), nil, 0, crawl.Config[int]{})
	assert.ErrorIs(t, c.CrawlAsync(nil), crawl.ErrNoFrames)
	usage, err := c.Crawl()
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Len())
}

func TestEmptyCrawl(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	var q frame.Queue
	c := crawl.New[int](newFlatHost(0), &q, 0, crawl.Config[int]{})
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	assert.Equal(t, 2, q.Drain(10))
	require.Equal(t, 1, r.calls)
	assert.NoError(t, r.err)
	assert.Equal(t, 0, r.usage.Len())
}

func TestExcludeFamilies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(3)
	host.faces[1] = variant.Face{Family: "Arial", Weight: "400", Style: "normal"}
	host.faces[2] = variant.Face{Family: "Roboto", Weight: "bold", Style: "italic"}
	host.faces[3] = variant.Face{Family: "Inter", Weight: "300", Style: "normal"}
	c := crawl.New[int](host, nil, 0, crawl.Config[int]{ExcludeFamilies: []string{" arial ", "INTER"}})
	usage, err := c.Crawl()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Roboto": {"700i"}}, usage.Map())
	assert.Equal(t, 3, host.samples)
}

func TestCrawlWithLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	loop := frame.NewLoop(1000)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	defer loop.Stop()
	c := crawl.New[int](newFlatHost(50), loop, 0, crawl.Config[int]{Budget: crawl.CountBudget(10)})
	done := make(chan *variant.Usage, 1)
	require.NoError(t, c.CrawlAsync(func(u *variant.Usage, err error) {
		assert.NoError(t, err)
		done <- u
	}))
	select {
	case u := <-done:
		assert.Equal(t, 1, u.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("async crawl did not finish")
	}
}

func TestCallbacksReenterCrawler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(4)
	var q frame.Queue
	var c *crawl.Crawler[int]
	var seen []bool
	conf := crawl.Config[int]{Budget: crawl.CountBudget(2), Clock: host.clock}
	conf.Filter = func(el int, pseudo string) bool {
		seen = append(seen, c.IsPending())
		return true
	}
	host.onSample = func(int) { c.IsPending() }
	c = crawl.New[int](host, &q, 0, conf)
	usage, err := c.Crawl()
	require.NoError(t, err)
	assert.Equal(t, 4, host.samples)
	assert.Equal(t, []bool{false, false, false, false}, seen)
	//
	seen = nil
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	q.Drain(10)
	require.Equal(t, 1, r.calls)
	assert.Equal(t, usage.Map(), r.usage.Map())
	assert.Equal(t, []bool{true, true, true, true}, seen)
}

func TestClearWithinSlice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(10)
	var q frame.Queue
	c := crawl.New[int](host, &q, 0, crawl.Config[int]{Budget: crawl.CountBudget(5), Clock: host.clock})
	host.onSample = func(el int) {
		if el == 3 {
			c.Clear()
		}
	}
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	q.Flush()
	assert.False(t, c.IsPending())
	assert.Equal(t, 3, host.samples, "slice stops after the entry being sampled")
	assert.Equal(t, 0, q.Drain(10))
	assert.Equal(t, 0, r.calls)
	//
	host.onSample = nil
	second := &result{}
	require.NoError(t, c.CrawlAsync(second.onDone))
	q.Drain(10)
	require.Equal(t, 1, second.calls)
	assert.Equal(t, 0, r.calls)
}

func TestClearWithinCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontcrawl.crawl")
	defer teardown()
	//
	host := newFlatHost(5)
	var q frame.Queue
	var c *crawl.Crawler[int]
	conf := crawl.Config[int]{}
	conf.Filter = func(el int, pseudo string) bool {
		c.Clear()
		return true
	}
	c = crawl.New[int](host, &q, 0, conf)
	r := &result{}
	require.NoError(t, c.CrawlAsync(r.onDone))
	q.Flush()
	assert.False(t, c.IsPending())
	assert.Equal(t, 0, host.samples)
	assert.Equal(t, 0, q.Drain(10))
	assert.Equal(t, 0, r.calls)
}
