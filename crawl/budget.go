package crawl

import (
	"fmt"
	"time"
)

// Defaults for slice budgets.
const (
	DefaultInterval   = 16 * time.Millisecond // one frame at 60Hz
	DefaultMaxEntries = 1000
)

// Budget limits the work of a single slice of an asynchronous crawl.
// If MaxEntries > 0, the budget is count-based, otherwise it is time-based
// with Interval. Invalid or zero values fall back to the defaults.
type Budget struct {
	Interval   time.Duration
	MaxEntries int
}

// TimeBudget returns a time-based budget.
func TimeBudget(interval time.Duration) Budget {
	return Budget{Interval: interval}
}

// CountBudget returns a count-based budget. n <= 0 selects DefaultMaxEntries.
func CountBudget(n int) Budget {
	if n <= 0 {
		n = DefaultMaxEntries
	}
	return Budget{MaxEntries: n}
}

// IsCountBased is true for budgets limiting the number of entries per slice.
func (b Budget) IsCountBased() bool {
	return b.MaxEntries > 0
}

func (b Budget) normalized() Budget {
	if b.MaxEntries > 0 {
		return Budget{MaxEntries: b.MaxEntries}
	}
	if b.Interval <= 0 {
		return Budget{Interval: DefaultInterval}
	}
	return Budget{Interval: b.Interval}
}

func (b Budget) String() string {
	n := b.normalized()
	if n.IsCountBased() {
		return fmt.Sprintf("budget(%d entries)", n.MaxEntries)
	}
	return fmt.Sprintf("budget(%v)", n.Interval)
}

// exhausted checks if a slice has to yield after processing n entries.
func (b Budget) exhausted(n int, elapsed time.Duration) bool {
	if b.MaxEntries > 0 {
		return n >= b.MaxEntries
	}
	return elapsed >= b.Interval
}
