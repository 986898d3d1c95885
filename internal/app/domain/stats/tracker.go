package stats

import (
	"sort"
	"sync"
	"time"
)

// Tracker keeps minute/hour/day windows of executions per category.
// Categories are fixed at construction; ingestion and the scheduler
// tick run on different goroutines, so every access takes the mutex.
type Tracker struct {
	mu         sync.Mutex
	categories map[string]*categoryWindows
}

type categoryWindows struct {
	minute *window
	hour   *window
	day    *window
}

func NewTracker(categories []string) *Tracker {
	t := &Tracker{categories: make(map[string]*categoryWindows, len(categories))}
	for _, name := range categories {
		t.categories[name] = &categoryWindows{
			minute: newWindow(),
			hour:   newWindow(),
			day:    newWindow(),
		}
	}
	return t
}

func (t *Tracker) Has(category string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.categories[category]
	return ok
}

// Categories returns the configured category names in sorted order so
// reports render deterministically.
func (t *Tracker) Categories() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.categories))
	for name := range t.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Record appends the event to all three windows of the category. The
// caller is expected to have checked the category via Has.
func (t *Tracker) Record(category, actor string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cw, ok := t.categories[category]
	if !ok {
		return
	}

	cw.minute.record(actor, now)
	cw.hour.record(actor, now)
	cw.day.record(actor, now)
}

// EvictExpired removes aged-out events from every window of every
// category. Idempotent for a fixed now.
func (t *Tracker) EvictExpired(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, cw := range t.categories {
		cw.minute.evict(now, Minute.Duration())
		cw.hour.evict(now, Hour.Duration())
		cw.day.evict(now, Day.Duration())
	}
}

func (t *Tracker) ExecutionCount(category string, gran Granularity) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cw, ok := t.categories[category]
	if !ok {
		return 0
	}
	return cw.window(gran).executionCount()
}

func (t *Tracker) UniqueUserCount(category string, gran Granularity) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cw, ok := t.categories[category]
	if !ok {
		return 0
	}
	return cw.window(gran).uniqueUserCount()
}

// ResetWindow empties one window of one category. Used by the scheduler
// right after a rollover snapshot so the next period starts clean.
func (t *Tracker) ResetWindow(category string, gran Granularity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cw, ok := t.categories[category]
	if !ok {
		return
	}
	cw.window(gran).reset()
}

func (cw *categoryWindows) window(gran Granularity) *window {
	switch gran {
	case Hour:
		return cw.hour
	case Day:
		return cw.day
	default:
		return cw.minute
	}
}
