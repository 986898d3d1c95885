package stats

import "time"

type Granularity string

const (
	Minute Granularity = "minute"
	Hour   Granularity = "hour"
	Day    Granularity = "day"
)

func (g Granularity) Duration() time.Duration {
	switch g {
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	}
	return 0
}

// Event is one tracked execution. Immutable once recorded; each window
// keeps its own copy because windows evict independently.
type Event struct {
	Actor     string
	Timestamp time.Time
}

// window holds the raw events of one trailing span plus the set of
// distinct actors among them. uniqueActors is rebuilt after every
// eviction so it never drifts from events.
type window struct {
	events       []Event
	uniqueActors map[string]struct{}
}

func newWindow() *window {
	return &window{uniqueActors: make(map[string]struct{})}
}

func (w *window) record(actor string, now time.Time) {
	w.events = append(w.events, Event{Actor: actor, Timestamp: now})
	w.uniqueActors[actor] = struct{}{}
}

// evict drops every event whose age reached the window duration and
// recomputes the unique-actor set from what survived.
func (w *window) evict(now time.Time, duration time.Duration) {
	kept := w.events[:0]
	for _, e := range w.events {
		if now.Sub(e.Timestamp) < duration {
			kept = append(kept, e)
		}
	}
	w.events = kept

	w.uniqueActors = make(map[string]struct{}, len(w.events))
	for _, e := range w.events {
		w.uniqueActors[e.Actor] = struct{}{}
	}
}

func (w *window) reset() {
	w.events = nil
	w.uniqueActors = make(map[string]struct{})
}

func (w *window) executionCount() int {
	return len(w.events)
}

func (w *window) uniqueUserCount() int {
	return len(w.uniqueActors)
}
