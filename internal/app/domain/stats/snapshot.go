package stats

import (
	"sync"
	"time"
)

// Snapshot is the counter state captured at the last report boundary
// for one category and granularity.
type Snapshot struct {
	ExecutionCount  int
	UniqueUserCount int
	TakenAt         time.Time
}

type snapshotKey struct {
	category string
	gran     Granularity
}

// SnapshotStore remembers per-category hour/day counter values for
// delta computation. Written only by the scheduler.
type SnapshotStore struct {
	mu    sync.Mutex
	snaps map[snapshotKey]Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snaps: make(map[snapshotKey]Snapshot)}
}

func (s *SnapshotStore) Capture(category string, gran Granularity, executions, uniqueUsers int, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps[snapshotKey{category, gran}] = Snapshot{
		ExecutionCount:  executions,
		UniqueUserCount: uniqueUsers,
		TakenAt:         now,
	}
}

// Delta returns current minus stored. A missing snapshot counts as
// zero on both fields, so the very first report shows the absolute
// values as its delta.
func (s *SnapshotStore) Delta(category string, gran Granularity, executions, uniqueUsers int) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snaps[snapshotKey{category, gran}]
	return executions - prev.ExecutionCount, uniqueUsers - prev.UniqueUserCount
}

func (s *SnapshotStore) Get(category string, gran Granularity) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snaps[snapshotKey{category, gran}]
	return snap, ok
}
