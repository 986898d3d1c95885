package stats

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestTracker_RecordCounts(t *testing.T) {
	t.Parallel()

	tr := NewTracker([]string{"x"})
	for i := 0; i < 3; i++ {
		tr.Record("x", "alice", baseTime)
	}
	for i := 0; i < 2; i++ {
		tr.Record("x", "bob", baseTime)
	}

	for _, gran := range []Granularity{Minute, Hour, Day} {
		assert.Equal(t, 5, tr.ExecutionCount("x", gran), "execution count for %s", gran)
		assert.Equal(t, 2, tr.UniqueUserCount("x", gran), "unique user count for %s", gran)
	}
}

func TestTracker_EvictionPerWindow(t *testing.T) {
	t.Parallel()

	tr := NewTracker([]string{"x"})
	tr.Record("x", "alice", baseTime)

	// 61s later the minute window is empty, hour and day still hold it
	tr.EvictExpired(baseTime.Add(61 * time.Second))
	assert.Equal(t, 0, tr.ExecutionCount("x", Minute))
	assert.Equal(t, 0, tr.UniqueUserCount("x", Minute))
	assert.Equal(t, 1, tr.ExecutionCount("x", Hour))
	assert.Equal(t, 1, tr.ExecutionCount("x", Day))

	tr.EvictExpired(baseTime.Add(time.Hour + time.Second))
	assert.Equal(t, 0, tr.ExecutionCount("x", Hour))
	assert.Equal(t, 1, tr.ExecutionCount("x", Day))

	tr.EvictExpired(baseTime.Add(24*time.Hour + time.Second))
	assert.Equal(t, 0, tr.ExecutionCount("x", Day))
}

func TestTracker_EvictionBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		age  time.Duration
		want int
	}{
		{name: "just_inside", age: 59*time.Second + 999*time.Millisecond, want: 1},
		{name: "exactly_duration", age: 60 * time.Second, want: 0},
		{name: "past_duration", age: 61 * time.Second, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker([]string{"x"})
			tr.Record("x", "alice", baseTime)
			tr.EvictExpired(baseTime.Add(tt.age))
			assert.Equal(t, tt.want, tr.ExecutionCount("x", Minute))
		})
	}
}

func TestTracker_EvictionIdempotent(t *testing.T) {
	t.Parallel()

	tr := NewTracker([]string{"x"})
	tr.Record("x", "alice", baseTime)
	tr.Record("x", "bob", baseTime.Add(30*time.Second))

	now := baseTime.Add(70 * time.Second)
	tr.EvictExpired(now)
	first := tr.ExecutionCount("x", Minute)
	firstUsers := tr.UniqueUserCount("x", Minute)

	tr.EvictExpired(now)
	assert.Equal(t, first, tr.ExecutionCount("x", Minute))
	assert.Equal(t, firstUsers, tr.UniqueUserCount("x", Minute))
}

func TestTracker_CrossCategoryIsolation(t *testing.T) {
	t.Parallel()

	tr := NewTracker([]string{"a", "b"})
	tr.Record("a", "alice", baseTime)
	tr.Record("a", "bob", baseTime)

	for _, gran := range []Granularity{Minute, Hour, Day} {
		assert.Equal(t, 0, tr.ExecutionCount("b", gran))
		assert.Equal(t, 0, tr.UniqueUserCount("b", gran))
	}

	tr.ResetWindow("a", Hour)
	assert.Equal(t, 2, tr.ExecutionCount("a", Minute), "reset of hour window must not touch minute window")
	assert.Equal(t, 0, tr.ExecutionCount("a", Hour))
}

func TestTracker_UnknownCategoryReadsZero(t *testing.T) {
	t.Parallel()

	tr := NewTracker([]string{"x"})
	assert.False(t, tr.Has("nope"))
	assert.Equal(t, 0, tr.ExecutionCount("nope", Minute))
	assert.Equal(t, 0, tr.UniqueUserCount("nope", Minute))
}

// Randomized record/evict sequences: the unique-actor count must
// always equal the number of distinct actors among retained events.
func TestTracker_UniqueActorConsistency(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	tr := NewTracker([]string{"x"})

	type recorded struct {
		actor string
		at    time.Time
	}
	var live []recorded
	now := baseTime

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0, 1:
			actor := fmt.Sprintf("user%d", rng.Intn(20))
			tr.Record("x", actor, now)
			live = append(live, recorded{actor: actor, at: now})
		case 2:
			now = now.Add(time.Duration(rng.Intn(20)) * time.Second)
			tr.EvictExpired(now)
		}

		// reference model over the minute window
		distinct := make(map[string]struct{})
		count := 0
		for _, r := range live {
			if now.Sub(r.at) < time.Minute {
				distinct[r.actor] = struct{}{}
				count++
			}
		}

		// the tracker evicts lazily, so compare after forcing eviction
		tr.EvictExpired(now)
		assert.Equal(t, count, tr.ExecutionCount("x", Minute), "step %d", i)
		assert.Equal(t, len(distinct), tr.UniqueUserCount("x", Minute), "step %d", i)
		assert.LessOrEqual(t, tr.UniqueUserCount("x", Minute), tr.ExecutionCount("x", Minute))
	}
}

func TestTracker_CategoriesSorted(t *testing.T) {
	t.Parallel()

	tr := NewTracker([]string{"zeta", "alpha", "mid"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, tr.Categories())
}

func BenchmarkTracker_Record(b *testing.B) {
	tr := NewTracker([]string{"x"})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Record("x", "alice", baseTime)
	}
}

func BenchmarkTracker_EvictExpired(b *testing.B) {
	tr := NewTracker([]string{"x"})
	for i := 0; i < 10000; i++ {
		tr.Record("x", fmt.Sprintf("user%d", i%50), baseTime.Add(time.Duration(i)*time.Millisecond))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.EvictExpired(baseTime.Add(5 * time.Second))
	}
}
