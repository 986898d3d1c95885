package ingest

import (
	"testing"
	"time"

	"discordstats/internal/app/domain/stats"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) SetLogLevel(string)          {}
func (nopLogger) GetLogLevel() string         { return "info" }
func (nopLogger) Trace(string, ...any)        {}
func (nopLogger) Debug(string, ...any)        {}
func (nopLogger) Info(string, ...any)         {}
func (nopLogger) Warn(string, ...any)         {}
func (nopLogger) Error(string, error, ...any) {}
func (nopLogger) Fatal(string, error, ...any) {}

func TestIngestor_Ingest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tracker := stats.NewTracker([]string{"x"})
	ing := New(nopLogger{}, tracker)

	assert.NoError(t, ing.Ingest("x", "alice", now))
	assert.NoError(t, ing.Ingest("x", "alice", now))
	assert.NoError(t, ing.Ingest("x", "bob", now))

	assert.Equal(t, 3, tracker.ExecutionCount("x", stats.Minute))
	assert.Equal(t, 2, tracker.UniqueUserCount("x", stats.Minute))
}

func TestIngestor_UnknownCategory(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tracker := stats.NewTracker([]string{"x"})
	ing := New(nopLogger{}, tracker)

	err := ing.Ingest("nope", "alice", now)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	// nothing was recorded anywhere
	for _, gran := range []stats.Granularity{stats.Minute, stats.Hour, stats.Day} {
		assert.Equal(t, 0, tracker.ExecutionCount("x", gran))
		assert.Equal(t, 0, tracker.ExecutionCount("nope", gran))
	}
}

func TestIngestor_EvictsOnIngest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tracker := stats.NewTracker([]string{"x"})
	ing := New(nopLogger{}, tracker)

	assert.NoError(t, ing.Ingest("x", "alice", now))
	assert.NoError(t, ing.Ingest("x", "bob", now.Add(90*time.Second)))

	// the second ingest evicted the stale entry, so minute-window
	// reads are consistent without waiting for a scheduler tick
	assert.Equal(t, 1, tracker.ExecutionCount("x", stats.Minute))
	assert.Equal(t, 1, tracker.UniqueUserCount("x", stats.Minute))
	assert.Equal(t, 2, tracker.ExecutionCount("x", stats.Hour))
}
