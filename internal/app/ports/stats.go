package ports

import (
	"time"

	"discordstats/internal/app/domain/stats"
)

type TrackerPort interface {
	Has(category string) bool
	Categories() []string
	Record(category, actor string, now time.Time)
	EvictExpired(now time.Time)
	ExecutionCount(category string, gran stats.Granularity) int
	UniqueUserCount(category string, gran stats.Granularity) int
	ResetWindow(category string, gran stats.Granularity)
}

type SnapshotPort interface {
	Capture(category string, gran stats.Granularity, executions, uniqueUsers int, now time.Time)
	Delta(category string, gran stats.Granularity, executions, uniqueUsers int) (int, int)
	Get(category string, gran stats.Granularity) (stats.Snapshot, bool)
}
