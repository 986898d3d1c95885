package scheduler

import (
	"log/slog"
	"time"

	"discordstats/internal/app/adapters/metrics"
	"discordstats/internal/app/domain/report"
	"discordstats/internal/app/domain/stats"
	"discordstats/internal/app/infrastructure/clock"
	"discordstats/internal/app/ports"
	"discordstats/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// Scheduler drives every time-based side effect: eviction, minute
// summaries and hour/day rollover comparisons. All other components
// are pure state transformers given explicit timestamps.
type Scheduler struct {
	log       logger.Logger
	clk       clock.Clock
	tracker   ports.TrackerPort
	snapshots ports.SnapshotPort
	publisher ports.PublisherPort

	summaryChannel    string
	comparisonChannel string
	interval          time.Duration

	lastHourIndex int64
	lastDayIndex  int64

	stop chan struct{}
}

func New(log logger.Logger, clk clock.Clock, tracker ports.TrackerPort, snapshots ports.SnapshotPort,
	publisher ports.PublisherPort, summaryChannel, comparisonChannel string, interval time.Duration) *Scheduler {
	s := &Scheduler{
		log:               log,
		clk:               clk,
		tracker:           tracker,
		snapshots:         snapshots,
		publisher:         publisher,
		summaryChannel:    summaryChannel,
		comparisonChannel: comparisonChannel,
		interval:          interval,
		stop:              make(chan struct{}),
	}

	// Markers start at the current indices so the first rollover fires
	// at the next real boundary, not immediately. Snapshots are seeded
	// from the (empty) counters at the same moment.
	now := clk.Now()
	s.lastHourIndex = hourIndex(now)
	s.lastDayIndex = dayIndex(now)
	for _, cat := range tracker.Categories() {
		s.snapshots.Capture(cat, stats.Hour, tracker.ExecutionCount(cat, stats.Hour), tracker.UniqueUserCount(cat, stats.Hour), now)
		s.snapshots.Capture(cat, stats.Day, tracker.ExecutionCount(cat, stats.Day), tracker.UniqueUserCount(cat, stats.Day), now)
	}

	return s
}

// Run ticks until Stop. The next tick waits for the previous one to
// finish, so a slow publish delays but never skips work.
func (s *Scheduler) Run() {
	s.log.Info("Report scheduler started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-s.stop:
			return
		case <-time.After(s.interval):
			s.Tick(s.clk.Now())
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

// Tick runs one scheduling pass: eviction first, then the minute
// summary, then the hourly check, then the daily check.
func (s *Scheduler) Tick(now time.Time) {
	s.tracker.EvictExpired(now)
	s.updateWindowMetrics()

	s.minuteReport()
	s.rollover(now, stats.Hour)
	s.rollover(now, stats.Day)
}

func (s *Scheduler) minuteReport() {
	cats := s.tracker.Categories()

	active := false
	counts := make([]report.CategoryCounts, 0, len(cats))
	for _, cat := range cats {
		c := report.CategoryCounts{
			Category: cat,
			Minute:   report.WindowCounts{Executions: s.tracker.ExecutionCount(cat, stats.Minute), UniqueUsers: s.tracker.UniqueUserCount(cat, stats.Minute)},
			Hour:     report.WindowCounts{Executions: s.tracker.ExecutionCount(cat, stats.Hour), UniqueUsers: s.tracker.UniqueUserCount(cat, stats.Hour)},
			Day:      report.WindowCounts{Executions: s.tracker.ExecutionCount(cat, stats.Day), UniqueUsers: s.tracker.UniqueUserCount(cat, stats.Day)},
		}
		if c.Minute.Executions > 0 {
			active = true
		}
		counts = append(counts, c)
	}

	if !active {
		return
	}
	s.publish(s.summaryChannel, "minute", report.AggregateSummary(counts))
}

// rollover fires the hour or day comparison when the boundary index
// advanced, then captures fresh snapshots and resets the window so
// the next period counts from zero. State advances even when the
// publish failed.
func (s *Scheduler) rollover(now time.Time, gran stats.Granularity) {
	var idx, last int64
	switch gran {
	case stats.Hour:
		idx, last = hourIndex(now), s.lastHourIndex
	case stats.Day:
		idx, last = dayIndex(now), s.lastDayIndex
	default:
		return
	}
	if idx <= last {
		return
	}

	cats := s.tracker.Categories()
	entries := make([]report.Comparison, 0, len(cats))
	for _, cat := range cats {
		executions := s.tracker.ExecutionCount(cat, gran)
		users := s.tracker.UniqueUserCount(cat, gran)
		dExec, dUsers := s.snapshots.Delta(cat, gran, executions, users)
		entries = append(entries, report.Comparison{
			Category:        cat,
			Executions:      executions,
			UniqueUsers:     users,
			ExecutionsDelta: dExec,
			UsersDelta:      dUsers,
		})
	}

	s.publish(s.comparisonChannel, string(gran), report.AggregateComparison(entries, gran, gran == stats.Day))

	if gran == stats.Hour {
		s.lastHourIndex = idx
	} else {
		s.lastDayIndex = idx
	}
	for _, e := range entries {
		s.snapshots.Capture(e.Category, gran, e.Executions, e.UniqueUsers, now)
		s.tracker.ResetWindow(e.Category, gran)
	}
}

func (s *Scheduler) publish(channelID, kind, text string) {
	if channelID == "" {
		return
	}

	if err := s.publisher.SendMessage(channelID, text); err != nil {
		metrics.PublishErrors.With(prometheus.Labels{"kind": kind}).Inc()
		s.log.Error("Failed to publish report", err, slog.String("kind", kind), slog.String("channel", channelID))
		return
	}
	metrics.ReportsPublished.With(prometheus.Labels{"kind": kind}).Inc()
}

func (s *Scheduler) updateWindowMetrics() {
	for _, cat := range s.tracker.Categories() {
		for _, gran := range []stats.Granularity{stats.Minute, stats.Hour, stats.Day} {
			labels := prometheus.Labels{"category": cat, "window": string(gran)}
			metrics.WindowExecutions.With(labels).Set(float64(s.tracker.ExecutionCount(cat, gran)))
			metrics.WindowUniqueUsers.With(labels).Set(float64(s.tracker.UniqueUserCount(cat, gran)))
		}
	}
}

func hourIndex(t time.Time) int64 { return t.Unix() / 3600 }
func dayIndex(t time.Time) int64  { return t.Unix() / 86400 }
