package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"discordstats/internal/app/adapters/metrics"
	"discordstats/internal/app/ports"
	"discordstats/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrUnknownCategory is returned when an event targets a category that
// was not configured at startup.
var ErrUnknownCategory = errors.New("unknown category")

// Ingestor bridges an already-resolved (category, actor) pair into the
// tracker. Actor resolution happens upstream; actor is never empty here.
type Ingestor struct {
	log     logger.Logger
	tracker ports.TrackerPort
}

func New(log logger.Logger, tracker ports.TrackerPort) *Ingestor {
	return &Ingestor{
		log:     log,
		tracker: tracker,
	}
}

// Ingest records the event across the category's windows and evicts
// expired entries right away so any later read is consistent.
func (i *Ingestor) Ingest(category, actor string, now time.Time) error {
	if !i.tracker.Has(category) {
		i.log.Warn("Dropping event for unconfigured category", slog.String("category", category), slog.String("actor", actor))
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	i.tracker.Record(category, actor, now)
	i.tracker.EvictExpired(now)

	metrics.ExecutionsTracked.With(prometheus.Labels{"category": category}).Inc()
	i.log.Debug("Tracked execution", slog.String("category", category), slog.String("actor", actor))
	return nil
}
