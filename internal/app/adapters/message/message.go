package message

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"discordstats/internal/app/adapters/metrics"
	"discordstats/internal/app/domain/report"
	"discordstats/internal/app/domain/stats"
	"discordstats/internal/app/infrastructure/clock"
	"discordstats/internal/app/infrastructure/config"
	"discordstats/internal/app/ports"
	"discordstats/pkg/logger"

	"github.com/shirou/gopsutil/cpu"
)

var startApp = time.Now()

// Message routes inbound gateway events: commands are answered
// directly, events from a monitored source channel go through the
// extractor into the tracker.
type Message struct {
	log       logger.Logger
	clk       clock.Clock
	api       ports.APIPort
	extractor ports.ExtractorPort
	ingest    ports.IngestPort
	tracker   ports.TrackerPort

	// source channel ID -> category name, fixed at startup
	channelCategories map[string]string
}

func New(log logger.Logger, cfg *config.Config, clk clock.Clock, api ports.APIPort,
	extractor ports.ExtractorPort, ingest ports.IngestPort, tracker ports.TrackerPort) *Message {
	channelCategories := make(map[string]string, len(cfg.Categories))
	for name, cat := range cfg.Categories {
		channelCategories[cat.SourceChannel] = name
	}

	return &Message{
		log:               log,
		clk:               clk,
		api:               api,
		extractor:         extractor,
		ingest:            ingest,
		tracker:           tracker,
		channelCategories: channelCategories,
	}
}

func (m *Message) Handle(msg *ports.GatewayMessage) {
	if msg.Author.Bot {
		return
	}

	start := time.Now()
	defer func() {
		metrics.MessageProcessingTime.Observe(time.Since(start).Seconds())
	}()

	switch msg.Content {
	case "!stats":
		m.handleStats(msg.ChannelID)
		return
	case "!ping":
		m.handlePing(msg.ChannelID)
		return
	}

	category, ok := m.channelCategories[msg.ChannelID]
	if !ok {
		return
	}

	actor, ok := m.extractor.Extract(msg)
	if !ok {
		m.log.Trace("No actor found in message", slog.String("message_id", msg.ID))
		return
	}

	if err := m.ingest.Ingest(category, actor, m.clk.Now()); err != nil {
		m.log.Error("Failed to ingest event", err, slog.String("category", category))
	}
}

// handleStats answers an on-demand aggregate summary in the requesting
// channel. Unlike periodic reports, a delivery failure here is made
// visible to the requester.
func (m *Message) handleStats(channelID string) {
	now := m.clk.Now()
	m.tracker.EvictExpired(now)

	cats := m.tracker.Categories()
	counts := make([]report.CategoryCounts, 0, len(cats))
	for _, cat := range cats {
		counts = append(counts, report.CategoryCounts{
			Category: cat,
			Minute:   report.WindowCounts{Executions: m.tracker.ExecutionCount(cat, stats.Minute), UniqueUsers: m.tracker.UniqueUserCount(cat, stats.Minute)},
			Hour:     report.WindowCounts{Executions: m.tracker.ExecutionCount(cat, stats.Hour), UniqueUsers: m.tracker.UniqueUserCount(cat, stats.Hour)},
			Day:      report.WindowCounts{Executions: m.tracker.ExecutionCount(cat, stats.Day), UniqueUsers: m.tracker.UniqueUserCount(cat, stats.Day)},
		})
	}

	if err := m.api.SendMessage(channelID, report.AggregateSummary(counts)); err != nil {
		m.log.Error("Failed to answer !stats", err, slog.String("channel", channelID))
		if err := m.api.SendMessage(channelID, "⚠️ Could not render stats right now, try again later."); err != nil {
			m.log.Error("Failed to deliver !stats error reply", err, slog.String("channel", channelID))
		}
	}
}

func (m *Message) handlePing(channelID string) {
	uptime := time.Since(startApp)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	percent, _ := cpu.Percent(0, false)
	if len(percent) == 0 {
		percent = append(percent, 0)
	}

	text := fmt.Sprintf("bot is up %v • CPU %.2f%% • RAM %v MB",
		uptime.Truncate(time.Second), percent[0], mem.Sys/1024/1024)
	if err := m.api.SendMessage(channelID, text); err != nil {
		m.log.Error("Failed to answer !ping", err, slog.String("channel", channelID))
	}
}
