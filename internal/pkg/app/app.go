package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"discordstats/internal/app/adapters/discord"
	"discordstats/internal/app/adapters/extractor"
	"discordstats/internal/app/adapters/gateway"
	router "discordstats/internal/app/adapters/http"
	"discordstats/internal/app/adapters/ingest"
	"discordstats/internal/app/adapters/message"
	"discordstats/internal/app/adapters/metrics"
	"discordstats/internal/app/adapters/scheduler"
	"discordstats/internal/app/domain/stats"
	"discordstats/internal/app/infrastructure/clock"
	"discordstats/internal/app/infrastructure/config"
	"discordstats/internal/app/infrastructure/storage"
	"discordstats/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/proxy"
)

const configPath = "config.json"

func New() error {
	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: http.DefaultTransport,
	}
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		log.Fatal("Error loading config", err)
	}

	cfg := manager.Get()
	if cfg.Proxy != nil && cfg.Proxy.Address != "" && cfg.Proxy.Port != 0 {
		dialer, err := proxy.SOCKS5("tcp", fmt.Sprintf("%s:%d", cfg.Proxy.Address, cfg.Proxy.Port), nil, proxy.Direct)
		if err != nil {
			return err
		}

		client.Transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	}

	log.SetLogLevel(cfg.App.LogLevel)
	gin.SetMode(cfg.App.GinMode)

	prometheus.MustRegister(metrics.MessageProcessingTime)

	if _, err := os.Stat("cache"); os.IsNotExist(err) {
		if err := os.Mkdir("cache", 0700); err != nil {
			log.Error("Error creating cache directory", err)
			return err
		}
	} else if err != nil {
		log.Error("Error stat cache directory", err)
		return err
	}

	categories := make([]string, 0, len(cfg.Categories))
	for name := range cfg.Categories {
		categories = append(categories, name)
	}

	clk := clock.RealClock{}
	tracker := stats.NewTracker(categories)
	snapshots := stats.NewSnapshotStore()

	api := discord.New(log, cfg, client)
	users := storage.NewCache[string](1024, 24*time.Hour, true, true, "cache/users.json", 0)
	ext := extractor.New(log, api, users)

	msg := message.New(log, cfg, clk, api, ext, ingest.New(log, tracker), tracker)
	gw := gateway.New(log, cfg.App.BotToken, msg)

	sched := scheduler.New(log, clk, tracker, snapshots, api,
		cfg.Channels.Summary, cfg.Channels.Comparison, cfg.Scheduler.TickInterval)

	go sched.Run()
	go gw.Run()

	for name, cat := range cfg.Categories {
		prefixedLog := logger.NewPrefixedLogger(log, name)
		prefixedLog.Info("Tracking category", slog.String("source_channel", cat.SourceChannel))
		metrics.ExecutionsTracked.With(prometheus.Labels{"category": name}).Add(0)
	}
	log.Info("Monitoring channels",
		slog.String("summary", cfg.Channels.Summary),
		slog.String("comparison", cfg.Channels.Comparison))

	return router.NewRouter(log, manager).Run()
}
