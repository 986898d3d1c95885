package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayConnected - подключен ли бот к гейтвею.
	GatewayConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stats_gateway_connected",
		Help: "Whether the gateway websocket is currently connected (1) or not (0)",
	})

	// ExecutionsTracked - количество учтённых событий по категориям.
	ExecutionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_executions_tracked_total",
			Help: "Total number of executions tracked per category",
		},
		[]string{"category"},
	)

	// WindowExecutions - текущее наполнение окон по категориям.
	WindowExecutions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stats_window_executions",
			Help: "Executions currently retained in a window per category",
		},
		[]string{"category", "window"},
	)

	// WindowUniqueUsers - уникальные пользователи в окнах по категориям.
	WindowUniqueUsers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stats_window_unique_users",
			Help: "Unique users currently retained in a window per category",
		},
		[]string{"category", "window"},
	)

	// ReportsPublished - количество опубликованных отчётов по видам.
	ReportsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_reports_published_total",
			Help: "Total number of reports published per kind",
		},
		[]string{"kind"},
	)

	// PublishErrors - количество ошибок публикации по видам отчётов.
	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_publish_errors_total",
			Help: "Total number of failed report publications per kind",
		},
		[]string{"kind"},
	)

	// MessageProcessingTime - время обработки входящих сообщений.
	MessageProcessingTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stats_message_processing_milliseconds",
			Help:    "Time to process an inbound gateway message",
			Buckets: prometheus.ExponentialBuckets(0.00005, 1.5, 25),
		},
	)
)
