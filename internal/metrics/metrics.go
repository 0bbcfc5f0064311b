package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelAction, LabelOutcome},
	)

	FavorGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFavorGranted,
			Help: HelpTextFavorGranted,
		},
		[]string{LabelAction},
	)

	MarblesGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarblesGranted,
			Help: HelpTextMarblesGranted,
		},
		[]string{LabelAction},
	)

	CollectibleDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollectibleDrops,
			Help: HelpTextCollectibleDrops,
		},
		[]string{LabelTier},
	)

	AchievementsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsGranted,
			Help: HelpTextAchievementsGranted,
		},
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePersistFailures,
			Help: HelpTextPersistFailures,
		},
	)
)
