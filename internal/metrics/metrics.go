package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	UpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistbot_updates_total",
			Help: "Total number of Telegram updates processed, by kind.",
		},
		[]string{"kind"},
	)

	InferenceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistbot_inference_requests_total",
			Help: "Total number of chat-completion requests, by status.",
		},
		[]string{"status"},
	)

	InferenceDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistbot_inference_duration_seconds",
			Help:    "Chat-completion request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	KnowledgeFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistbot_knowledge_fetches_total",
			Help: "Total number of knowledge source fetches, by source and status.",
		},
		[]string{"source", "status"},
	)

	MenuActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistbot_menu_actions_total",
			Help: "Total number of menu button presses, by action.",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(
		UpdatesTotal,
		InferenceRequestsTotal,
		InferenceDuration,
		KnowledgeFetchesTotal,
		MenuActionsTotal,
	)
}
