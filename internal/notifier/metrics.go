package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	intentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderator_intents_total",
			Help: "Total notification intents produced, by recipient role.",
		},
		[]string{"role"},
	)
	mailSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderator_mail_send_total",
			Help: "Total mail delivery attempts by status.",
		},
		[]string{"status"},
	)
	mailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moderator_mail_send_duration_seconds",
			Help:    "Duration of SMTP delivery attempts.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)
)
