package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemaverse_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemaverse_http_request_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	Bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemaverse_bookings_total",
			Help: "Booking state transitions",
		},
		[]string{"status"},
	)

	Reminders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemaverse_reminders_total",
			Help: "Showtime reminder emails by result",
		},
		[]string{"result"},
	)

	PaymentIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemaverse_payment_intents_total",
			Help: "Payment intents by resulting status",
		},
		[]string{"status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemaverse_job_seconds",
			Help:    "Duration of background job runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinemaverse_event_publish_failures_total",
			Help: "Domain events that could not be published",
		},
	)
)
