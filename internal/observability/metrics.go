package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "msp",
			Subsystem: "session",
			Name:      "requests_total",
			Help:      "Total MSP requests by command and outcome.",
		},
		[]string{"command", "outcome"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "msp",
			Subsystem: "session",
			Name:      "request_duration_seconds",
			Help:      "MSP request round-trip time in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	frameErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "msp",
			Subsystem: "wire",
			Name:      "frame_errors_total",
			Help:      "Malformed inbound frames by kind.",
		},
		[]string{"kind"},
	)
)

// Request outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeTimeout = "timeout"
	OutcomeDesync  = "desync"
	OutcomeError   = "error"
)

// Frame error kinds.
const (
	FrameErrorChecksum = "checksum"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requests, requestDuration, frameErrors)
	})
}

func RecordRequest(command, outcome string, duration time.Duration) {
	RegisterMetrics()
	requests.WithLabelValues(command, outcome).Inc()
	requestDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func RecordFrameError(kind string) {
	RegisterMetrics()
	frameErrors.WithLabelValues(kind).Inc()
}
