// Package observability exposes Prometheus metrics for the webhook service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	intentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hiplog",
		Subsystem: "executor",
		Name:      "intents_total",
		Help:      "Webhook requests processed, by parsed intent type.",
	}, []string{"intent_type"})
	intentFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hiplog",
		Subsystem: "executor",
		Name:      "intent_failures_total",
		Help:      "Webhook requests that produced a failure response, by failure kind.",
	}, []string{"reason"})
	logWrittenGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hiplog",
		Subsystem: "store",
		Name:      "last_log_written_timestamp_seconds",
		Help:      "Unix timestamp of the most recent daily log written to the store.",
	})
)

func init() {
	prometheus.MustRegister(intentsTotal, intentFailuresTotal, logWrittenGauge)
}

// Failure reasons.
const (
	FailureDecode     = "decode"
	FailureValidation = "validation"
	FailureUnknown    = "unknown"
)

// RecordIntent counts one processed intent.
func RecordIntent(intentType string) {
	intentsTotal.WithLabelValues(intentType).Inc()
}

// RecordFailure counts one failure response.
func RecordFailure(reason string) {
	intentFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordLogWritten updates the write watermark gauge.
func RecordLogWritten(ts time.Time) {
	if ts.IsZero() {
		return
	}
	logWrittenGauge.Set(float64(ts.Unix()))
}
