package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess         = "success"
	OutcomeUnavailable     = "unavailable"
	OutcomeNotFound        = "not_found"
	OutcomeDataMissing     = "data_missing"
	OutcomeActiveAccounts  = "active_accounts"
	OutcomeCustomerMissing = "customer_not_found"
	OutcomeError           = "error"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type PeerMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomerOperationsTotal *prometheus.CounterVec
	DeletionGuardTotal      *prometheus.CounterVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Peer = PeerMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_service_peer_requests_total",
				Help: "Total number of calls made to peer services, by outcome.",
			},
			[]string{"peer", "outcome"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_service_peer_request_duration_seconds",
				Help:    "Histogram of peer service call latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"peer"},
		),
	}

	Business = BusinessMetrics{
		CustomerOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_service_customer_operations_total",
				Help: "Total number of successful customer lifecycle operations.",
			},
			[]string{"operation"},
		),
		DeletionGuardTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_service_deletion_guard_total",
				Help: "Deletion guard decisions, by outcome.",
			},
			[]string{"outcome"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordPeerCall(peer, outcome string, duration time.Duration) {
	Peer.RequestsTotal.WithLabelValues(peer, outcome).Inc()
	Peer.RequestDuration.WithLabelValues(peer).Observe(duration.Seconds())
}

func RecordCustomerOperation(operation string) {
	Business.CustomerOperationsTotal.WithLabelValues(operation).Inc()
}

func RecordDeletionGuard(outcome string) {
	Business.DeletionGuardTotal.WithLabelValues(outcome).Inc()
}
