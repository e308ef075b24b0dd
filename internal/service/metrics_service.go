package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface
// and the sync layer.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	collectionLoads *prometheus.CounterVec
	remoteFailures  *prometheus.CounterVec
	snapshotWrite   prometheus.Observer
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	collectionLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_collection_loads_total",
		Help: "Collection loads by originating source (remote, fallback, cache, empty)",
	}, []string{"collection", "source"})

	remoteFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_remote_failures_total",
		Help: "Failed remote store operations by collection and operation",
	}, []string{"collection", "op"})

	snapshotWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_snapshot_write_seconds",
		Help:    "Latency of snapshot cache writes",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, collectionLoads, remoteFailures, snapshotWrite, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		collectionLoads: collectionLoads,
		remoteFailures:  remoteFailures,
		snapshotWrite:   snapshotWrite,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records request latency and count.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordCollectionLoad implements the coordinator metrics contract.
func (s *MetricsService) RecordCollectionLoad(collection string, source string) {
	s.collectionLoads.WithLabelValues(collection, source).Inc()
}

// RecordRemoteFailure implements the coordinator metrics contract.
func (s *MetricsService) RecordRemoteFailure(collection string, op string) {
	s.remoteFailures.WithLabelValues(collection, op).Inc()
}

// ObserveSnapshotWrite records snapshot persistence latency.
func (s *MetricsService) ObserveSnapshotWrite(duration time.Duration) {
	s.snapshotWrite.Observe(duration.Seconds())
}
