// Package metrics holds the Prometheus collectors of the service. Collectors
// are registered on an explicit registerer so tests can use a fresh registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hopecare"

// Ledger counts business outcomes. A nil *Ledger records nothing.
type Ledger struct {
	donations       *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryRetries prometheus.Counter
	logins          *prometheus.CounterVec
}

func NewLedger(reg prometheus.Registerer) *Ledger {
	l := &Ledger{
		donations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donations_recorded_total",
			Help:      "Donations committed to the ledger.",
		}, []string{"kind"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Delivery attempts by outcome.",
		}, []string{"outcome"}),
		deliveryRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_transaction_retries_total",
			Help:      "Delivery transactions retried after a serialization failure.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(l.donations, l.deliveries, l.deliveryRetries, l.logins)
	return l
}

func (l *Ledger) DonationRecorded(kind string) {
	if l == nil {
		return
	}
	l.donations.WithLabelValues(kind).Inc()
}

// DeliveryOutcome takes "completed", "insufficient_stock", "rejected" or "failed".
func (l *Ledger) DeliveryOutcome(outcome string) {
	if l == nil {
		return
	}
	l.deliveries.WithLabelValues(outcome).Inc()
}

func (l *Ledger) DeliveryRetried() {
	if l == nil {
		return
	}
	l.deliveryRetries.Inc()
}

func (l *Ledger) Login(success bool) {
	if l == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	l.logins.WithLabelValues(result).Inc()
}

// HTTP holds the request collectors used by Instrument.
type HTTP struct {
	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.inFlight, m.requests, m.duration)
	return m
}

// Instrument labels requests with the chi route pattern rather than the raw
// path so ids do not explode the label cardinality.
func (m *HTTP) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := strconv.Itoa(sw.code)
		m.duration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, route, status).Inc()
	})
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
