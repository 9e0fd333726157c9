package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blog", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	LoginFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "blog", Name: "login_failures_total", Help: "Rejected login attempts",
	})
	PolicyDenials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog", Name: "policy_denials_total", Help: "Actions refused by the authorization policy",
	}, []string{"action"})
	Errors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blog", Name: "errors_total", Help: "Request errors by kind",
	}, []string{"kind"})
	FeedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "blog", Name: "feed_clients", Help: "Connected websocket feed clients",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "blog", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, LoginFailures, PolicyDenials, Errors, FeedClients, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
