package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestDuration observes how long requests take, per route and status code.
var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "fritter",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "Duration of http requests.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})
