package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	PostMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_mutations_total",
			Help: "Total number of successful post mutations",
		},
		[]string{"op"},
	)

	PersistenceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persistence_failures_total",
			Help: "Total number of failed loads and saves of the post collection",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, PostMutationsTotal, PersistenceFailuresTotal)
}
