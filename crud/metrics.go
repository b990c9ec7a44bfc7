package crud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// engagementMutations counts successful creates and deletes of likes and comments.
var engagementMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fritter",
	Name:      "engagement_mutations_total",
	Help:      "Number of likes and comments created and deleted.",
}, []string{"kind", "op"})
