package listings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodshare",
		Subsystem: "listings",
		Name:      "transitions_total",
		Help:      "The total number of listing lifecycle changes",
	}, []string{"event"})

	rejectedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodshare",
		Subsystem: "listings",
		Name:      "rejected_total",
		Help:      "The total number of refused claims and collections",
	}, []string{"operation"})
)
