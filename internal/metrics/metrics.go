package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application counters exported at /metrics.
type Metrics struct {
	RidesCreated   prometheus.Counter
	RideJoins      prometheus.Counter
	RideLeaves     prometheus.Counter
	RidesCancelled prometheus.Counter
	RidesCompleted prometheus.Counter
	OTPSent        prometheus.Counter
	SOSAlerts      prometheus.Counter
}

// New registers the counters against reg. Tests pass a fresh registry to
// avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RidesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "rides_created_total",
			Help:      "Total rides posted",
		}),
		RideJoins: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "ride_joins_total",
			Help:      "Total successful ride joins",
		}),
		RideLeaves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "ride_leaves_total",
			Help:      "Total riders leaving rides",
		}),
		RidesCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "rides_cancelled_total",
			Help:      "Total rides cancelled by their driver",
		}),
		RidesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "rides_completed_total",
			Help:      "Total rides completed",
		}),
		OTPSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "otp_sent_total",
			Help:      "Total verification codes issued",
		}),
		SOSAlerts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "campool",
			Name:      "sos_alerts_total",
			Help:      "Total SOS alerts triggered",
		}),
	}
}
