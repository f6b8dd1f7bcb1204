package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	companyMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "company_mutations_total",
			Help:      "Company mutations by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Company events handed to the broker",
		},
		[]string{"outcome"},
	)

	wsClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_clients",
		Help:      "Connected websocket clients",
	})

	wsBroadcasts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ws_broadcasts_total",
		Help:      "Messages relayed to websocket clients",
	})
)

func init() {
	prometheus.MustRegister(companyMutations, eventsPublished, wsClients, wsBroadcasts)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveMutation conta create/update/delete (action = models.Action*).
func ObserveMutation(action string, err error) {
	companyMutations.WithLabelValues(action, outcome(err)).Inc()
}

func ObservePublish(err error) {
	eventsPublished.WithLabelValues(outcome(err)).Inc()
}

func SetWSClients(n int) { wsClients.Set(float64(n)) }

func ObserveBroadcast() { wsBroadcasts.Inc() }
