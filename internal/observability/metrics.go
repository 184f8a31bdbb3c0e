package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aquasense"

// Metrics holds the Prometheus collectors for ingestion and delivery.
type Metrics struct {
	ReadingsIngested *prometheus.CounterVec // labels: transport={http,mqtt}, outcome={success,error}
	EngineFaults     *prometheus.CounterVec // labels: step={crop,water}
	PublishErrors    *prometheus.CounterVec // labels: sink
	HistorySize      prometheus.Gauge
	WSClients        prometheus.Gauge
	MQTTConnected    prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered metrics so repeated calls from
// tests do not panic.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_ingested_total",
			Help:      "Sensor payloads received by transport and outcome.",
		}, []string{"transport", "outcome"}),
		EngineFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_faults_total",
			Help:      "Rule steps that failed and fell back to a default result.",
		}, []string{"step"}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Entries a downstream sink failed to accept.",
		}, []string{"sink"}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_size",
			Help:      "Entries currently held in the reading history.",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected live feed clients.",
		}),
		MQTTConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mqtt_connected",
			Help:      "1 while the MQTT broker connection is up.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ReadingsIngested,
		m.EngineFaults,
		m.PublishErrors,
		m.HistorySize,
		m.WSClients,
		m.MQTTConnected,
	}
}
