package faultsim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

/*
PrometheusObserver exports gate and fault counters. Gate counts are of
executed gates only. One observer can be shared by many sessions: counters
only add.
*/
type PrometheusObserver struct {
	gateCalls *prometheus.CounterVec
	faults    *prometheus.CounterVec
	sites     *prometheus.HistogramVec
}

// NewPrometheusObserver registers its collectors with reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	factory := promauto.With(reg)

	return &PrometheusObserver{
		// gateCalls counts intercepted calls by gate and form
		gateCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faultsim_gate_calls_total",
			Help: "Intercepted gate calls by gate and form",
		}, []string{"gate", "form"}),

		// faults counts injected faults by intercepted gate, pauli and policy
		faults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "faultsim_faults_injected_total",
			Help: "Injected faults by intercepted gate, pauli and basis change",
		}, []string{"gate", "pauli", "basis_change"}),

		// sites tracks how deep into a session the fault landed
		sites: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "faultsim_fault_call_sequence",
			Help:    "Ordinal of the gate call on which the fault fired",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"form"}),
	}
}

func (po *PrometheusObserver) ObserveGate(call GateCall) {
	po.gateCalls.WithLabelValues(call.Kind.String(), call.Form.String()).Inc()
}

func (po *PrometheusObserver) ObserveFault(event ErrorEvent) {
	basis := "false"
	if event.BasisChange {
		basis = "true"
	}

	po.faults.WithLabelValues(event.Call.Kind.String(), event.Pauli.String(), basis).Inc()
	po.sites.WithLabelValues(event.Call.Form.String()).Observe(float64(event.Sequence))
}
