package faultsim

import (
	"sync"
	"time"
)

/*
Metrics counts what one session did. GateCalls and TotalCalls count gates
the engine executed, not calls it rejected. Every FaultySimulator carries one
as its first observer.
*/
type Metrics struct {
	mu sync.RWMutex

	GateCalls     map[string]int64
	TotalCalls    int64
	Faults        int64
	FaultsByPauli map[Pauli]int64
	BasisChanges  int64
	LastFault     time.Time

	// Faults the engine rejected, included in Faults.
	FailedInjections int64

	// Sequence of the most recent fault, 0 when none fired.
	LastFaultSequence uint64
}

func newMetrics() *Metrics {
	return &Metrics{
		GateCalls:     make(map[string]int64),
		FaultsByPauli: make(map[Pauli]int64),
	}
}

func (m *Metrics) ObserveGate(call GateCall) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GateCalls[metricKey(call)]++
	m.TotalCalls++
}

func (m *Metrics) ObserveFault(event ErrorEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Faults++
	if event.Err != nil {
		m.FailedInjections++
	}
	m.FaultsByPauli[event.Pauli]++
	if event.BasisChange {
		m.BasisChanges++
	}
	m.LastFault = event.InjectedAt
	m.LastFaultSequence = event.Sequence
}

func metricKey(call GateCall) string {
	if call.Form == FormControlled {
		return "c" + call.Kind.String()
	}
	return call.Kind.String()
}

// ExportMetrics returns a snapshot suitable for logging or JSON encoding.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make(map[string]int64, len(m.GateCalls))
	for k, v := range m.GateCalls {
		calls[k] = v
	}

	return map[string]interface{}{
		"gate_calls":          calls,
		"total_calls":         m.TotalCalls,
		"faults":              m.Faults,
		"faults_x":            m.FaultsByPauli[PauliX],
		"faults_z":            m.FaultsByPauli[PauliZ],
		"basis_changes":       m.BasisChanges,
		"failed_injections":   m.FailedInjections,
		"last_fault_sequence": m.LastFaultSequence,
	}
}
