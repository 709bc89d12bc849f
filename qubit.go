package faultsim

/*
Qubit is an opaque handle to one register element of the host engine.

The engine allocates and frees handles. This package never creates, copies or
releases a qubit; it receives handles as call parameters and passes them back
to the engine. Implementations must be comparable, since fault sites are
compared by identity and used as map keys in trial summaries.
*/
type Qubit interface {
	ID() int
}

// qubitIDs is used for log lines only.
func qubitIDs(qubits []Qubit) []int {
	ids := make([]int, len(qubits))
	for i, q := range qubits {
		ids[i] = q.ID()
	}
	return ids
}
