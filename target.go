package faultsim

/*
TargetSelector picks the fault site for an intercepted gate. For a controlled
gate with N controls every one of the N+1 qubits involved is equally likely.
*/
type TargetSelector struct {
	rng RandomSource
}

func NewTargetSelector(rng RandomSource) *TargetSelector {
	return &TargetSelector{rng: rng}
}

/*
Select returns target for a plain gate without consuming randomness. With
controls it draws idx in [0, len(controls)] and returns target when idx is
the last slot, controls[idx] otherwise.
*/
func (ts *TargetSelector) Select(target Qubit, controls []Qubit) Qubit {
	if len(controls) == 0 {
		return target
	}

	idx := ts.rng.IntN(len(controls) + 1)
	if idx == len(controls) {
		return target
	}

	return controls[idx]
}
