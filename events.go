package faultsim

import (
	"time"

	"github.com/google/uuid"
)

/*
ErrorEvent records that a Pauli was applied to a qubit because a fault fired.
Sequence is the 1-based ordinal of the intercepted gate call within the
session, so a harness can tell where in the circuit the fault landed.

Err is set when the engine rejected the injection. BasisChange then reports
whether H had already been applied, and Pauli is the one that was attempted.
*/
type ErrorEvent struct {
	ID          uuid.UUID
	Session     uuid.UUID
	Call        GateCall
	Site        Qubit
	BasisChange bool
	Pauli       Pauli
	Sequence    uint64
	InjectedAt  time.Time
	Err         error
}

/*
Observer receives every fault that fired and every gate the engine executed.
Callbacks run synchronously on the gate path, in call order. ObserveFault
for a call always precedes its ObserveGate, and ObserveGate is skipped for a
call the engine rejected.
*/
type Observer interface {
	ObserveGate(call GateCall)
	ObserveFault(event ErrorEvent)
}

// FaultFunc is an Observer interested only in faults.
type FaultFunc func(event ErrorEvent)

func (f FaultFunc) ObserveGate(GateCall) {}

func (f FaultFunc) ObserveFault(event ErrorEvent) {
	f(event)
}
