package faultsim

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

/*
injector holds what every GateInterceptor of a session shares: the
controller, the selector, the error model and the observers. Interceptors
keep a reference to it, never a copy, so all gate kinds see the same arming.
*/
type injector struct {
	session     uuid.UUID
	probability float64
	controller  *FaultController
	selector    *TargetSelector
	model       ErrorModel
	observers   []Observer
	calls       atomic.Uint64
}

/*
intercept runs the fault decision for one call. When a fault fires the site
is selected and the error model applied before intercept returns, so it is
always in front of the requested gate. A fault the engine rejects is still
reported to observers, with Err set, and the engine error is then returned
unchanged.
*/
func (inj *injector) intercept(call GateCall) error {
	seq := inj.calls.Add(1)

	if !inj.controller.MaybeFire(inj.probability) {
		return nil
	}

	site := inj.selector.Select(call.Target, call.Controls)
	injection, err := inj.model.Inject(site)

	event := ErrorEvent{
		ID:          uuid.New(),
		Session:     inj.session,
		Call:        GateCall{Kind: call.Kind, Form: call.Form, Target: call.Target, Controls: slices.Clone(call.Controls)},
		Site:        site,
		BasisChange: injection.BasisChange,
		Pauli:       injection.Pauli,
		Sequence:    seq,
		InjectedAt:  time.Now(),
		Err:         err,
	}

	errnie.Info(
		"fault injected - session %s, call %d %s, site %d, basis change %v, pauli %s, err %v",
		inj.session, seq, call, site.ID(), injection.BasisChange, injection.Pauli, err,
	)

	for _, obs := range inj.observers {
		obs.ObserveFault(event)
	}

	return err
}

// executed notifies observers of a gate the engine accepted.
func (inj *injector) executed(call GateCall) {
	for _, obs := range inj.observers {
		obs.ObserveGate(call)
	}
}

/*
GateInterceptor decorates one gate kind of the host engine. It composes the
real engine rather than replacing it: after the fault decision the requested
gate is always forwarded unmodified, and whatever the engine returns is
returned to the caller as is. Faults are injected into the same engine.
*/
type GateInterceptor struct {
	kind   GateKind
	engine Engine
	inj    *injector
}

// Kind is the gate this interceptor decorates.
func (gi *GateInterceptor) Kind() GateKind {
	return gi.kind
}

// Apply runs the plain gate on qubit, possibly preceded by a fault on it.
func (gi *GateInterceptor) Apply(qubit Qubit) error {
	call := GateCall{
		Kind:   gi.kind,
		Form:   FormPlain,
		Target: qubit,
	}

	if err := gi.inj.intercept(call); err != nil {
		return err
	}

	if err := gi.engine.Apply(gi.kind, qubit); err != nil {
		return err
	}

	gi.inj.executed(call)
	return nil
}

/*
ApplyControlled runs the controlled gate. A fault, if one fires, lands on the
target or on one of the controls with equal probability.
*/
func (gi *GateInterceptor) ApplyControlled(controls []Qubit, target Qubit) error {
	call := GateCall{
		Kind:     gi.kind,
		Form:     FormControlled,
		Target:   target,
		Controls: controls,
	}

	if err := gi.inj.intercept(call); err != nil {
		return err
	}

	if err := gi.engine.ApplyControlled(gi.kind, controls, target); err != nil {
		return err
	}

	gi.inj.executed(call)
	return nil
}
