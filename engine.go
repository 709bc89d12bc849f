package faultsim

import "fmt"

// GateKind is one of the gates the fault layer intercepts.
type GateKind int

const (
	GateH GateKind = iota
	GateX
	GateZ
)

func (k GateKind) String() string {
	switch k {
	case GateH:
		return "H"
	case GateX:
		return "X"
	case GateZ:
		return "Z"
	default:
		return fmt.Sprintf("GateKind(%d)", int(k))
	}
}

// Form distinguishes a plain gate from its controlled version.
type Form int

const (
	FormPlain Form = iota
	FormControlled
)

func (f Form) String() string {
	if f == FormControlled {
		return "controlled"
	}
	return "plain"
}

// Pauli is the error injected on a fault site.
type Pauli int

const (
	PauliX Pauli = iota
	PauliZ
)

func (p Pauli) String() string {
	if p == PauliZ {
		return "Z"
	}
	return "X"
}

// Gate returns the engine gate that applies this Pauli.
func (p Pauli) Gate() GateKind {
	if p == PauliZ {
		return GateZ
	}
	return GateX
}

/*
Engine is the gate-application capability of the host quantum engine. The
fault layer decorates it and never reimplements it: state storage, amplitude
arithmetic and qubit allocation stay on the engine side.

Both methods must be safe to call twice in a row on the same qubit, once for
the injected error and once for the requested gate.
*/
type Engine interface {
	Apply(kind GateKind, qubit Qubit) error
	ApplyControlled(kind GateKind, controls []Qubit, target Qubit) error
}

/*
MessageHandler is the host's generic string-message dispatch hook. Engines
that implement it receive every message the fault layer does not consume.
*/
type MessageHandler interface {
	Message(msg string) error
}

// MessageHandlerFunc adapts a function to MessageHandler.
type MessageHandlerFunc func(msg string) error

func (f MessageHandlerFunc) Message(msg string) error {
	return f(msg)
}

/*
GateCall describes one intercepted invocation. It lives for the duration of
the interception and is handed to observers by value.
*/
type GateCall struct {
	Kind     GateKind
	Form     Form
	Target   Qubit
	Controls []Qubit
}

func (gc GateCall) String() string {
	if gc.Form == FormControlled {
		return fmt.Sprintf("C%s(%v -> %d)", gc.Kind, qubitIDs(gc.Controls), gc.Target.ID())
	}
	return fmt.Sprintf("%s(%d)", gc.Kind, gc.Target.ID())
}
