package faultsim

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownQubit  = errors.New("faultsim: qubit not allocated by this engine")
	ErrQubitReleased = errors.New("faultsim: qubit already released")
)

// TraceQubit is the handle TraceEngine hands out.
type TraceQubit int

func (q TraceQubit) ID() int {
	return int(q)
}

// Operation is one gate request as the engine received it.
type Operation struct {
	Kind     GateKind
	Form     Form
	Controls []int
	Target   int
}

func (op Operation) String() string {
	if op.Form == FormControlled {
		return fmt.Sprintf("C%s(%v -> %d)", op.Kind, op.Controls, op.Target)
	}
	return fmt.Sprintf("%s(%d)", op.Kind, op.Target)
}

/*
TraceEngine is an in-memory Engine that evolves no state. It records every
gate request in the order it arrived, injected faults included, and every
message forwarded to it. Gates on released or foreign qubits fail, which is
how the engine-side error path is exercised.
*/
type TraceEngine struct {
	mu       sync.Mutex
	next     int
	live     map[TraceQubit]bool
	ops      []Operation
	messages []string
}

func NewTraceEngine() *TraceEngine {
	return &TraceEngine{live: make(map[TraceQubit]bool)}
}

// Allocate returns n fresh qubits.
func (te *TraceEngine) Allocate(n int) []Qubit {
	te.mu.Lock()
	defer te.mu.Unlock()

	qubits := make([]Qubit, n)
	for i := range qubits {
		q := TraceQubit(te.next)
		te.next++
		te.live[q] = true
		qubits[i] = q
	}
	return qubits
}

func (te *TraceEngine) Release(qubits ...Qubit) {
	te.mu.Lock()
	defer te.mu.Unlock()

	for _, q := range qubits {
		if tq, ok := q.(TraceQubit); ok {
			if _, known := te.live[tq]; known {
				te.live[tq] = false
			}
		}
	}
}

func (te *TraceEngine) check(q Qubit) error {
	tq, ok := q.(TraceQubit)
	if !ok {
		return ErrUnknownQubit
	}

	live, known := te.live[tq]
	switch {
	case !known:
		return ErrUnknownQubit
	case !live:
		return ErrQubitReleased
	}
	return nil
}

func (te *TraceEngine) Apply(kind GateKind, qubit Qubit) error {
	te.mu.Lock()
	defer te.mu.Unlock()

	if err := te.check(qubit); err != nil {
		return err
	}

	te.ops = append(te.ops, Operation{Kind: kind, Form: FormPlain, Target: qubit.ID()})
	return nil
}

func (te *TraceEngine) ApplyControlled(kind GateKind, controls []Qubit, target Qubit) error {
	te.mu.Lock()
	defer te.mu.Unlock()

	for _, q := range append(slices.Clone(controls), target) {
		if err := te.check(q); err != nil {
			return err
		}
	}

	te.ops = append(te.ops, Operation{
		Kind:     kind,
		Form:     FormControlled,
		Controls: qubitIDs(controls),
		Target:   target.ID(),
	})
	return nil
}

// Message records a forwarded host message.
func (te *TraceEngine) Message(msg string) error {
	te.mu.Lock()
	defer te.mu.Unlock()

	te.messages = append(te.messages, msg)
	return nil
}

// Operations returns a copy of the operation log.
func (te *TraceEngine) Operations() []Operation {
	te.mu.Lock()
	defer te.mu.Unlock()
	return slices.Clone(te.ops)
}

func (te *TraceEngine) Messages() []string {
	te.mu.Lock()
	defer te.mu.Unlock()
	return slices.Clone(te.messages)
}

// Reset clears both logs, allocations are kept.
func (te *TraceEngine) Reset() {
	te.mu.Lock()
	defer te.mu.Unlock()

	te.ops = nil
	te.messages = nil
}
