package faultsim

import "fmt"

// ErrorPolicy names an ErrorModel strategy in configuration.
type ErrorPolicy string

const (
	// PolicySimple injects a bare X or Z.
	PolicySimple ErrorPolicy = "simple"
	// PolicyCompound injects H followed by X or Z.
	PolicyCompound ErrorPolicy = "compound"
)

// Injection is what an ErrorModel applied to the fault site.
type Injection struct {
	BasisChange bool
	Pauli       Pauli
}

/*
ErrorModel applies a fault to a single qubit through the real, undecorated
engine. Engine errors are returned as they are, together with the part of
the Injection that was attempted.
*/
type ErrorModel interface {
	Inject(qubit Qubit) (Injection, error)
}

/*
SimplePauli draws once and applies X when the draw is below 0.5, Z otherwise.
*/
type SimplePauli struct {
	engine Engine
	rng    RandomSource
}

func NewSimplePauli(engine Engine, rng RandomSource) *SimplePauli {
	return &SimplePauli{engine: engine, rng: rng}
}

func (sp *SimplePauli) Inject(qubit Qubit) (Injection, error) {
	pauli := choosePauli(sp.rng)
	return Injection{Pauli: pauli}, sp.engine.Apply(pauli.Gate(), qubit)
}

/*
CompoundError applies H to the site and then the same 50/50 Pauli choice as
SimplePauli. The H step is deterministic, so it still consumes one draw.
*/
type CompoundError struct {
	engine Engine
	rng    RandomSource
}

func NewCompoundError(engine Engine, rng RandomSource) *CompoundError {
	return &CompoundError{engine: engine, rng: rng}
}

func (ce *CompoundError) Inject(qubit Qubit) (Injection, error) {
	if err := ce.engine.Apply(GateH, qubit); err != nil {
		return Injection{}, err
	}

	pauli := choosePauli(ce.rng)
	return Injection{BasisChange: true, Pauli: pauli}, ce.engine.Apply(pauli.Gate(), qubit)
}

func choosePauli(rng RandomSource) Pauli {
	if rng.Float64() < 0.5 {
		return PauliX
	}
	return PauliZ
}

// NewErrorModel builds the strategy named by policy.
func NewErrorModel(policy ErrorPolicy, engine Engine, rng RandomSource) (ErrorModel, error) {
	switch policy {
	case PolicySimple, "":
		return NewSimplePauli(engine, rng), nil
	case PolicyCompound:
		return NewCompoundError(engine, rng), nil
	default:
		return nil, fmt.Errorf("%w: unknown error policy %q", ErrInvalidConfig, policy)
	}
}
