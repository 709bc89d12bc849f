package faultsim

import (
	"github.com/google/uuid"
)

type simulatorSettings struct {
	config    Config
	rng       RandomSource
	observers []Observer
	next      MessageHandler
	nextSet   bool
}

// SimulatorOption configures a FaultySimulator.
type SimulatorOption func(*simulatorSettings)

// WithConfig replaces the defaults of NewConfig.
func WithConfig(cfg *Config) SimulatorOption {
	return func(s *simulatorSettings) {
		s.config = *cfg
	}
}

func WithProbability(p float64) SimulatorOption {
	return func(s *simulatorSettings) {
		s.config.Probability = p
	}
}

func WithPolicy(policy ErrorPolicy) SimulatorOption {
	return func(s *simulatorSettings) {
		s.config.Policy = policy
	}
}

func WithSeed(seed uint64) SimulatorOption {
	return func(s *simulatorSettings) {
		s.config.Seed = seed
	}
}

// WithRandomSource overrides the seeded source built from the config.
func WithRandomSource(rng RandomSource) SimulatorOption {
	return func(s *simulatorSettings) {
		s.rng = rng
	}
}

func WithObserver(obs Observer) SimulatorOption {
	return func(s *simulatorSettings) {
		s.observers = append(s.observers, obs)
	}
}

/*
WithMessageHandler sets where unrecognised messages go. By default they go to
the engine when it implements MessageHandler.
*/
func WithMessageHandler(next MessageHandler) SimulatorOption {
	return func(s *simulatorSettings) {
		s.next = next
		s.nextSet = true
	}
}

/*
FaultySimulator is one fault-injection session over a host engine. It
implements Engine itself, so circuit code can use it wherever it would use
the undecorated engine, and MessageHandler, so the control messages reach it
through the host's message path.

A session owns its FaultController and RandomSource. Sessions must not share
them; run concurrent trials on separate sessions.
*/
type FaultySimulator struct {
	ID uuid.UUID

	engine     Engine
	config     Config
	controller *FaultController
	channel    *ControlChannel
	metrics    *Metrics
	inj        *injector
	gates      map[GateKind]*GateInterceptor
}

func NewFaultySimulator(engine Engine, opts ...SimulatorOption) (*FaultySimulator, error) {
	settings := &simulatorSettings{config: *NewConfig()}
	for _, opt := range opts {
		opt(settings)
	}

	if err := settings.config.validateSession(); err != nil {
		return nil, err
	}

	rng := settings.rng
	if rng == nil {
		rng = NewRandomSource(settings.config.Seed)
	}

	model, err := NewErrorModel(settings.config.Policy, engine, rng)
	if err != nil {
		return nil, err
	}

	next := settings.next
	if !settings.nextSet {
		if handler, ok := engine.(MessageHandler); ok {
			next = handler
		}
	}

	sim := &FaultySimulator{
		ID:         uuid.New(),
		engine:     engine,
		config:     settings.config,
		controller: NewFaultController(rng),
		metrics:    newMetrics(),
		gates:      make(map[GateKind]*GateInterceptor, 3),
	}

	sim.channel = NewControlChannel(sim.controller, next)
	sim.inj = &injector{
		session:     sim.ID,
		probability: settings.config.Probability,
		controller:  sim.controller,
		selector:    NewTargetSelector(rng),
		model:       model,
		observers:   append([]Observer{sim.metrics}, settings.observers...),
	}

	for _, kind := range []GateKind{GateH, GateX, GateZ} {
		sim.gates[kind] = sim.Intercept(kind)
	}

	return sim, nil
}

/*
Intercept wraps one gate kind of the session's engine in its fault logic. The
returned interceptor shares the session's arming with every other gate.
*/
func (sim *FaultySimulator) Intercept(kind GateKind) *GateInterceptor {
	return &GateInterceptor{kind: kind, engine: sim.engine, inj: sim.inj}
}

// Gate returns the interceptor for kind, nil for a gate that is not decorated.
func (sim *FaultySimulator) Gate(kind GateKind) *GateInterceptor {
	return sim.gates[kind]
}

// Apply runs a plain gate. Kinds without an interceptor go straight to the engine.
func (sim *FaultySimulator) Apply(kind GateKind, qubit Qubit) error {
	if gate, ok := sim.gates[kind]; ok {
		return gate.Apply(qubit)
	}
	return sim.engine.Apply(kind, qubit)
}

func (sim *FaultySimulator) ApplyControlled(kind GateKind, controls []Qubit, target Qubit) error {
	if gate, ok := sim.gates[kind]; ok {
		return gate.ApplyControlled(controls, target)
	}
	return sim.engine.ApplyControlled(kind, controls, target)
}

func (sim *FaultySimulator) H(q Qubit) error { return sim.Apply(GateH, q) }
func (sim *FaultySimulator) X(q Qubit) error { return sim.Apply(GateX, q) }
func (sim *FaultySimulator) Z(q Qubit) error { return sim.Apply(GateZ, q) }

func (sim *FaultySimulator) CH(controls []Qubit, target Qubit) error {
	return sim.ApplyControlled(GateH, controls, target)
}

func (sim *FaultySimulator) CX(controls []Qubit, target Qubit) error {
	return sim.ApplyControlled(GateX, controls, target)
}

func (sim *FaultySimulator) CZ(controls []Qubit, target Qubit) error {
	return sim.ApplyControlled(GateZ, controls, target)
}

// Message delivers a host message through the ControlChannel.
func (sim *FaultySimulator) Message(msg string) error {
	return sim.channel.Message(msg)
}

// Enable is shorthand for the "FaultyEnabled" message.
func (sim *FaultySimulator) Enable() {
	sim.controller.SetEnabled(true)
}

// Disable is shorthand for the "FaultyDisabled" message.
func (sim *FaultySimulator) Disable() {
	sim.controller.SetEnabled(false)
}

func (sim *FaultySimulator) State() FaultState {
	return sim.controller.State()
}

func (sim *FaultySimulator) Config() Config {
	return sim.config
}

func (sim *FaultySimulator) Metrics() *Metrics {
	return sim.metrics
}
