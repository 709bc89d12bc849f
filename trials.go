package faultsim

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

// EngineFactory builds a fresh host engine for one trial.
type EngineFactory func() Engine

/*
Trial is handed to the circuit of one run. Engine is the undecorated engine
the factory returned, for allocation and readout; gates go through Sim.
*/
type Trial struct {
	Index  int
	Seed   uint64
	Sim    *FaultySimulator
	Engine Engine
}

// Circuit is the code under test, run once per trial on an armed session.
type Circuit func(ctx context.Context, trial *Trial) error

// TrialResult is the outcome of one trial.
type TrialResult struct {
	Index    int
	Seed     uint64
	Session  uuid.UUID
	Fired    bool
	Event    ErrorEvent
	Err      error
	Duration time.Duration
}

/*
Summary aggregates the results of a Run. Sites counts fault sites by qubit
ID, which for engines that allocate deterministically is the position of the
qubit in the circuit.
*/
type Summary struct {
	Results  []TrialResult
	Trials   int
	Faults   int
	Failures int
	Sites    map[int]int
	Paulis   map[Pauli]int
}

// SiteFrequency is the share of fired trials whose fault landed on qubit id.
func (s *Summary) SiteFrequency(id int) float64 {
	if s.Faults == 0 {
		return 0
	}
	return float64(s.Sites[id]) / float64(s.Faults)
}

/*
TrialRunner runs a circuit many times, each run in its own session with its
own engine and its own seed, so parallel runs never share a FaultState or a
RandomSource. Trial i is seeded with the base seed plus i, which makes a
whole Run reproducible for a fixed non-zero Config.Seed.
*/
type TrialRunner struct {
	config  Config
	factory EngineFactory
	opts    []SimulatorOption
}

/*
NewTrialRunner applies opts to every trial's session. Options may add
observers or override session parameters, but the trial seed always wins,
and WithRandomSource is rejected with ErrSharedRandomSource because one
source would be shared by concurrent trials.
*/
func NewTrialRunner(cfg *Config, factory EngineFactory, opts ...SimulatorOption) (*TrialRunner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	check := &simulatorSettings{config: *cfg}
	for _, opt := range opts {
		opt(check)
	}
	if check.rng != nil {
		return nil, ErrSharedRandomSource
	}

	runner := &TrialRunner{
		config:  *cfg,
		factory: factory,
		opts:    opts,
	}

	if runner.config.Seed == 0 {
		runner.config.Seed = uint64(time.Now().UnixNano())
	}

	return runner, nil
}

/*
Run executes n trials, or Config.Trials when n <= 0, with at most
Config.Workers running at once. A circuit error is recorded on its trial and
does not stop the others. Run only fails when ctx is done.
*/
func (tr *TrialRunner) Run(ctx context.Context, n int, circuit Circuit) (*Summary, error) {
	if n <= 0 {
		n = tr.config.Trials
	}

	errnie.Info(
		"TrialRunner.Run - trials %d, workers %d, probability %v, policy %s, seed %d",
		n, tr.config.Workers, tr.config.Probability, tr.config.Policy, tr.config.Seed,
	)

	results := make([]TrialResult, n)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(tr.config.Workers)

	for i := 0; i < n; i++ {
		if gCtx.Err() != nil {
			break
		}

		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = tr.runTrial(gCtx, i, circuit)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return summarize(results), nil
}

func (tr *TrialRunner) runTrial(ctx context.Context, index int, circuit Circuit) TrialResult {
	start := time.Now()
	seed := tr.config.Seed + uint64(index)
	result := TrialResult{Index: index, Seed: seed}

	engine := tr.factory()

	// The per-trial seed goes last so no caller option can replace it.
	opts := append([]SimulatorOption{WithConfig(&tr.config)}, tr.opts...)
	opts = append(opts,
		WithSeed(seed),
		WithObserver(FaultFunc(func(event ErrorEvent) {
			result.Fired = true
			result.Event = event
		})),
	)

	sim, err := NewFaultySimulator(engine, opts...)
	if err != nil {
		result.Err = err
		return result
	}
	result.Session = sim.ID

	sim.Enable()
	result.Err = circuit(ctx, &Trial{
		Index:  index,
		Seed:   seed,
		Sim:    sim,
		Engine: engine,
	})
	sim.Disable()

	result.Duration = time.Since(start)
	return result
}

func summarize(results []TrialResult) *Summary {
	summary := &Summary{
		Results: results,
		Trials:  len(results),
		Sites:   make(map[int]int),
		Paulis:  make(map[Pauli]int),
	}

	for _, r := range results {
		if r.Err != nil {
			summary.Failures++
		}
		if !r.Fired {
			continue
		}
		summary.Faults++
		summary.Sites[r.Event.Site.ID()]++
		summary.Paulis[r.Event.Pauli]++
	}

	return summary
}
