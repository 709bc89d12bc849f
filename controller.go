package faultsim

import (
	"sync"

	"github.com/theapemachine/errnie"
)

/*
FaultController owns the FaultState of one session and answers the single
question "should a fault fire now?". It holds a reference to the session's
RandomSource, it does not own it.
*/
type FaultController struct {
	mu    sync.Mutex
	state FaultState
	rng   RandomSource
}

// NewFaultController returns a disarmed controller drawing from rng.
func NewFaultController(rng RandomSource) *FaultController {
	return &FaultController{rng: rng}
}

/*
SetEnabled arms or pauses fault injection. Enabling always clears Fired, also
when the controller was already enabled, so every "FaultyEnabled" re-arms
exactly one future fault. Disabling leaves Fired as it is.
*/
func (fc *FaultController) SetEnabled(enabled bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.state.Enabled = enabled
	if enabled {
		fc.state.Fired = false
	}

	errnie.Info("FaultController.SetEnabled - enabled %v, fired %v", fc.state.Enabled, fc.state.Fired)
}

/*
MaybeFire returns true at most once per arming. A draw is taken from the
RandomSource whenever the controller is armed, whatever the outcome; a
disabled or spent controller returns false without drawing.
*/
func (fc *FaultController) MaybeFire(probability float64) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if !fc.state.Armed() {
		return false
	}

	if fc.rng.Float64() >= probability {
		return false
	}

	fc.state.Fired = true
	return true
}

// State returns a snapshot of the flags.
func (fc *FaultController) State() FaultState {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state
}
