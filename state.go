package faultsim

/*
FaultState is the arming state of a session.

Fired can only become true while Enabled is true. It is cleared when Enabled
goes from false to true, and left alone when the session is disabled, so a
fault that already fired stays spent until the next arming.
*/
type FaultState struct {
	Enabled bool
	Fired   bool
}

// Armed reports whether a fault is still eligible to fire.
func (fs FaultState) Armed() bool {
	return fs.Enabled && !fs.Fired
}
