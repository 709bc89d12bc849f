package faultsim

// scriptedSource replays fixed draws and counts how many were taken.
type scriptedSource struct {
	floats     []float64
	ints       []int
	floatDraws int
	intDraws   int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[s.floatDraws%len(s.floats)]
	s.floatDraws++
	return v
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[s.intDraws%len(s.ints)] % n
	s.intDraws++
	return v
}

// rejectingEngine is a TraceEngine that refuses one plain gate kind.
type rejectingEngine struct {
	*TraceEngine
	reject GateKind
	err    error
}

func (re *rejectingEngine) Apply(kind GateKind, qubit Qubit) error {
	if kind == re.reject {
		return re.err
	}
	return re.TraceEngine.Apply(kind, qubit)
}
