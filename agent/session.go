package agent

// Session is the per-run bookkeeping record. Created when a run starts,
// mutated by the loop on every iteration, and discarded when the run ends;
// the transcript file is the only durable trace.
type Session struct {
	ProjectDirectory string
	TransportMode    string
	IterationCount   int
	MaxIterations    int
}

// Exhausted reports whether the iteration budget is spent.
func (s *Session) Exhausted() bool {
	return s.IterationCount >= s.MaxIterations
}
