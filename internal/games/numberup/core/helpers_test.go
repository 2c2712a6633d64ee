package core

import "fmt"

// scriptedSource replays a fixed sequence of samples, cycling when exhausted.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// lowSource always draws the lowest value.
func lowSource() *scriptedSource {
	return &scriptedSource{vals: []float64{0}}
}

// sequentialIDs returns an ID generator producing "id-1", "id-2", ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestMachine builds a machine with deterministic tiles and IDs.
func newTestMachine(opts ...Option) *Machine {
	base := []Option{WithSource(lowSource()), WithIDGenerator(sequentialIDs())}
	return NewMachine(append(base, opts...)...)
}

// load installs a grid and generation state directly, bypassing placements.
func load(m *Machine, g Grid, highest, next int) {
	m.store.Replace(g)
	m.highest = highest
	m.nextTile = next
}
