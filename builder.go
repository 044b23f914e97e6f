package traffix

import "github.com/anggasct/traffix/pkg/builders"

// Build creates a simulation from a builder and attaches its observers
func Build(b *builders.SimulationBuilder) (*Simulation, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}

	sim, err := New(cfg)
	if err != nil {
		return nil, err
	}
	for _, observer := range b.Observers() {
		sim.AddObserver(observer)
	}
	return sim, nil
}
