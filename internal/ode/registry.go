package ode

import (
	"fmt"
	"sort"
)

var integrators = map[string]func() Integrator{
	"euler":  func() Integrator { return NewEuler() },
	"rk4":    func() Integrator { return NewRK4() },
	"rk45":   func() Integrator { return NewRK45() },
	"verlet": func() Integrator { return NewVerlet() },
}

// New builds the named integrator. Valid names are listed by Names.
func New(name string) (Integrator, error) {
	fn, ok := integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(integrators))
	for name := range integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
