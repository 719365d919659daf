package ode

import (
	"testing"

	"github.com/ossian-f/springlab/internal/spring"
)

func BenchmarkEuler(b *testing.B) {
	in := NewEuler()
	sys := Oscillator{Model: spring.NewFromDesign(0.75, 0.25)}
	x := State{1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = in.Step(sys, x, 0, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	in := NewRK4()
	sys := Oscillator{Model: spring.NewFromDesign(0.75, 0.25)}
	x := State{1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = in.Step(sys, x, 0, 0.001)
	}
}

func BenchmarkRK45(b *testing.B) {
	in := NewRK45()
	sys := Oscillator{Model: spring.NewFromDesign(0.75, 0.25)}
	x := State{1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = in.Step(sys, x, 0, 0.001)
	}
}

func BenchmarkVerlet(b *testing.B) {
	in := NewVerlet()
	sys := Oscillator{Model: spring.NewFromDesign(0.75, 0.25)}
	x := State{1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = in.Step(sys, x, 0, 0.001)
	}
}
