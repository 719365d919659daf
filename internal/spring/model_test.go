package spring_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ossian-f/springlab/internal/spring"
)

var _ = Describe("Model construction", func() {
	It("accepts valid raw constants", func() {
		m := spring.New(2, 50, 3)
		Expect(m.Mass).To(Equal(2.0))
		Expect(m.Stiffness).To(Equal(50.0))
		Expect(m.Damping).To(Equal(3.0))
	})

	It("rejects invalid raw constants", func() {
		Expect(func() { spring.New(0, 50, 3) }).To(Panic())
		Expect(func() { spring.New(-1, 50, 3) }).To(Panic())
		Expect(func() { spring.New(1, 0, 3) }).To(Panic())
		Expect(func() { spring.New(1, 50, -0.5) }).To(Panic())
		Expect(func() { spring.New(math.NaN(), 50, 3) }).To(Panic())
	})

	It("rejects invalid design constants", func() {
		Expect(func() { spring.NewFromDesign(-0.1, 1) }).To(Panic())
		Expect(func() { spring.NewFromDesign(0.5, 0) }).To(Panic())
		Expect(func() { spring.NewFromDesign(0.5, -2) }).To(Panic())
	})

	It("allows zero damping", func() {
		m := spring.New(1, 10, 0)
		Expect(m.DampingRatio()).To(BeZero())
	})

	DescribeTable("round-trips design parameters",
		func(ratio, period float64) {
			m := spring.NewFromDesign(ratio, period)
			Expect(m.DampingRatio()).To(BeNumerically("~", ratio, 1e-12))
			Expect(m.FrequencyResponse()).To(BeNumerically("~", period, 1e-12))
		},
		Entry("underdamped", 0.3, 0.5),
		Entry("overlay defaults", 0.75, 0.25),
		Entry("critical", 1.0, 0.8),
		Entry("overdamped", 1.8, 0.4),
		Entry("undamped", 0.0, 1.0),
	)
})

var _ = Describe("Derived quantities", func() {
	DescribeTable("stay in their physical ranges",
		func(mass, stiffness, damping float64) {
			m := spring.New(mass, stiffness, damping)
			Expect(m.DampingRatio()).To(BeNumerically(">=", 0))
			Expect(m.UndampedNaturalFrequency()).To(BeNumerically(">", 0))
			Expect(m.DampedNaturalFrequency()).To(BeNumerically(">=", 0))
			Expect(m.FrequencyResponse()).To(BeNumerically(">", 0))
		},
		Entry("light", 0.1, 5.0, 0.0),
		Entry("unit", 1.0, 100.0, 4.0),
		Entry("heavy", 12.0, 3.0, 20.0),
	)

	It("relates damped and undamped frequencies through the ratio", func() {
		m := spring.NewFromDesign(0.6, 0.5)
		want := m.UndampedNaturalFrequency() * math.Sqrt(1-0.36)
		Expect(m.DampedNaturalFrequency()).To(BeNumerically("~", want, 1e-12))
	})
})

var _ = Describe("Position", func() {
	under := spring.NewFromDesign(0.3, 0.5)
	critical := spring.NewFromDesign(1.0, 0.5)
	over := spring.NewFromDesign(1.8, 0.5)

	DescribeTable("starts exactly at the initial displacement",
		func(m spring.Model) {
			Expect(m.Position(0, 1, 0)).To(BeNumerically("~", 1, 1e-12))
			Expect(m.Position(0, -2.5, 4)).To(BeNumerically("~", -2.5, 1e-12))
			Expect(m.Position(0, 0, 7)).To(BeZero())
		},
		Entry("underdamped", under),
		Entry("critical", critical),
		Entry("overdamped", over),
	)

	DescribeTable("decays to equilibrium",
		func(m spring.Model) {
			Expect(math.Abs(m.Position(20, 1, 3))).To(BeNumerically("<", 1e-6))
		},
		Entry("underdamped", under),
		Entry("critical", critical),
		Entry("overdamped", over),
	)

	It("oscillates only below critical damping", func() {
		crossed := func(m spring.Model) bool {
			prev := m.Position(0, 1, 0)
			for i := 1; i <= 400; i++ {
				cur := m.Position(float64(i)*0.01, 1, 0)
				if prev > 0 && cur < 0 || prev < 0 && cur > 0 {
					return true
				}
				prev = cur
			}
			return false
		}
		Expect(crossed(under)).To(BeTrue())
		Expect(crossed(critical)).To(BeFalse())
		Expect(crossed(over)).To(BeFalse())
	})

	It("is continuous inside the critical tolerance band", func() {
		ref := spring.NewFromDesign(1, 0.3).Position(0.1, 1, -2)
		for _, ratio := range []float64{1 - 1e-7, 1 + 1e-7} {
			got := spring.NewFromDesign(ratio, 0.3).Position(0.1, 1, -2)
			Expect(got).To(BeNumerically("~", ref, 1e-4))
		}
	})

	It("is continuous across the band edges", func() {
		// Just outside the band the under/overdamped formulas take over;
		// their small-ω_d limits must agree with the critical form.
		ref := spring.NewFromDesign(1, 0.3).Position(0.1, 1, -2)
		for _, ratio := range []float64{1 - 1e-5, 1 + 1e-5} {
			got := spring.NewFromDesign(ratio, 0.3).Position(0.1, 1, -2)
			Expect(got).To(BeNumerically("~", ref, 1e-3))
		}
	})
})

var _ = Describe("Velocity", func() {
	DescribeTable("matches the finite difference of Position",
		func(m spring.Model) {
			const h = 1e-7
			for _, t := range []float64{0, 0.05, 0.2, 0.7, 1.5} {
				numeric := (m.Position(t+h, 1, -3) - m.Position(t-h, 1, -3)) / (2 * h)
				Expect(m.Velocity(t, 1, -3)).To(BeNumerically("~", numeric, 1e-3))
			}
		},
		Entry("underdamped", spring.NewFromDesign(0.3, 0.5)),
		Entry("critical", spring.NewFromDesign(1.0, 0.5)),
		Entry("overdamped", spring.NewFromDesign(1.8, 0.5)),
	)

	It("starts at the initial velocity", func() {
		m := spring.NewFromDesign(0.5, 0.4)
		Expect(m.Velocity(0, 1, -3)).To(BeNumerically("~", -3, 1e-12))
		Expect(m.Velocity(0, 0, 8)).To(BeNumerically("~", 8, 1e-12))
	})
})

var _ = Describe("Energy", func() {
	It("decays along a damped trajectory", func() {
		m := spring.NewFromDesign(0.4, 0.5)
		prev := math.Inf(1)
		for _, t := range []float64{0, 0.25, 0.5, 1, 2, 4} {
			e := m.Energy(m.Position(t, 1, 0), m.Velocity(t, 1, 0))
			Expect(e).To(BeNumerically("<=", prev+1e-12))
			prev = e
		}
	})

	It("is conserved without damping", func() {
		m := spring.New(1, 25, 0)
		e0 := m.Energy(1, 0)
		for _, t := range []float64{0.3, 1.1, 2.7} {
			e := m.Energy(m.Position(t, 1, 0), m.Velocity(t, 1, 0))
			Expect(e).To(BeNumerically("~", e0, 1e-9))
		}
	})
})

var _ = Describe("MaxDisplacement", func() {
	DescribeTable("is monotonically non-decreasing in speed",
		func(m spring.Model) {
			prev := 0.0
			for _, v := range []float64{0, 0.5, 1, 5, 20, 400} {
				d := m.MaxDisplacement(v)
				Expect(d).To(BeNumerically(">=", prev))
				prev = d
			}
		},
		Entry("underdamped", spring.NewFromDesign(0.3, 0.5)),
		Entry("critical", spring.NewFromDesign(1.0, 0.5)),
		Entry("overdamped", spring.NewFromDesign(1.8, 0.5)),
	)

	It("ignores the sign of the release", func() {
		m := spring.NewFromDesign(0.75, 0.25)
		Expect(m.MaxDisplacement(-40)).To(BeNumerically("~", m.MaxDisplacement(40), 1e-12))
	})

	It("is zero at rest", func() {
		Expect(spring.NewFromDesign(0.75, 0.25).MaxDisplacement(0)).To(BeZero())
	})

	It("never exceeds the peak the trajectory actually reaches", func() {
		m := spring.NewFromDesign(0.5, 1.0)
		peak := m.MaxDisplacement(5)
		maxSeen := 0.0
		for i := 0; i <= 2000; i++ {
			x := math.Abs(m.Position(float64(i)*0.002, 0, 5))
			if x > maxSeen {
				maxSeen = x
			}
		}
		Expect(peak).To(BeNumerically("~", maxSeen, 1e-3))
	})
})
