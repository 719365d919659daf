package spring_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ossian-f/springlab/internal/spring"
)

var _ = Describe("RelativeVelocity", func() {
	// Soft enough that a 5 unit/s release flings the value well past the
	// 2*epsilon threshold used by the coincident branch.
	soft := spring.NewFromDesign(0.5, 1.0)

	It("divides velocity by the remaining distance", func() {
		cur := 0.0
		rel := soft.RelativeVelocity(50, &cur, 100, 0.1)
		Expect(rel).To(BeNumerically("~", 0.5, 1e-12))
		Expect(cur).To(BeZero())
	})

	It("nudges a coincident start forward for a positive velocity", func() {
		cur := 10.0
		rel := soft.RelativeVelocity(5, &cur, 10, 0.1)
		Expect(cur).To(BeNumerically("~", 10.1, 1e-12))
		Expect(rel).To(BeNumerically("~", -50, 1e-9))
	})

	It("nudges a coincident start backward for a negative velocity", func() {
		cur := 10.0
		rel := soft.RelativeVelocity(-5, &cur, 10, 0.1)
		Expect(cur).To(BeNumerically("~", 9.9, 1e-12))
		Expect(rel).To(BeNumerically("~", -50, 1e-9))
	})

	It("swallows a negligible velocity at a coincident start", func() {
		cur := 10.0
		rel := soft.RelativeVelocity(1e-9, &cur, 10, 0.1)
		Expect(rel).To(BeZero())
		Expect(cur).To(Equal(10.0))
	})

	It("treats endpoints within epsilon as coincident", func() {
		cur := 10.0
		rel := soft.RelativeVelocity(5, &cur, 10.05, 0.1)
		Expect(cur).To(BeNumerically("~", 10.15, 1e-12))
		Expect(rel).To(BeNumerically("~", 5/(10.05-10.15), 1e-9))
	})

	DescribeTable("rejects a non-positive epsilon",
		func(epsilon float64) {
			cur := 0.0
			Expect(func() { soft.RelativeVelocity(1, &cur, 1, epsilon) }).To(Panic())
		},
		Entry("zero", 0.0),
		Entry("negative", -0.1),
		Entry("NaN", math.NaN()),
	)
})

var _ = Describe("Timing packaging", func() {
	m := spring.NewFromDesign(0.75, 0.25)

	It("carries the model constants unchanged", func() {
		tp := m.TimingWithVelocity(spring.Vec2{X: 2, Y: -3})
		Expect(tp.Mass).To(Equal(m.Mass))
		Expect(tp.Stiffness).To(Equal(m.Stiffness))
		Expect(tp.Damping).To(Equal(m.Damping))
		Expect(tp.InitialVelocity).To(Equal(spring.Vec2{X: 2, Y: -3}))
	})

	It("broadcasts a scalar velocity to both axes", func() {
		tp := m.TimingWithScalarVelocity(1.5)
		Expect(tp.InitialVelocity.X).To(Equal(1.5))
		Expect(tp.InitialVelocity.Y).To(Equal(1.5))
	})
})

var _ = Describe("Fit", func() {
	soft := spring.NewFromDesign(0.5, 1.0)

	It("broadcasts the fitted scalar velocity", func() {
		cur := 0.0
		tp := soft.Fit(50, &cur, 100, 0.1)
		Expect(tp.InitialVelocity.X).To(BeNumerically("~", 0.5, 1e-12))
		Expect(tp.InitialVelocity.Y).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("fits each axis of a point independently", func() {
		cur := spring.Point{X: 0, Y: 50}
		tp := soft.FitPoint(spring.Vec2{X: 50, Y: -25}, &cur, spring.Point{X: 100, Y: 0}, 0.1)
		Expect(tp.InitialVelocity.X).To(BeNumerically("~", 0.5, 1e-12))
		Expect(tp.InitialVelocity.Y).To(BeNumerically("~", 0.5, 1e-12))
		Expect(cur).To(Equal(spring.Point{X: 0, Y: 50}))
	})

	It("derives the automatic epsilon from the release speed", func() {
		cur := 10.0
		tp := soft.FitAuto(5, &cur, 10)
		Expect(cur).To(BeNumerically("~", 10.005, 1e-12))
		Expect(tp.InitialVelocity.X).To(BeNumerically("~", -1000, 1e-6))
	})

	It("rejects a zero velocity in automatic mode", func() {
		cur := 10.0
		Expect(func() { soft.FitAuto(0, &cur, 10) }).To(Panic())
	})

	It("uses one physical pixel as epsilon on a scaled display", func() {
		cur := 10.0
		tp := soft.FitPixel(20, &cur, 10, 2)
		Expect(cur).To(BeNumerically("~", 10.5, 1e-12))
		Expect(tp.InitialVelocity.X).To(BeNumerically("~", -40, 1e-9))
	})

	It("clamps display scales below one", func() {
		cur := 10.0
		tp := soft.FitPixel(30, &cur, 10, 0.5)
		Expect(cur).To(BeNumerically("~", 11, 1e-12))
		Expect(tp.InitialVelocity.X).To(BeNumerically("~", -30, 1e-9))
	})
})

var _ = Describe("Corner release", func() {
	It("fits a fling at an already-snapped corner", func() {
		m := spring.NewFromDesign(0.75, 0.25)
		velocity := spring.Vec2{X: 800, Y: -200}
		cur := spring.Point{X: 300, Y: 700}
		target := spring.Point{X: 300, Y: 700}

		tp := m.FitPointAuto(velocity, &cur, target)

		eps := 1e-3 * velocity.Norm()
		Expect(cur.X).To(BeNumerically("~", 300+eps, 1e-12))
		Expect(cur.Y).To(BeNumerically("~", 700-eps, 1e-12))

		rel := tp.InitialVelocity
		Expect(math.IsNaN(rel.X)).To(BeFalse())
		Expect(math.IsNaN(rel.Y)).To(BeFalse())
		Expect(math.IsInf(rel.X, 0)).To(BeFalse())
		Expect(math.IsInf(rel.Y, 0)).To(BeFalse())

		// The nudge always lands the start ahead of the target in the
		// direction of motion, so the spring pulls back on both axes.
		Expect(rel.X).To(BeNumerically("~", -800/eps, 1e-6))
		Expect(rel.Y).To(BeNumerically("~", -200/eps, 1e-6))
	})
})
