package spring_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ossian-f/springlab/internal/spring"
)

var _ = Describe("Geometry", func() {
	It("measures vector magnitude", func() {
		Expect(spring.Vec2{X: 3, Y: 4}.Norm()).To(BeNumerically("~", 5, 1e-12))
		Expect(spring.Vec2{}.Norm()).To(BeZero())
	})

	It("scales vectors componentwise", func() {
		v := spring.Vec2{X: 3, Y: -4}.Scale(-2)
		Expect(v).To(Equal(spring.Vec2{X: -6, Y: 8}))
	})

	It("subtracts points into displacement vectors", func() {
		d := spring.Point{X: 5, Y: 1}.Sub(spring.Point{X: 2, Y: 4})
		Expect(d).To(Equal(spring.Vec2{X: 3, Y: -3}))
	})

	It("measures point distance", func() {
		Expect(spring.Point{X: 1, Y: 1}.Distance(spring.Point{X: 4, Y: 5})).To(BeNumerically("~", 5, 1e-12))
	})
})
