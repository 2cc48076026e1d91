package analysis

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
)

var _ = Describe("Convergence", func() {
	var (
		registry *problems.Registry
		decay    *problems.Problem
	)

	BeforeEach(func() {
		registry = problems.NewRegistry()
		var err error
		decay, err = registry.Get("decay")
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("observed order on dx/dt = -x",
		func(name string, order float64) {
			m, err := ode.Lookup(name)
			Expect(err).NotTo(HaveOccurred())

			pts, err := Convergence(m, decay, Refinements(11, 3))
			Expect(err).NotTo(HaveOccurred())
			Expect(pts).To(HaveLen(3))

			for i := 1; i < len(pts); i++ {
				Expect(pts[i].Error).To(BeNumerically("<", pts[i-1].Error))
				Expect(pts[i].H).To(BeNumerically("~", pts[i-1].H/2, 1e-12))
			}
			for _, p := range ObservedOrder(pts) {
				Expect(p).To(BeNumerically("~", order, 0.15))
			}
		},
		Entry("euler is first order", "euler", 1.0),
		Entry("rk2 is second order", "rk2", 2.0),
		Entry("rk4 is fourth order", "rk4", 4.0),
	)

	It("matches the expected endpoint errors", func() {
		m, err := ode.Lookup("euler")
		Expect(err).NotTo(HaveOccurred())

		pts, err := Convergence(m, decay, []int{11, 21})
		Expect(err).NotTo(HaveOccurred())
		Expect(pts[0].Points).To(Equal(11))
		Expect(pts[0].Error).To(BeNumerically("~", 0.019201001, 1e-8))
		Expect(pts[1].Error).To(BeNumerically("~", 0.009393519, 1e-8))
	})

	It("rejects problems without an exact solution", func() {
		forced, err := registry.Get("cubic_forced")
		Expect(err).NotTo(HaveOccurred())

		_, err = Convergence(ode.Methods()[0], forced, []int{11, 21})
		Expect(err).To(HaveOccurred())
	})

	It("surfaces short grids", func() {
		_, err := Convergence(ode.Methods()[2], decay, []int{1})
		Expect(err).To(MatchError(ode.ErrShortGrid))
	})

	Describe("ObservedOrder", func() {
		It("needs at least two points", func() {
			Expect(ObservedOrder(nil)).To(BeNil())
			Expect(ObservedOrder([]ConvergencePoint{{H: 0.1, Error: 1}})).To(BeNil())
		})

		It("yields NaN for exact results", func() {
			orders := ObservedOrder([]ConvergencePoint{{H: 0.1, Error: 0}, {H: 0.05, Error: 0}})
			Expect(orders).To(HaveLen(1))
			Expect(math.IsNaN(orders[0])).To(BeTrue())
		})
	})

	Describe("Refinements", func() {
		It("halves the step at every level", func() {
			Expect(Refinements(11, 4)).To(Equal([]int{11, 21, 41, 81}))
			Expect(Refinements(1, 3)).To(BeNil())
			Expect(Refinements(5, 0)).To(BeNil())
		})
	})
})

var _ = Describe("Compare", func() {
	It("ranks the methods by accuracy and counts evaluations", func() {
		p, err := problems.NewRegistry().Get("decay")
		Expect(err).NotTo(HaveOccurred())
		grid := p.Grid()

		results, err := Compare(ode.Methods(), p, grid, p.X0)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))

		steps := int64(len(grid) - 1)
		Expect(results[0].Evaluations).To(Equal(1 * steps))
		Expect(results[1].Evaluations).To(Equal(2 * steps))
		Expect(results[2].Evaluations).To(Equal(4 * steps))

		Expect(results[1].Error).To(BeNumerically("<", results[0].Error))
		Expect(results[2].Error).To(BeNumerically("<", results[1].Error))
		Expect(results[2].Final).To(BeNumerically("~", math.Exp(-1), 1e-6))
	})

	It("reports NaN error without an exact solution", func() {
		p, err := problems.NewRegistry().Get("cubic_forced")
		Expect(err).NotTo(HaveOccurred())

		results, err := Compare(ode.Methods(), p, p.Grid(), p.X0)
		Expect(err).NotTo(HaveOccurred())
		for _, r := range results {
			Expect(math.IsNaN(r.Error)).To(BeTrue())
			Expect(r.Trajectory).To(HaveLen(p.Points))
		}
		Expect(results[2].Final).To(BeNumerically("~", -0.64309438, 1e-6))
	})
})
