package rocket_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/launchsim/internal/rocket"
	"github.com/san-kum/launchsim/internal/vec"
)

func TestStaging(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Staging Suite")
}

var _ = Describe("staged flight", func() {
	var r *rocket.Rocket

	newStage := func(cfg rocket.StageConfig) *rocket.Stage {
		s, err := rocket.NewStage(cfg)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	BeforeEach(func() {
		var err error
		r, err = rocket.NewRocket(vec.Zero(), 0.75, 12.0)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.AddStage(newStage(rocket.StageConfig{
			DryMass: 2000, FuelMass: 8000, MaxThrust: 2e5, MaxBurnRate: 80,
		}))).To(Succeed())
		Expect(r.AddStage(newStage(rocket.StageConfig{
			DryMass: 500, FuelMass: 1500, MaxThrust: 4e4, MaxBurnRate: 15,
		}))).To(Succeed())
		Expect(r.AddSRB(newStage(rocket.StageConfig{
			DryMass: 300, FuelMass: 700, MaxThrust: 6e4, MaxBurnRate: 50,
		}))).To(Succeed())
		Expect(r.AddSRB(newStage(rocket.StageConfig{
			DryMass: 300, FuelMass: 700, MaxThrust: 6e4, MaxBurnRate: 50,
		}))).To(Succeed())
	})

	It("sums thrust across the active stage and the booster group", func() {
		Expect(r.AdjustThrottle(100.0)).To(Succeed())
		r.IgniteSRBs()

		Expect(r.TotalThrust().Norm()).To(BeNumerically("~", 2e5+2*6e4, 1e-6))
	})

	It("conserves bulk velocity through every separation", func() {
		r.SetMomentum(vec.New(0, 2.8e6, 0))
		initialVelocity := r.Velocity()

		Expect(r.SeparateSRBs()).To(Succeed())
		Expect(r.Velocity().Sub(initialVelocity).Norm()).To(BeNumerically("<", 1e-9))

		Expect(r.SeparateActiveStage()).To(Succeed())
		Expect(r.Velocity().Sub(initialVelocity).Norm()).To(BeNumerically("<", 1e-9))
		Expect(r.NumStages()).To(Equal(1))
	})

	It("scales momentum by the mass ratio at separation", func() {
		r.SetMomentum(vec.New(1e5, 5e6, 0))
		massBefore := r.TotalMass()
		momentumBefore := r.Momentum().Norm()

		Expect(r.SeparateActiveStage()).To(Succeed())

		want := momentumBefore * r.TotalMass() / massBefore
		Expect(r.Momentum().Norm()).To(BeNumerically("~", want, 1e-6))
	})

	It("keeps total mass non-negative through a full staging sequence", func() {
		Expect(r.SeparateSRBs()).To(Succeed())
		Expect(r.TotalMass()).To(BeNumerically(">", 0))

		Expect(r.SeparateActiveStage()).To(Succeed())
		Expect(r.TotalMass()).To(BeNumerically(">", 0))

		Expect(r.SeparateActiveStage()).To(Succeed())
		Expect(r.TotalMass()).To(BeNumerically(">=", 0))

		Expect(r.SeparateActiveStage()).To(MatchError(rocket.ErrPrecondition))
	})

	It("promotes the next stage after separation", func() {
		first := r.ActiveStage()
		Expect(r.SeparateActiveStage()).To(Succeed())
		Expect(r.ActiveStage()).NotTo(BeIdenticalTo(first))

		Expect(r.AdjustThrottle(100.0)).To(Succeed())
		Expect(r.ActiveStage().CurrentThrust()).To(Equal(4e4))
	})

	It("burns boosters and the active stage together", func() {
		Expect(r.AdjustThrottle(100.0)).To(Succeed())
		r.IgniteSRBs()

		before := r.TotalMass()
		Expect(r.UpdateTotalMass(1.0)).To(Succeed())

		// 80 kg/s core + 2 * 50 kg/s boosters.
		Expect(before - r.TotalMass()).To(BeNumerically("~", 180.0, 1e-9))
	})

	It("evolves attitude in the pitch plane", func() {
		Expect(r.SetRollRate(math.Pi / 2)).To(Succeed())
		r.SetAttitude(1.0)

		Expect(r.Attitude()).To(BeNumerically("~", math.Pi/2, 1e-9))
		Expect(r.Axis().Norm()).To(BeNumerically("~", 1.0, 1e-12))
	})
})
