package playback_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
	"github.com/sebastiengilbert73/auto-pde/internal/playback"
)

// fakeScheduler counts arm/disarm calls so the single-timer invariant can be
// checked: arms and disarms must always balance to zero or one.
type fakeScheduler struct {
	arms, disarms int
	period        time.Duration
}

func (s *fakeScheduler) Arm(p time.Duration) {
	s.arms++
	s.period = p
}

func (s *fakeScheduler) Disarm() { s.disarms++ }

func (s *fakeScheduler) outstanding() int { return s.arms - s.disarms }

func twoFrameDataset() *dataset.Dataset {
	ds, err := dataset.New(
		[]float64{0, 1}, []float64{0, 1}, []float64{0, 1},
		[][][]float64{
			{{0, 1}, {1, 0}},
			{{2, 3}, {3, 2}},
		})
	Expect(err).NotTo(HaveOccurred())
	return ds
}

func flatSingleFrameDataset() *dataset.Dataset {
	ds, err := dataset.New(
		[]float64{0, 1}, []float64{0, 1}, []float64{0},
		[][][]float64{{{0, 0}, {0, 0}}})
	Expect(err).NotTo(HaveOccurred())
	return ds
}

var _ = Describe("Controller", func() {
	var (
		sched *fakeScheduler
		ctrl  *playback.Controller
	)

	BeforeEach(func() {
		sched = &fakeScheduler{}
		ctrl = playback.NewController(sched)
		ctrl.Load(twoFrameDataset())
	})

	It("starts paused at frame 0", func() {
		Expect(ctrl.Playing()).To(BeFalse())
		Expect(ctrl.Frame()).To(Equal(0))
		Expect(sched.outstanding()).To(Equal(0))
	})

	Describe("Play", func() {
		It("arms the timer at the fixed period", func() {
			ctrl.Play()
			Expect(ctrl.Playing()).To(BeTrue())
			Expect(sched.arms).To(Equal(1))
			Expect(sched.period).To(Equal(playback.TickPeriod))
		})

		It("is idempotent", func() {
			ctrl.Play()
			ctrl.Play()
			ctrl.Play()
			Expect(sched.arms).To(Equal(1))
			Expect(sched.outstanding()).To(Equal(1))
		})
	})

	Describe("Tick", func() {
		It("advances and wraps past the last frame", func() {
			ctrl.Play()
			ctrl.Tick()
			Expect(ctrl.Frame()).To(Equal(1))
			ctrl.Tick()
			Expect(ctrl.Frame()).To(Equal(0))
		})

		It("advances (i + N) mod nf over N ticks", func() {
			ctrl.Play()
			for i := 0; i < 7; i++ {
				ctrl.Tick()
			}
			Expect(ctrl.Frame()).To(Equal(7 % 2))
		})

		It("is ignored while paused", func() {
			ctrl.Tick()
			Expect(ctrl.Frame()).To(Equal(0))
		})

		It("leaves a single-frame dataset at frame 0", func() {
			ctrl.Load(flatSingleFrameDataset())
			ctrl.Play()
			for i := 0; i < 5; i++ {
				ctrl.Tick()
			}
			Expect(ctrl.Frame()).To(Equal(0))
		})
	})

	Describe("Pause", func() {
		It("disarms the timer", func() {
			ctrl.Play()
			ctrl.Pause()
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(sched.outstanding()).To(Equal(0))
		})

		It("is idempotent", func() {
			ctrl.Play()
			ctrl.Pause()
			ctrl.Pause()
			Expect(sched.disarms).To(Equal(1))
		})
	})

	Describe("Toggle", func() {
		It("applied twice restores the playing state", func() {
			ctrl.Toggle()
			Expect(ctrl.Playing()).To(BeTrue())
			ctrl.Toggle()
			Expect(ctrl.Playing()).To(BeFalse())

			ctrl.Play()
			ctrl.Toggle()
			ctrl.Toggle()
			Expect(ctrl.Playing()).To(BeTrue())
		})
	})

	Describe("Seek", func() {
		It("always stops playback", func() {
			ctrl.Play()
			ctrl.Seek(1)
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(ctrl.Frame()).To(Equal(1))
			Expect(sched.outstanding()).To(Equal(0))
		})

		It("clamps out-of-range indices silently", func() {
			ctrl.Seek(99)
			Expect(ctrl.Frame()).To(Equal(1))
			ctrl.Seek(-5)
			Expect(ctrl.Frame()).To(Equal(0))
		})

		It("steps relative to the current frame", func() {
			ctrl.Step(1)
			Expect(ctrl.Frame()).To(Equal(1))
			ctrl.Step(10)
			Expect(ctrl.Frame()).To(Equal(1))
			ctrl.Step(-1)
			Expect(ctrl.Frame()).To(Equal(0))
		})
	})

	Describe("Load", func() {
		It("cancels the outstanding tick and resets state", func() {
			ctrl.Play()
			ctrl.Seek(1)
			ctrl.Load(flatSingleFrameDataset())
			Expect(ctrl.Playing()).To(BeFalse())
			Expect(ctrl.Frame()).To(Equal(0))
			Expect(sched.outstanding()).To(Equal(0))
		})

		It("recomputes bounds for the new dataset", func() {
			Expect(ctrl.Bounds().ZMax).To(Equal(3.0))
			ctrl.Load(flatSingleFrameDataset())
			Expect(ctrl.Bounds().ZMax).To(Equal(0.0))
			Expect(ctrl.Bounds().Padding).To(Equal(0.1))
		})
	})

	Describe("Close", func() {
		It("disarms before returning", func() {
			ctrl.Play()
			ctrl.Close()
			Expect(sched.outstanding()).To(Equal(0))
			Expect(ctrl.Dataset()).To(BeNil())
		})
	})

	It("never holds more than one armed tick across any op sequence", func() {
		ops := []func(){
			ctrl.Play, ctrl.Toggle, ctrl.Pause, ctrl.Play,
			func() { ctrl.Seek(1) }, ctrl.Toggle, ctrl.Play,
			func() { ctrl.Load(twoFrameDataset()) }, ctrl.Play, ctrl.Toggle,
		}
		for _, op := range ops {
			op()
			Expect(sched.outstanding()).To(BeNumerically("<=", 1))
			Expect(sched.outstanding()).To(BeNumerically(">=", 0))
		}
		ctrl.Close()
		Expect(sched.outstanding()).To(Equal(0))
	})

	It("projects the current frame against fixed bounds", func() {
		ctrl.Seek(1)
		s := ctrl.Surface()
		Expect(s.Grid[0][1]).To(Equal(3.0))
		Expect(s.ZSpan.Min).To(BeNumerically("~", -0.3, 1e-12))
		Expect(s.ZSpan.Max).To(BeNumerically("~", 3.3, 1e-12))
	})
})
