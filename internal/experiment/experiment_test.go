package experiment_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/dynamo"
	"github.com/san-kum/mira/internal/experiment"
	"github.com/san-kum/mira/internal/physics"
	"github.com/san-kum/mira/internal/sim"
)

func scenarioParams() dynamo.Params {
	return dynamo.Params{
		W:   100,
		P0:  dynamo.Point{X: 5, Y: 0},
		Pre: 10,
		Rep: 1000,
		A:   0.008,
		S:   0.05,
		Mu:  -0.496,
		Pow: 0.2,
	}
}

// constMap sends every point to the same location.
type constMap struct{ p dynamo.Point }

func (c constMap) Step(dynamo.Point) dynamo.Point { return c.p }

var _ = Describe("Experiment", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("rendering the reference scenario", func() {
		var res *experiment.Result

		BeforeEach(func() {
			var err error
			res, err = experiment.Render(ctx, scenarioParams(), experiment.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
		})

		It("produces a square buffer of the configured width", func() {
			Expect(res.Image.Bounds().Dx()).To(Equal(100))
			Expect(res.Image.Bounds().Dy()).To(Equal(100))
			Expect(res.Image.Pix).To(HaveLen(100 * 100))
		})

		It("contains a saturated pixel", func() {
			Expect(res.Image.Pix).To(ContainElement(uint8(255)))
		})

		It("deposits the full mass of every sample", func() {
			Expect(res.Grid.Mass()).To(Equal(res.Grid.Unit * 1000))
		})

		It("maps the densest cell to 255", func() {
			max := res.Grid.Max()
			for i, v := range res.Grid.Cells {
				if v == max {
					Expect(res.Intensity.Pix[i]).To(Equal(uint8(255)))
				}
			}
		})

		It("stores the grid transposed in the image", func() {
			w := res.Intensity.W
			for yBin := 0; yBin < w; yBin++ {
				for xBin := 0; xBin < w; xBin++ {
					Expect(res.Image.Pix[xBin*w+yBin]).To(Equal(res.Intensity.At(yBin, xBin)))
				}
			}
		})

		It("reproduces the identical buffer on a second run", func() {
			again, err := experiment.Render(ctx, scenarioParams(), experiment.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Image.Pix).To(Equal(res.Image.Pix))
		})

		It("reports orbit and density metrics", func() {
			Expect(res.Metrics).To(HaveKey("mean_radius"))
			Expect(res.Metrics).To(HaveKey("max_radius"))
			Expect(res.Metrics["coverage"]).To(BeNumerically(">", 0))
			Expect(res.Metrics["coverage"]).To(BeNumerically("<=", 1))
			Expect(res.Metrics["entropy_bits"]).To(BeNumerically(">", 0))
		})
	})

	Describe("deposit policies and modes", func() {
		It("matches batch output in streaming mode", func() {
			batch, err := experiment.Render(ctx, scenarioParams(), experiment.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			opts := experiment.DefaultOptions()
			opts.Streaming = true
			streamed, err := experiment.Render(ctx, scenarioParams(), opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(streamed.Grid.Cells).To(Equal(batch.Grid.Cells))
			Expect(streamed.Image.Pix).To(Equal(batch.Image.Pix))
			Expect(streamed.Metrics["mean_radius"]).To(BeNumerically("~", batch.Metrics["mean_radius"], 1e-12))
		})

		It("counts visits with nearest-bin deposition", func() {
			opts := experiment.DefaultOptions()
			opts.Density.Policy = density.Nearest
			res, err := experiment.Render(ctx, scenarioParams(), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Grid.Unit).To(Equal(uint64(1)))
			Expect(res.Grid.Mass()).To(Equal(uint64(1000)))
			Expect(res.Image.Pix).To(ContainElement(uint8(255)))
		})

		It("gives the same image for any worker count", func() {
			p := scenarioParams()
			p.Rep = 200000
			serial, err := experiment.Render(ctx, p, experiment.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			opts := experiment.DefaultOptions()
			opts.Density.Workers = 3
			parallel, err := experiment.Render(ctx, p, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(parallel.Image.Pix).To(Equal(serial.Image.Pix))
		})
	})

	Describe("failures", func() {
		DescribeTable("rejects invalid parameters",
			func(mutate func(*dynamo.Params)) {
				p := scenarioParams()
				mutate(&p)
				res, err := experiment.Render(ctx, p, experiment.DefaultOptions())
				Expect(err).To(MatchError(dynamo.ErrConfiguration))
				Expect(res).To(BeNil())
			},
			Entry("zero samples", func(p *dynamo.Params) { p.Rep = 0 }),
			Entry("negative samples", func(p *dynamo.Params) { p.Rep = -1 }),
			Entry("NaN coefficient", func(p *dynamo.Params) { p.Mu = math.NaN() }),
			Entry("infinite coefficient", func(p *dynamo.Params) { p.A = math.Inf(1) }),
			Entry("zero exponent", func(p *dynamo.Params) { p.Pow = 0 }),
		)

		It("rejects a margin below one", func() {
			opts := experiment.DefaultOptions()
			opts.Density.Margin = 0.5
			_, err := experiment.Render(ctx, scenarioParams(), opts)
			Expect(err).To(MatchError(dynamo.ErrConfiguration))
		})

		It("reports a degenerate orbit for a fixed point", func() {
			p := scenarioParams()
			p.A, p.S, p.Mu = 0, 0, 0
			p.P0 = dynamo.Point{}
			p.Pre = 0

			_, err := experiment.Render(ctx, p, experiment.DefaultOptions())
			Expect(err).To(MatchError(dynamo.ErrDegenerateOrbit))
		})

		It("reports a degenerate orbit in streaming mode", func() {
			exp := experiment.New(scenarioParams(), experiment.Options{
				Density:   density.DefaultOptions(),
				Streaming: true,
			})
			Expect(exp.Setup(constMap{dynamo.Point{X: 1, Y: 1}}, nil)).To(Succeed())
			_, err := exp.Run(ctx)
			Expect(err).To(MatchError(dynamo.ErrDegenerateOrbit))
		})

		It("reports numeric divergence", func() {
			p := scenarioParams()
			exp := experiment.New(p, experiment.DefaultOptions())
			Expect(exp.Setup(constMap{dynamo.Point{X: math.Inf(1)}}, nil)).To(Succeed())

			_, err := exp.Run(ctx)
			Expect(err).To(MatchError(dynamo.ErrNumericDivergence))
		})

		It("fails when not set up", func() {
			_, err := experiment.New(scenarioParams(), experiment.DefaultOptions()).Run(ctx)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("observers", func() {
		It("sees every retained point once per pass", func() {
			opts := experiment.DefaultOptions()
			opts.Streaming = true
			exp := experiment.New(scenarioParams(), opts)
			Expect(exp.Setup(physics.NewGumowskiMira(0.008, 0.05, -0.496), nil)).To(Succeed())

			counter := &countingObserver{}
			exp.GetGenerator().AddObserver(counter)

			_, err := exp.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(counter.n).To(Equal(1000 * exp.Passes()))
		})
	})

	Describe("registry", func() {
		It("resolves known metrics", func() {
			r := experiment.NewRegistry()
			ms, err := r.GetMetrics(r.ListMetrics())
			Expect(err).NotTo(HaveOccurred())
			Expect(ms).To(HaveLen(3))
		})

		It("rejects unknown metrics", func() {
			_, err := experiment.NewRegistry().GetMetric("energy")
			Expect(err).To(HaveOccurred())
		})
	})
})

type countingObserver struct{ n int }

func (c *countingObserver) OnStep(dynamo.Point, int) { c.n++ }

var _ sim.Observer = (*countingObserver)(nil)
