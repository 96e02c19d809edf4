package gradient

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var (
	blue   = RGB(0, 0, 1)
	red    = RGB(1, 0, 0)
	yellow = RGB(1, 1, 0)
	green  = RGB(0, 1, 0)
	cyan   = RGB(0, 1, 1)
)

func classicStops() []Stop {
	return []Stop{
		{Offset: 0.3, Color: red},
		{Offset: 0.5, Color: yellow},
		{Offset: 0.7, Color: green},
		{Offset: 0.9, Color: cyan},
	}
}

func mustNew(period float64, stops []Stop, falloff float64) *Gradient {
	g, err := New(period, blue, stops, Black, falloff)
	Expect(err).NotTo(HaveOccurred())
	return g
}

func distance(a, b Color) float64 {
	return math.Max(math.Abs(a.R-b.R), math.Max(math.Abs(a.G-b.G), math.Abs(a.B-b.B)))
}

var _ = Describe("Gradient", func() {
	var g *Gradient

	BeforeEach(func() {
		g = mustNew(100, classicStops(), 10)
	})

	Describe("construction", func() {
		DescribeTable("rejects invalid parameters",
			func(period float64, stops []Stop, falloff float64, want error) {
				_, err := New(period, blue, stops, Black, falloff)
				Expect(err).To(MatchError(want))
			},
			Entry("zero period", 0.0, classicStops(), 10.0, ErrInvalidPeriod),
			Entry("negative period", -5.0, classicStops(), 10.0, ErrInvalidPeriod),
			Entry("NaN period", math.NaN(), classicStops(), 10.0, ErrInvalidPeriod),
			Entry("zero falloff", 100.0, classicStops(), 0.0, ErrInvalidFalloff),
			Entry("stop at zero", 100.0, []Stop{{Offset: 0, Color: red}}, 10.0, ErrStopRange),
			Entry("stop at one", 100.0, []Stop{{Offset: 1, Color: red}}, 10.0, ErrStopRange),
			Entry("descending stops", 100.0, []Stop{{Offset: 0.6, Color: red}, {Offset: 0.4, Color: green}}, 10.0, ErrStopOrder),
			Entry("duplicate stops", 100.0, []Stop{{Offset: 0.5, Color: red}, {Offset: 0.5, Color: green}}, 10.0, ErrStopOrder),
		)

		It("reports the offending stop", func() {
			_, err := New(100, blue, []Stop{{Offset: 0.2, Color: red}, {Offset: 0.1, Color: green}}, Black, 10)
			var se *StopError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Index).To(Equal(1))
			Expect(se.Offset).To(Equal(0.1))
		})

		It("copies the stops it is given", func() {
			stops := classicStops()
			built := mustNew(100, stops, 10)
			stops[0].Color = White
			Expect(built.Stops()[0].Color).To(Equal(red))
		})

		It("accepts a gradient without stops", func() {
			plain := mustNew(10, nil, 1)
			Expect(plain.PeriodColor(0.5)).To(Equal(blue))
		})
	})

	Describe("Color", func() {
		It("returns the final color at the iteration cap", func() {
			for _, max := range []int{0, 1, 50, 100, 1000} {
				Expect(g.Color(max, max)).To(Equal(Black))
			}
		})

		It("treats a negative cap as interior", func() {
			Expect(g.Color(0, -5)).To(Equal(Black))
		})

		It("starts each period at the initial color", func() {
			Expect(g.Color(0, 1000)).To(Equal(blue))
			Expect(g.Color(200, 1000)).To(Equal(blue))
		})

		It("hits stop colors at their offsets", func() {
			Expect(g.Color(30, 1000)).To(Equal(red))
			Expect(g.Color(50, 1000)).To(Equal(yellow))
			Expect(g.Color(170, 1000)).To(Equal(green))
		})

		It("blends linearly between stops", func() {
			got := g.Color(40, 1000)
			Expect(distance(got, Mix(red, yellow, 0.5))).To(BeNumerically("<", 1e-12))
		})

		It("wraps from the last stop back to the initial color", func() {
			got := g.Color(95, 1000)
			Expect(distance(got, Mix(cyan, blue, 0.5))).To(BeNumerically("<", 1e-12))
		})

		It("is continuous across period boundaries", func() {
			fine := mustNew(1000, classicStops(), 10)
			for k := 1; k <= 3; k++ {
				below := fine.Color(k*1000-1, 100000)
				above := fine.Color(k*1000+1, 100000)
				Expect(distance(below, above)).To(BeNumerically("<", 0.02))
			}
			Expect(distance(g.PeriodColor(1-1e-9), g.PeriodColor(1e-9))).To(BeNumerically("<", 1e-6))
		})

		Describe("falloff", func() {
			It("leaves colors below the falloff window untouched", func() {
				Expect(g.Color(80, 100)).To(Equal(g.PeriodColor(0.8)))
				Expect(g.Color(90, 100)).To(Equal(g.PeriodColor(0.9)))
			})

			It("fades toward the final color near the cap", func() {
				got := g.Color(95, 100)
				want := Mix(g.PeriodColor(0.95), Black, 0.5)
				Expect(distance(got, want)).To(BeNumerically("<", 1e-12))
			})

			It("stops short of the final color one step below the cap", func() {
				got := g.Color(99, 100)
				want := Mix(g.PeriodColor(0.99), Black, 0.9)
				Expect(distance(got, want)).To(BeNumerically("<", 1e-12))
				Expect(got).NotTo(Equal(Black))
			})

			It("approaches the final color monotonically", func() {
				prev := math.Inf(1)
				for it := 91; it < 100; it++ {
					d := distance(g.Color(it, 100), Black)
					Expect(d).To(BeNumerically("<=", prev))
					prev = d
				}
			})
		})
	})

	Describe("Cached", func() {
		It("rejects non-positive sizes", func() {
			_, err := g.Cached(0)
			Expect(err).To(MatchError(ErrCacheSize))
		})

		It("leaves the receiver uncached", func() {
			c, err := g.Cached(256)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.CacheSize()).To(Equal(256))
			Expect(g.CacheSize()).To(Equal(0))
		})

		It("matches the uncached gradient within quantization error", func() {
			const size = 1000
			c, err := g.Cached(size)
			Expect(err).NotTo(HaveOccurred())

			// Largest per-offset slope is between two stops 0.1 apart.
			tol := 10.0 / size
			for it := 0; it < 400; it++ {
				Expect(distance(c.Color(it, 10000), g.Color(it, 10000))).To(BeNumerically("<=", tol))
			}
		})

		It("is exact on table entries", func() {
			c, err := g.Cached(100)
			Expect(err).NotTo(HaveOccurred())
			for it := 0; it < 100; it++ {
				Expect(c.Color(it, 1000)).To(Equal(g.Color(it, 1000)))
			}
		})

		It("still applies the falloff", func() {
			c, err := g.Cached(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Color(95, 100)).To(Equal(g.Color(95, 100)))
			Expect(c.Color(100, 100)).To(Equal(Black))
		})
	})
})
