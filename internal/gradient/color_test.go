package gradient

import (
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Color", func() {
	a := RGB(0.2, 0.4, 0.9)
	b := RGB(1.0, 0.0, 0.5)

	Describe("Mix", func() {
		It("returns the endpoints exactly", func() {
			Expect(Mix(a, b, 0)).To(Equal(a))
			Expect(Mix(a, b, 1)).To(Equal(b))
		})

		It("is affine in amount", func() {
			for _, t := range []float64{0.1, 0.25, 0.5, 0.8} {
				got := Mix(a, b, t)
				Expect(got.R).To(BeNumerically("~", a.R+(b.R-a.R)*t, 1e-12))
				Expect(got.G).To(BeNumerically("~", a.G+(b.G-a.G)*t, 1e-12))
				Expect(got.B).To(BeNumerically("~", a.B+(b.B-a.B)*t, 1e-12))
			}
		})

		It("does not clamp the amount", func() {
			got := Mix(Black, White, 2)
			Expect(got.R).To(BeNumerically("~", 2, 1e-12))
		})
	})

	Describe("Write", func() {
		It("stores blue, green, red", func() {
			dst := make([]byte, 3)
			RGB(1, 0.5, 0).Write(dst)
			Expect(dst).To(Equal([]byte{0, 128, 255}))
		})

		It("appends opaque alpha in BGRA form", func() {
			dst := make([]byte, 4)
			RGB(0, 0, 1).WriteBGRA(dst)
			Expect(dst).To(Equal([]byte{255, 0, 0, 255}))
		})

		It("stores red first in RGBA form", func() {
			dst := make([]byte, 4)
			RGB(1, 0.5, 0).WriteRGBA(dst)
			Expect(dst).To(Equal([]byte{255, 128, 0, 255}))
		})

		It("panics on a short destination instead of writing out of bounds", func() {
			Expect(func() { White.Write(make([]byte, 2)) }).To(Panic())
		})
	})

	DescribeTable("quantization",
		func(c Color, r, g, b uint8) {
			gr, gg, gb := c.Bytes()
			Expect([]uint8{gr, gg, gb}).To(Equal([]uint8{r, g, b}))
		},
		Entry("in range", RGB(0, 0.5, 1), uint8(0), uint8(128), uint8(255)),
		Entry("rounds to nearest", RGB(0.4/255, 1.6/255, 254.4/255), uint8(0), uint8(2), uint8(254)),
		Entry("clamps overshoot", RGB(-0.3, 1.7, 1e9), uint8(0), uint8(255), uint8(255)),
		Entry("degrades NaN and Inf", RGB(math.NaN(), math.Inf(1), math.Inf(-1)), uint8(0), uint8(255), uint8(0)),
	)

	It("converts to the standard color model", func() {
		Expect(RGB(1, 0, 0.5).NRGBA()).To(Equal(color.NRGBA{R: 255, G: 0, B: 128, A: 255}))
	})

	Describe("hex", func() {
		It("round trips", func() {
			c, err := ParseHex("#ff8000")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Hex()).To(Equal("#ff8000"))
		})

		It("rejects malformed input", func() {
			_, err := ParseHex("orange")
			Expect(err).To(HaveOccurred())
		})
	})
})
