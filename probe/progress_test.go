package probe

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeProgress(t *testing.T) {
	Convey("Given raw progress readings in every representation", t, func() {
		Convey("When the slider reports aria values", func() {
			p, err := NormalizeProgress(ProgressAria, RawProgress{Value: "30", Max: "100"})

			Convey("Then it should normalize to 30", func() {
				So(err, ShouldBeNil)
				So(p, ShouldEqual, 30)
			})
		})

		Convey("When the slider reports milliseconds", func() {
			p, err := NormalizeProgress(ProgressAria, RawProgress{Value: "54000", Max: "180000"})

			Convey("Then it should be relative to the maximum", func() {
				So(err, ShouldBeNil)
				So(p, ShouldAlmostEqual, 30, 0.0001)
			})
		})

		Convey("When the style is a percentage", func() {
			p, err := NormalizeProgress(ProgressStyle, RawProgress{Style: "30%"})

			Convey("Then it should normalize to 30", func() {
				So(err, ShouldBeNil)
				So(p, ShouldEqual, 30)
			})
		})

		Convey("When the transform is scaleX", func() {
			p, err := NormalizeProgress(ProgressTransform, RawProgress{Style: "scaleX(0.3)"})

			Convey("Then it should normalize to 30", func() {
				So(err, ShouldBeNil)
				So(p, ShouldAlmostEqual, 30, 0.0001)
			})
		})

		Convey("When the transform is a computed matrix", func() {
			p, err := NormalizeProgress(ProgressTransform, RawProgress{Style: "matrix(0.3, 0, 0, 1, 0, 0)"})

			Convey("Then the horizontal scale should be used", func() {
				So(err, ShouldBeNil)
				So(p, ShouldAlmostEqual, 30, 0.0001)
			})
		})

		Convey("When the transform is a uniform scale", func() {
			p, err := NormalizeProgress(ProgressTransform, RawProgress{Style: "scale(0.5, 1)"})

			Convey("Then the first factor should be used", func() {
				So(err, ShouldBeNil)
				So(p, ShouldAlmostEqual, 50, 0.0001)
			})
		})

		Convey("When the reading overshoots", func() {
			p, err := NormalizeProgress(ProgressStyle, RawProgress{Style: "104.5%"})

			Convey("Then it should be clamped", func() {
				So(err, ShouldBeNil)
				So(p, ShouldEqual, 100)
			})
		})

		Convey("When the readings are malformed", func() {
			_, err := NormalizeProgress(ProgressStyle, RawProgress{Style: "30px"})
			So(err, ShouldNotBeNil)

			_, err = NormalizeProgress(ProgressAria, RawProgress{Value: "n/a"})
			So(err, ShouldNotBeNil)

			_, err = NormalizeProgress(ProgressTransform, RawProgress{Style: "rotate(3deg)"})
			So(err, ShouldNotBeNil)

			_, err = NormalizeProgress("width", RawProgress{})
			So(err, ShouldNotBeNil)
		})
	})
}
