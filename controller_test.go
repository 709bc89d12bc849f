package faultsim

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFaultController(t *testing.T) {
	Convey("Given a new fault controller", t, func() {
		rng := &scriptedSource{floats: []float64{0.01}}
		fc := NewFaultController(rng)

		Convey("It should start disabled and unfired", func() {
			So(fc.State(), ShouldResemble, FaultState{})
		})

		Convey("It should never fire while disabled, and not draw", func() {
			for i := 0; i < 10; i++ {
				So(fc.MaybeFire(1.0), ShouldBeFalse)
			}
			So(rng.floatDraws, ShouldEqual, 0)
		})

		Convey("When enabled", func() {
			fc.SetEnabled(true)

			Convey("It should fire exactly once", func() {
				So(fc.MaybeFire(1.0), ShouldBeTrue)
				So(fc.State(), ShouldResemble, FaultState{Enabled: true, Fired: true})

				for i := 0; i < 10; i++ {
					So(fc.MaybeFire(1.0), ShouldBeFalse)
				}
				So(rng.floatDraws, ShouldEqual, 1)
			})

			Convey("A draw at or above the probability should not fire but is consumed", func() {
				rng.floats = []float64{0.5, 0.5, 0.2}

				So(fc.MaybeFire(0.5), ShouldBeFalse)
				So(fc.MaybeFire(0.5), ShouldBeFalse)
				So(rng.floatDraws, ShouldEqual, 2)
				So(fc.MaybeFire(0.5), ShouldBeTrue)
				So(rng.floatDraws, ShouldEqual, 3)
			})

			Convey("Probability zero should never fire", func() {
				rng.floats = []float64{0.0}
				for i := 0; i < 10; i++ {
					So(fc.MaybeFire(0.0), ShouldBeFalse)
				}
			})

			Convey("Disabling after a fault should keep the fired flag", func() {
				So(fc.MaybeFire(1.0), ShouldBeTrue)
				fc.SetEnabled(false)
				So(fc.State(), ShouldResemble, FaultState{Enabled: false, Fired: true})

				Convey("And re-enabling should re-arm one fault", func() {
					fc.SetEnabled(true)
					So(fc.State().Armed(), ShouldBeTrue)
					So(fc.MaybeFire(1.0), ShouldBeTrue)
					So(fc.MaybeFire(1.0), ShouldBeFalse)
				})
			})

			Convey("Enabling again while enabled should also re-arm", func() {
				So(fc.MaybeFire(1.0), ShouldBeTrue)
				fc.SetEnabled(true)
				So(fc.MaybeFire(1.0), ShouldBeTrue)
			})
		})
	})

	Convey("Given two controllers with the same seed", t, func() {
		a := NewFaultController(NewRandomSource(99))
		b := NewFaultController(NewRandomSource(99))

		Convey("Their outcomes across re-armings should match", func() {
			for i := 0; i < 200; i++ {
				if i%20 == 0 {
					a.SetEnabled(true)
					b.SetEnabled(true)
				}
				So(a.MaybeFire(0.1), ShouldEqual, b.MaybeFire(0.1))
			}
		})
	})
}
