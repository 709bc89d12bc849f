package faultsim

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorModel(t *testing.T) {
	Convey("Given a trace engine with one qubit", t, func() {
		engine := NewTraceEngine()
		q := engine.Allocate(1)[0]

		Convey("SimplePauli should apply X below one half", func() {
			rng := &scriptedSource{floats: []float64{0.3}}
			injection, err := NewSimplePauli(engine, rng).Inject(q)

			So(err, ShouldBeNil)
			So(injection, ShouldResemble, Injection{Pauli: PauliX})
			So(engine.Operations(), ShouldResemble, []Operation{{Kind: GateX, Target: 0}})
			So(rng.floatDraws, ShouldEqual, 1)
		})

		Convey("SimplePauli should apply Z at or above one half", func() {
			rng := &scriptedSource{floats: []float64{0.5}}
			injection, err := NewSimplePauli(engine, rng).Inject(q)

			So(err, ShouldBeNil)
			So(injection.Pauli, ShouldEqual, PauliZ)
			So(engine.Operations(), ShouldResemble, []Operation{{Kind: GateZ, Target: 0}})
		})

		Convey("CompoundError should apply H then the Pauli with one draw", func() {
			rng := &scriptedSource{floats: []float64{0.9}}
			injection, err := NewCompoundError(engine, rng).Inject(q)

			So(err, ShouldBeNil)
			So(injection, ShouldResemble, Injection{BasisChange: true, Pauli: PauliZ})
			So(engine.Operations(), ShouldResemble, []Operation{
				{Kind: GateH, Target: 0},
				{Kind: GateZ, Target: 0},
			})
			So(rng.floatDraws, ShouldEqual, 1)
		})

		Convey("Engine errors should come back unchanged", func() {
			engine.Release(q)
			rng := &scriptedSource{floats: []float64{0.1}}

			_, err := NewSimplePauli(engine, rng).Inject(q)
			So(err, ShouldEqual, ErrQubitReleased)

			_, err = NewCompoundError(engine, rng).Inject(q)
			So(err, ShouldEqual, ErrQubitReleased)
			So(engine.Operations(), ShouldBeEmpty)
		})
	})

	Convey("Given the policy names", t, func() {
		engine := NewTraceEngine()
		rng := NewRandomSource(1)

		Convey("They should build the matching model", func() {
			model, err := NewErrorModel(PolicySimple, engine, rng)
			So(err, ShouldBeNil)
			So(model, ShouldHaveSameTypeAs, &SimplePauli{})

			model, err = NewErrorModel(PolicyCompound, engine, rng)
			So(err, ShouldBeNil)
			So(model, ShouldHaveSameTypeAs, &CompoundError{})
		})

		Convey("An unknown policy should be rejected", func() {
			_, err := NewErrorModel("depolarizing", engine, rng)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
