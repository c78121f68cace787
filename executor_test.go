package qverify

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulator(t *testing.T) {
	Convey("Given a seeded simulator", t, func() {
		ctx := context.Background()
		sim := NewSimulator(1234)

		Convey("When running the Bell circuit", func() {
			counts, err := sim.Execute(ctx, NewBellCircuit(), 1024)

			Convey("Only correlated outcomes appear, with the register suffix", func() {
				So(err, ShouldBeNil)
				So(counts.Total(), ShouldEqual, 1024)
				for _, row := range counts {
					So([]string{"00 00", "11 00"}, ShouldContain, row.Key)
				}
			})

			Convey("The counts verify", func() {
				result, err := Verify(counts, CorrelatedSet(2))
				So(err, ShouldBeNil)
				So(result.Passed(), ShouldBeTrue)
			})
		})

		Convey("When the circuit has no classical register", func() {
			counts, err := sim.Execute(ctx, NewGHZCircuit(3, 0), 256)
			So(err, ShouldBeNil)
			for _, row := range counts {
				So(strings.Contains(row.Key, " "), ShouldBeFalse)
				So([]string{"000", "111"}, ShouldContain, row.Key)
			}
		})

		Convey("X on qubit 0 sets the rightmost bit", func() {
			counts, err := sim.Execute(ctx, NewCircuit("x0", 2, 0).X(0).MeasureAll(), 10)
			So(err, ShouldBeNil)
			So(counts, ShouldResemble, FrequencyTable{{"01", 10}})
		})

		Convey("Invalid requests are rejected", func() {
			_, err := sim.Execute(ctx, NewBellCircuit(), 0)
			So(errors.Is(err, ErrInvalidShots), ShouldBeTrue)

			_, err = sim.Execute(ctx, NewCircuit("bare", 2, 0), 10)
			So(errors.Is(err, ErrInvalidCircuit), ShouldBeTrue)

			_, err = NewSimulator(1, WithMaxQubits(2)).Execute(ctx, NewGHZCircuit(3, 0), 10)
			So(errors.Is(err, ErrInvalidCircuit), ShouldBeTrue)
		})

		Convey("A cancelled context stops execution", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := sim.Execute(cancelled, NewBellCircuit(), 10)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a simulator with heavy readout error", t, func() {
		sim := NewSimulator(99, WithReadoutError(0.5))
		counts, err := sim.Execute(context.Background(), NewBellCircuit(), 2048)
		So(err, ShouldBeNil)

		Convey("Uncorrelated outcomes show up and fail verification", func() {
			result, err := Verify(counts, CorrelatedSet(2))
			So(err, ShouldBeNil)
			So(result.Verdict, ShouldEqual, VerdictFail)
			So(result.Unexpected, ShouldNotBeEmpty)
		})
	})

	Convey("Given two simulators with the same seed", t, func() {
		a, errA := NewSimulator(7).Execute(context.Background(), NewBellCircuit(), 500)
		b, errB := NewSimulator(7).Execute(context.Background(), NewBellCircuit(), 500)
		So(errA, ShouldBeNil)
		So(errB, ShouldBeNil)
		So(a, ShouldResemble, b)
	})
}
