package qverify

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func testRunner(exec Executor, mutate func(*Config)) *Runner {
	cfg := NewConfig()
	cfg.Backoff = time.Millisecond
	if mutate != nil {
		mutate(cfg)
	}
	return NewRunner(exec, cfg, NewLogger(io.Discard, true))
}

func fixedCounts(table FrequencyTable) Executor {
	return ExecutorFunc(func(context.Context, *Circuit, int) (FrequencyTable, error) {
		return table, nil
	})
}

func TestRunner(t *testing.T) {
	Convey("Given a runner over the seeded simulator", t, func() {
		runner := testRunner(NewSimulator(2024), nil)

		Convey("Diagnose should pass the Bell check", func() {
			d, err := runner.Diagnose(context.Background())
			So(err, ShouldBeNil)
			So(d.Passed(), ShouldBeTrue)
			So(d.Circuit.Depth, ShouldEqual, 3)
			So(d.Circuit.NumQubits, ShouldEqual, 2)
			So(d.Shots, ShouldEqual, 1024)
			So(d.Result.TotalShots, ShouldEqual, 1024)
			So(d.Expected, ShouldResemble, []Outcome{"00", "11"})
			So(d.Metrics["attempts"], ShouldEqual, 1)
		})
	})

	Convey("Given a fixed job ID", t, func() {
		d, err := testRunner(NewSimulator(8), func(c *Config) { c.JobID = "install-check" }).
			Diagnose(context.Background())
		So(err, ShouldBeNil)
		So(d.JobID, ShouldEqual, "install-check")
	})

	Convey("Given an executor returning unexpected outcomes", t, func() {
		runner := testRunner(fixedCounts(FrequencyTable{{"01", 10}, {"00", 1014}}), nil)

		Convey("Diagnose reports a failed verdict without an error", func() {
			d, err := runner.Diagnose(context.Background())
			So(err, ShouldBeNil)
			So(d.Passed(), ShouldBeFalse)
			So(d.Result.Unexpected, ShouldResemble, []Outcome{"01"})
		})
	})

	Convey("Given an executor returning nothing", t, func() {
		runner := testRunner(fixedCounts(nil), nil)

		Convey("Diagnose reports an empty-result error", func() {
			d, err := runner.Diagnose(context.Background())
			So(d, ShouldBeNil)
			So(errors.Is(err, ErrEmptyResult), ShouldBeTrue)
		})
	})

	Convey("Given an executor that fails transiently", t, func() {
		calls := 0
		flaky := ExecutorFunc(func(ctx context.Context, c *Circuit, shots int) (FrequencyTable, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("backend busy")
			}
			return FrequencyTable{{"00 00", shots / 2}, {"11 00", shots / 2}}, nil
		})

		Convey("Diagnose retries and then passes", func() {
			d, err := testRunner(flaky, nil).Diagnose(context.Background())
			So(err, ShouldBeNil)
			So(d.Passed(), ShouldBeTrue)
			So(calls, ShouldEqual, 3)
			So(d.Metrics["attempts"], ShouldEqual, 3)
			So(d.Metrics["failures"], ShouldEqual, 2)
		})

		Convey("Diagnose gives up when retries run out", func() {
			_, err := testRunner(flaky, func(c *Config) { c.Retries = 2 }).Diagnose(context.Background())
			So(errors.Is(err, ErrExecution), ShouldBeTrue)
			So(calls, ShouldEqual, 2)
		})
	})

	Convey("Given an executor rejecting the circuit", t, func() {
		calls := 0
		reject := ExecutorFunc(func(context.Context, *Circuit, int) (FrequencyTable, error) {
			calls++
			return nil, ErrInvalidCircuit
		})

		Convey("Diagnose does not retry", func() {
			_, err := testRunner(reject, nil).Diagnose(context.Background())
			So(errors.Is(err, ErrExecution), ShouldBeTrue)
			So(errors.Is(err, ErrInvalidCircuit), ShouldBeTrue)
			So(calls, ShouldEqual, 1)
		})
	})

	Convey("Given no executor", t, func() {
		_, err := testRunner(nil, nil).Diagnose(context.Background())
		So(errors.Is(err, ErrExecution), ShouldBeTrue)
	})

	Convey("Given a three-qubit config", t, func() {
		d, err := testRunner(NewSimulator(5), func(c *Config) { c.Qubits = 3 }).Diagnose(context.Background())
		So(err, ShouldBeNil)
		So(d.Passed(), ShouldBeTrue)
		So(d.Circuit.Name, ShouldEqual, "ghz-3")
		So(d.Expected, ShouldResemble, []Outcome{"000", "111"})
	})
}
