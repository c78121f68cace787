package qverify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReport(t *testing.T) {
	Convey("Given a passing diagnosis", t, func() {
		d, err := testRunner(fixedCounts(FrequencyTable{{"00 00", 512}, {"11 00", 512}}), nil).
			Diagnose(context.Background())
		So(err, ShouldBeNil)

		Convey("The text report shows the table and the verdict", func() {
			var buf bytes.Buffer
			So(Render(&buf, FormatText, d), ShouldBeNil)

			out := buf.String()
			So(out, ShouldContainSubstring, "Circuit depth: 3")
			So(out, ShouldContainSubstring, "Number of qubits: 2")
			So(out, ShouldContainSubstring, "00 00")
			So(out, ShouldContainSubstring, "50.0%")
			So(out, ShouldContainSubstring, "Verification passed")
			So(out, ShouldContainSubstring, "[00 11]")
		})

		Convey("The JSON report decodes back", func() {
			var buf bytes.Buffer
			So(Render(&buf, FormatJSON, d), ShouldBeNil)

			var decoded Diagnosis
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded.Result.Verdict, ShouldEqual, VerdictPass)
			So(decoded.Result.Entries, ShouldHaveLength, 2)
			So(decoded.Counts, ShouldResemble, d.Counts)
		})
	})

	Convey("Given a failing diagnosis", t, func() {
		d, err := testRunner(fixedCounts(FrequencyTable{{"01", 10}, {"00", 1014}}), nil).
			Diagnose(context.Background())
		So(err, ShouldBeNil)

		var buf bytes.Buffer
		So(RenderText(&buf, d), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "Unexpected states found: [01]")
		So(buf.String(), ShouldContainSubstring, "1.0%")
	})

	Convey("Given nothing to render", t, func() {
		var buf bytes.Buffer
		So(errors.Is(RenderText(&buf, nil), ErrEmptyResult), ShouldBeTrue)
		So(errors.Is(RenderJSON(&buf, nil), ErrEmptyResult), ShouldBeTrue)
		So(buf.Len(), ShouldEqual, 0)
		So(errors.Is(Render(&buf, "xml", &Diagnosis{}), ErrInvalidConfig), ShouldBeTrue)

		RenderError(&buf, ErrEmptyResult)
		So(buf.String(), ShouldContainSubstring, "could not run")
	})
}
