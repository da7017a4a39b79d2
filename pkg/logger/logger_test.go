package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("Then the global and named loggers are available", func() {
			So(Get(), ShouldNotBeNil)
			So(Named("test"), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		SetOutput(&buf)
		defer SetOutput(os.Stdout)
		So(Init(), ShouldBeNil)
		defer func() { _ = Init() }()
		ctx := context.Background()

		Convey("When the format is json", func() {
			So(SetFormat(FormatJSON), ShouldBeNil)
			Get().With(String("component", "catalog")).Info(ctx, "seeded", Int("count", 3), Bool("demo", true))

			Convey("Then one json record carries every field and the source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "seeded")
				So(rec["component"], ShouldEqual, "catalog")
				So(rec["count"], ShouldEqual, float64(3))
				So(rec["demo"], ShouldEqual, true)
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			defer SetLevel(0)
			Get().Info(ctx, "hidden")
			Get().Warn(ctx, "shown")

			Convey("Then info records are dropped", func() {
				out := buf.String()
				So(strings.Contains(out, "hidden"), ShouldBeFalse)
				So(out, ShouldContainSubstring, "shown")
			})
		})

		Convey("When an unknown format or level is given", func() {
			Convey("Then both are rejected", func() {
				So(SetFormat("xml"), ShouldNotBeNil)
				So(SetLevelString("loud"), ShouldNotBeNil)
			})
		})
	})
}
