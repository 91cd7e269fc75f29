package logging_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/forge/internal/logging"
	h "github.com/buildpacks/forge/testhelpers"
)

const testTime = "2019/05/15 01:01:01.000000"

func mockStdClock() time.Time {
	t, _ := time.Parse("2006/01/02 15:04:05.000000", testTime)
	return t
}

func TestLogWithWriters(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "testLogWithWriters", testLogWithWriters, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testLogWithWriters(t *testing.T, when spec.G, it spec.S) {
	var (
		outBuf, errBuf bytes.Buffer
		logger         *logging.LogWithWriters
	)

	it.Before(func() {
		logger = logging.NewLogWithWriters(&outBuf, &errBuf, logging.WithClock(mockStdClock))
	})

	it("routes errors to the error writer", func() {
		logger.Error("oh no")
		h.AssertEq(t, errBuf.String(), "ERROR: oh no\n")
		h.AssertEq(t, outBuf.String(), "")
	})

	it("prefixes warnings", func() {
		logger.Warn("careful")
		h.AssertEq(t, outBuf.String(), "Warning: careful\n")
	})

	it("prepends timestamps when asked", func() {
		logger.WantTime(true)
		logger.Info("hello")
		h.AssertEq(t, outBuf.String(), testTime+" hello\n")
	})

	it("suppresses info when quiet", func() {
		logger.WantQuiet(true)
		logger.Info("hidden")
		logger.Warn("shown")
		h.AssertEq(t, outBuf.String(), "Warning: shown\n")
	})

	it("emits debug output only when verbose", func() {
		logger.Debug("invisible")
		h.AssertEq(t, outBuf.String(), "")
		h.AssertEq(t, logger.IsVerbose(), false)

		logger.WantVerbose(true)
		logger.Debug("visible")
		h.AssertEq(t, outBuf.String(), "visible\n")
		h.AssertEq(t, logger.IsVerbose(), true)
	})

	it("appends a line feed only when missing", func() {
		logger.Info("already terminated\n")
		h.AssertEq(t, outBuf.String(), "already terminated\n")
	})
}
