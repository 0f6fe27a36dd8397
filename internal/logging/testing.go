package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// NewTestLogger returns a logger that writes through t.Log, so test output
// stays attached to the test that produced it.
func NewTestLogger(t *testing.T) *Logger {
	t.Helper()
	return &Logger{zap: zaptest.NewLogger(t)}
}

// NewObservedLogger returns a logger plus the observer recording its
// entries, for tests asserting on log output.
func NewObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{zap: zap.New(core)}, logs
}
