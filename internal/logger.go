package internal

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

var loggerPtr atomic.Pointer[logr.Logger]

func init() {
	l := logr.Discard()
	loggerPtr.Store(&l)
}

// SetLogger sets the logger used by every runtime that has no logger of its own.
// A zero logr.Logger restores the silent default.
func SetLogger(l logr.Logger) {
	if l.GetSink() == nil {
		l = logr.Discard()
	}
	loggerPtr.Store(&l)
}

func defaultLogger() logr.Logger {
	return *loggerPtr.Load()
}
