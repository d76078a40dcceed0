package logger

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TB is the subset of testing.TB that NewTest needs. Keeping it as a local
// interface avoids linking the testing package into binaries.
type TB interface {
	Log(args ...any)
}

// NewTest returns a Logger that writes through tb.Log, keeping log lines
// attached to the test that produced them. Every level is emitted.
func NewTest(tb TB) Logger {
	w := zerolog.ConsoleWriter{Out: testWriter{tb}, NoColor: true, TimeFormat: time.TimeOnly}
	return &ZerologLogger{log: zerolog.New(w).With().Timestamp().Logger()}
}

type testWriter struct{ tb TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
