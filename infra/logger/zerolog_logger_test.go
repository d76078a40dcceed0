package logger

import (
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	assert.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewReturnsLogger(t *testing.T) {
	l := New("solver")
	assert.NotNil(t, l)
	l.Infof("ready")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, levelFromEnv())
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, levelFromEnv())
	t.Setenv("LOG_LEVEL", "WARN")
	assert.Equal(t, zerolog.WarnLevel, levelFromEnv())
	t.Setenv("LOG_LEVEL", "verbose")
	assert.Equal(t, zerolog.InfoLevel, levelFromEnv())
}

func TestWriterFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	_, ok := writerFromEnv().(zerolog.ConsoleWriter)
	assert.True(t, ok)

	t.Setenv("APP_ENV", "")
	assert.Equal(t, os.Stderr, writerFromEnv())
}

type logRecorder struct {
	lines []string
}

func (r *logRecorder) Log(args ...any) {
	r.lines = append(r.lines, fmt.Sprint(args...))
}

func TestNewTestWritesThroughTB(t *testing.T) {
	rec := &logRecorder{}
	l := NewTest(rec)

	l.Infof("solved %d loads", 3)
	l.Debugw("trial", map[string]any{"cost": 1200.5})

	require.Len(t, rec.lines, 2)
	assert.Contains(t, rec.lines[0], "solved 3 loads")
	assert.Contains(t, rec.lines[1], "cost=1200.5")
}
