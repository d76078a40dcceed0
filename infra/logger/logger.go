package logger

import corelogger "github.com/openfreight/loadplan/core/logger"

// Logger re-exports the core interface so infra packages need a single import.
type Logger = corelogger.Logger

// New returns the default zerolog-backed Logger for the given component.
func New(component string) Logger { return NewZerologLogger(component) }

// NopLogger discards everything. Default for components with no logger wired.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}
