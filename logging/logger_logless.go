//go:build logless

package logging

// Log is the zero-cost stand-in used when building with -tags logless,
// grounded on a pkg/core/logger.empty.go EmptyLog pattern. Every
// chained call is a no-op so call sites never need a build-tag branch
// of their own.
var Log = noopLogger{}

type noopLogger struct{}

func (l noopLogger) Debug() noopEvent { return noopEvent{} }
func (l noopLogger) Warn() noopEvent  { return noopEvent{} }
func (l noopLogger) Error() noopEvent { return noopEvent{} }
func (l noopLogger) Info() noopEvent  { return noopEvent{} }

type noopEvent struct{}

func (e noopEvent) Str(string, string) noopEvent { return e }
func (e noopEvent) Int(string, int) noopEvent    { return e }
func (e noopEvent) Err(error) noopEvent          { return e }
func (e noopEvent) Msg(string)                   {}
