package log

import "io"

// Global instance for package-level functions. The surrounding daemon treats
// logging as process-wide state, so the package carries one default logger.
var std = New()

// Default returns the package-level logger instance.
func Default() *Logger {
	return std
}

// SetIdent sets the identifier of the default logger.
func SetIdent(ident string) {
	std.SetIdent(ident)
}

// SetLevel sets the level mask of the default logger.
func SetLevel(mask Level) {
	std.SetLevel(mask)
}

// SetSink selects the sink of the default logger.
func SetSink(sink Sink, w io.Writer) error {
	return std.SetSink(sink, w)
}

// GetSink returns the sink of the default logger.
func GetSink() (Sink, io.Writer) {
	return std.GetSink()
}

// GetLevel returns the level mask of the default logger.
func GetLevel() Level {
	return std.GetLevel()
}

// ApplyConfig applies a configuration to the default logger.
func ApplyConfig(cfg *Config) error {
	return std.ApplyConfig(cfg)
}

// Emit writes a record through the default logger with an explicit source
// location.
func Emit(level Level, file string, line int, format string, args ...any) {
	std.Emit(level, file, line, format, args...)
}

// Debugf logs a message at debug level through the default logger.
func Debugf(format string, args ...any) {
	std.output(LevelDebug, skipDirect, format, args...)
}

// Infof logs a message at info level through the default logger.
func Infof(format string, args ...any) {
	std.output(LevelInfo, skipDirect, format, args...)
}

// Warnf logs a message at warn level through the default logger.
func Warnf(format string, args ...any) {
	std.output(LevelWarn, skipDirect, format, args...)
}

// Errorf logs a message at error level through the default logger.
func Errorf(format string, args ...any) {
	std.output(LevelError, skipDirect, format, args...)
}

// Logf logs a message at an arbitrary level through the default logger.
func Logf(level Level, format string, args ...any) {
	std.output(level, skipDirect, format, args...)
}

// Dump logs a structure dump through the default logger.
func Dump(level Level, label string, v any) {
	std.output(level, skipDirect, "%s = %s", label, sdump(v))
}
