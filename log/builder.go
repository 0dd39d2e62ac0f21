package log

import "io"

// Builder provides a fluent API for assembling a configured logger.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	w   io.Writer
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Ident sets the record identifier.
func (b *Builder) Ident(ident string) *Builder {
	b.cfg.Ident = ident
	return b
}

// Level sets the level mask.
func (b *Builder) Level(mask Level) *Builder {
	b.cfg.Level = mask.String()
	return b
}

// LevelString sets the level mask from a string like "debug|error".
func (b *Builder) LevelString(mask string) *Builder {
	if b.err != nil {
		return b
	}
	parsed, err := ParseMask(mask)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = parsed.String()
	return b
}

// FileSink selects the file sink with a caller-owned stream.
func (b *Builder) FileSink(w io.Writer) *Builder {
	b.cfg.Sink = SinkFile.String()
	b.cfg.File = ""
	b.w = w
	return b
}

// FilePath selects the file sink with a path opened and owned by the logger.
func (b *Builder) FilePath(path string) *Builder {
	b.cfg.Sink = SinkFile.String()
	b.cfg.File = path
	b.w = nil
	return b
}

// SyslogSink selects the syslog sink. The ident must be set as well.
func (b *Builder) SyslogSink() *Builder {
	b.cfg.Sink = SinkSyslog.String()
	b.cfg.File = ""
	b.w = nil
	return b
}

// Build creates a new Logger with the accumulated configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := New()
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	if b.w != nil {
		if err := logger.SetSink(SinkFile, b.w); err != nil {
			return nil, err
		}
	}

	return logger, nil
}

// Example usage:
//
//	logger, err := log.NewBuilder().
//		Ident("app").
//		LevelString("debug|error").
//		FilePath("/var/log/app.log").
//		Build()
