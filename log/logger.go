package log

import (
	"fmt"
	"io"
	"log/syslog"
	"sync"
	"time"
)

// Logger emits leveled records to a single sink, either a caller-owned file
// stream or the system log. A record is produced only when the configured
// level mask contains the record's level and a usable sink is installed.
//
// Thread safety is achieved by a rather simple approach: every public method
// is guarded by one mutex, so configuration and emission are fully
// serialized. Suboptimal throughput, but for now it's okay. If logging ever
// becomes a bottleneck, consider a dedicated logging goroutine.
type Logger struct {
	mu    sync.Mutex
	ident string
	mask  Level
	sink  Sink
	out   io.Writer      // file stream, meaningful only when sink == SinkFile
	sys   *syslog.Writer // open exactly while sink == SinkSyslog
	owned io.Closer      // stream opened by ApplyConfig, closed on reconfigure

	now func() time.Time // injectable clock
}

// New returns an unconfigured logger: sink unspecified, all levels disabled,
// ident "?". Logging is a no-op until SetLevel and SetSink are called.
func New() *Logger {
	return &Logger{
		ident: defaultIdent,
		now:   time.Now,
	}
}

// SetIdent sets the identifier prepended to every record. Usually the
// program name. When logging to syslog, the ident must be set before
// switching the sink, it is passed to the syslog channel at open time.
func (l *Logger) SetIdent(ident string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ident == "" {
		ident = defaultIdent
	}
	l.ident = ident
}

// SetLevel sets the level mask. The logger emits a record only if the
// corresponding bit is set. Any combination of LevelDebug, LevelInfo,
// LevelWarn and LevelError is allowed; pass Disabled to turn logging off.
func (l *Logger) SetLevel(mask Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.mask = mask
}

// SetSink selects where records go. For SinkFile, w must be a valid stream
// or no logging will be done; the stream stays owned by the caller. For
// SinkSyslog, w is unused and the syslog channel is opened with the current
// ident. Transitioning away from SinkSyslog closes the channel; transitions
// to the already-active sink variant do not re-open it.
func (l *Logger) SetSink(sink Sink, w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.setSink(sink, w)
}

// GetSink returns the active sink variant and the file stream. The stream is
// nil unless the sink is SinkFile.
func (l *Logger) GetSink() (Sink, io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sink != SinkFile {
		return l.sink, nil
	}
	return l.sink, l.out
}

// GetLevel returns the current level mask.
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.mask
}

// Emit writes a single record with an explicit source location. This is the
// low-level call; Debugf and friends capture the caller automatically.
// The call is a no-op when the mask does not contain level, when no sink is
// configured, or when the sink is SinkFile without a stream.
func (l *Logger) Emit(level Level, file string, line int, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.emit(level, file, line, format, args...)
}

// Debugf logs a message at debug level with the caller's file and line.
func (l *Logger) Debugf(format string, args ...any) {
	l.output(LevelDebug, skipDirect, format, args...)
}

// Infof logs a message at info level with the caller's file and line.
func (l *Logger) Infof(format string, args ...any) {
	l.output(LevelInfo, skipDirect, format, args...)
}

// Warnf logs a message at warn level with the caller's file and line.
func (l *Logger) Warnf(format string, args ...any) {
	l.output(LevelWarn, skipDirect, format, args...)
}

// Errorf logs a message at error level with the caller's file and line.
func (l *Logger) Errorf(format string, args ...any) {
	l.output(LevelError, skipDirect, format, args...)
}

// Logf logs a message at an arbitrary level with the caller's file and line.
func (l *Logger) Logf(level Level, format string, args ...any) {
	l.output(level, skipDirect, format, args...)
}

// output resolves the caller location and emits. skip counts stack frames
// above output up to the user call site.
func (l *Logger) output(level Level, skip int, format string, args ...any) {
	file, line := caller(skip + 1)
	l.Emit(level, file, line, format, args...)
}

// emit implements the record contract, assuming mu is held.
func (l *Logger) emit(level Level, file string, line int, format string, args ...any) {
	if l.sink == SinkUnspecified || l.mask == Disabled || l.mask&level == 0 {
		return
	}
	if l.sink == SinkFile && l.out == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)

	switch l.sink {
	case SinkFile:
		l.toFile(level, file, line, msg)
	case SinkSyslog:
		l.toSyslog(level, file, line, msg)
	}
}

// toFile writes "2007-01-01 00:00:00.000 [LEVEL] [ident] file:line: msg".
func (l *Logger) toFile(level Level, file string, line int, msg string) {
	ts := l.now().Format(timestampLayout)
	_, err := fmt.Fprintf(l.out, "%s [%-5s] [%s] %s:%d: %s\n",
		ts, level.label(), l.ident, file, line, msg)
	if err != nil {
		internalLog("failed to write record: %v\n", err)
	}
}

// toSyslog writes "file:line: msg" at the mapped priority. Syslog itself
// adds the timestamp, ident and pid. The body is truncated to
// syslogMsgLimit bytes.
func (l *Logger) toSyslog(level Level, file string, line int, msg string) {
	body := syslogBody(file, line, msg)

	var err error
	switch level {
	case LevelDebug:
		err = l.sys.Debug(body)
	case LevelInfo:
		err = l.sys.Info(body)
	case LevelWarn:
		err = l.sys.Warning(body)
	case LevelError:
		err = l.sys.Err(body)
	default:
		err = l.sys.Debug(body)
	}
	if err != nil {
		internalLog("failed to write syslog record: %v\n", err)
	}
}

// syslogBody renders "file:line: msg" truncated to the syslog limit.
func syslogBody(file string, line int, msg string) string {
	body := fmt.Sprintf("%s:%d: %s", file, line, msg)
	if len(body) > syslogMsgLimit {
		body = body[:syslogMsgLimit]
	}
	return body
}

// setSink performs the sink transition, assuming mu is held. The syslog
// channel is opened and closed exactly in pairs on transitions in and out
// of SinkSyslog.
func (l *Logger) setSink(sink Sink, w io.Writer) error {
	if sink == SinkSyslog && l.sink != SinkSyslog {
		sys, err := syslog.New(syslog.LOG_USER|syslog.LOG_INFO, l.ident)
		if err != nil {
			internalLog("failed to open syslog channel: %v\n", err)
			return fmtErrorf("failed to open syslog channel: %w", err)
		}
		l.sys = sys
	} else if sink != SinkSyslog && l.sink == SinkSyslog {
		if err := l.sys.Close(); err != nil {
			internalLog("failed to close syslog channel: %v\n", err)
		}
		l.sys = nil
	}

	// A stream opened by ApplyConfig is ours to close once it is replaced.
	if l.owned != nil && any(l.owned) != any(w) {
		if err := l.owned.Close(); err != nil {
			internalLog("failed to close previous log stream: %v\n", err)
		}
		l.owned = nil
	}

	l.sink = sink
	l.out = w
	return nil
}
