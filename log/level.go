package log

import "strings"

// Level is a bit mask of enabled severity classes. The bits are independent
// and carry no ordering; enable any subset.
type Level int

const (
	Disabled   Level = 0
	LevelDebug Level = 1 << 0
	LevelInfo  Level = 1 << 1
	LevelWarn  Level = 1 << 2
	LevelError Level = 1 << 3

	LevelAll = LevelDebug | LevelInfo | LevelWarn | LevelError
)

// Sink selects the transport for log records.
type Sink int

const (
	SinkUnspecified Sink = iota
	SinkFile
	SinkSyslog
)

var levelLabels = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// label returns the record label for a single level bit. Unknown values
// fall back to the debug label.
func (lv Level) label() string {
	switch lv {
	case LevelDebug:
		return levelLabels[0]
	case LevelInfo:
		return levelLabels[1]
	case LevelWarn:
		return levelLabels[2]
	case LevelError:
		return levelLabels[3]
	default:
		return levelLabels[0]
	}
}

// String renders a mask as lower-case level names joined by '|', or
// "disabled" for the empty mask.
func (lv Level) String() string {
	if lv == Disabled {
		return "disabled"
	}

	var names []string
	for _, b := range [...]Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if lv&b != 0 {
			names = append(names, strings.ToLower(b.label()))
		}
	}
	return strings.Join(names, "|")
}

// String returns the config name of the sink variant.
func (s Sink) String() string {
	switch s {
	case SinkFile:
		return "file"
	case SinkSyslog:
		return "syslog"
	default:
		return "none"
	}
}

// ParseLevel converts a single level name to its mask bit.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "disabled", "none":
		return Disabled, nil
	default:
		return Disabled, fmtErrorf("invalid level string: '%s' (use debug, info, warn, error, disabled)", s)
	}
}

// ParseMask converts a combination like "debug|error" to a level mask.
// "all" enables every level.
func ParseMask(s string) (Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "all" {
		return LevelAll, nil
	}

	var mask Level
	for _, part := range strings.Split(trimmed, "|") {
		lv, err := ParseLevel(part)
		if err != nil {
			return Disabled, err
		}
		mask |= lv
	}
	return mask, nil
}

// ParseSink converts a config sink name to its variant.
func ParseSink(s string) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SinkUnspecified, nil
	case "file":
		return SinkFile, nil
	case "syslog":
		return SinkSyslog, nil
	default:
		return SinkUnspecified, fmtErrorf("invalid sink string: '%s' (use none, file, syslog)", s)
	}
}
