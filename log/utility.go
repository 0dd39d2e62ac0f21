package log

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// caller returns the short file name and line of the frame skip levels up.
func caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", 0
	}
	return filepath.Base(file), line
}

// internalLog writes logger diagnostics to stderr. The logger never routes
// its own failures through itself.
func internalLog(format string, args ...any) {
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "log: ") {
		format = "log: " + format
	}
	return fmt.Errorf(format, args...)
}
