package log

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestLogger returns a fully enabled logger writing to a buffer
func createTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	logger := New()
	logger.SetIdent("test")
	logger.SetLevel(LevelAll)

	buf := &bytes.Buffer{}
	err := logger.SetSink(SinkFile, buf)
	require.NoError(t, err)

	return logger, buf
}

// TestNewLogger verifies the unconfigured initial state
func TestNewLogger(t *testing.T) {
	logger := New()

	assert.Equal(t, Disabled, logger.GetLevel())

	sink, w := logger.GetSink()
	assert.Equal(t, SinkUnspecified, sink)
	assert.Nil(t, w)

	// Unconfigured logger must swallow records without panicking
	logger.Infof("dropped %d", 1)
}

// TestMaskFiltering verifies that a record is produced iff its level bit is set
func TestMaskFiltering(t *testing.T) {
	logger, buf := createTestLogger(t)
	logger.SetLevel(LevelInfo | LevelError)

	logger.Emit(LevelDebug, "a.c", 1, "x")
	logger.Emit(LevelInfo, "a.c", 2, "y")
	logger.Emit(LevelWarn, "a.c", 3, "z")
	logger.Emit(LevelError, "a.c", 4, "w")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], ": y"))
	assert.True(t, strings.HasSuffix(lines[1], ": w"))
}

// TestRecordFormat pins the exact file-sink record layout at a fixed time
func TestRecordFormat(t *testing.T) {
	logger := New()
	logger.SetIdent("app")
	logger.SetLevel(LevelAll)

	buf := &bytes.Buffer{}
	require.NoError(t, logger.SetSink(SinkFile, buf))

	logger.now = func() time.Time {
		return time.Date(2020, time.January, 2, 3, 4, 5, 6*1000*1000, time.Local)
	}

	logger.Emit(LevelWarn, "a.c", 7, "bad %d", 3)

	assert.Equal(t, "2020-01-02 03:04:05.006 [WARN ] [app] a.c:7: bad 3\n", buf.String())
}

// TestLevelLabels verifies the width-5 label field for every level
func TestLevelLabels(t *testing.T) {
	logger, buf := createTestLogger(t)

	logger.Emit(LevelDebug, "f", 1, "m")
	logger.Emit(LevelInfo, "f", 1, "m")
	logger.Emit(LevelWarn, "f", 1, "m")
	logger.Emit(LevelError, "f", 1, "m")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "[INFO ]")
	assert.Contains(t, out, "[WARN ]")
	assert.Contains(t, out, "[ERROR]")
}

// TestEmitWithoutStream verifies that a file sink with no stream is a no-op
func TestEmitWithoutStream(t *testing.T) {
	logger := New()
	logger.SetLevel(LevelAll)
	require.NoError(t, logger.SetSink(SinkFile, nil))

	logger.Infof("nowhere to go")

	sink, w := logger.GetSink()
	assert.Equal(t, SinkFile, sink)
	assert.Nil(t, w)
}

// TestCallerLocation verifies that the printf-style helpers capture the call site
func TestCallerLocation(t *testing.T) {
	logger, buf := createTestLogger(t)

	logger.Debugf("from here")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

// TestDefaultLoggerCallerLocation verifies the package-level delegates too
func TestDefaultLoggerCallerLocation(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, SetSink(SinkFile, buf))
	SetLevel(LevelAll)
	t.Cleanup(func() {
		SetLevel(Disabled)
		_ = SetSink(SinkUnspecified, nil)
	})

	Warnf("package level")

	assert.Contains(t, buf.String(), "logger_test.go:")
	assert.Contains(t, buf.String(), "[WARN ]")
}

// TestSinkSameVariantTransition verifies transitions within a variant just swap streams
func TestSinkSameVariantTransition(t *testing.T) {
	logger, _ := createTestLogger(t)

	other := &bytes.Buffer{}
	require.NoError(t, logger.SetSink(SinkFile, other))

	logger.Infof("rerouted")

	sink, w := logger.GetSink()
	assert.Equal(t, SinkFile, sink)
	assert.Same(t, other, w)
	assert.Contains(t, other.String(), "rerouted")
}

// TestSyslogBodyTruncation verifies the 255-byte limit of the syslog record body
func TestSyslogBodyTruncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	body := syslogBody("file.c", 12, long)

	assert.Len(t, body, 255)
	assert.True(t, strings.HasPrefix(body, "file.c:12: "))

	short := syslogBody("file.c", 12, "ok")
	assert.Equal(t, "file.c:12: ok", short)
}

// TestDump verifies structure dumping through go-spew
func TestDump(t *testing.T) {
	logger, buf := createTestLogger(t)

	logger.Dump(LevelDebug, "values", map[string]int{"a": 1})

	out := buf.String()
	assert.Contains(t, out, "values = ")
	assert.Contains(t, out, "map[string]int")
}

// TestConcurrentEmit verifies that records do not interleave
func TestConcurrentEmit(t *testing.T) {
	logger, buf := createTestLogger(t)

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				logger.Infof("g=%d i=%d", id, i)
			}
		}(g)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, goroutines*perGoroutine)

	record := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3} \[INFO \] \[test\] [^:]+:\d+: g=\d+ i=\d+$`)
	for _, line := range lines {
		assert.Regexp(t, record, line)
	}
}

// TestConcurrentReconfigure verifies configuration races cleanly with emission
func TestConcurrentReconfigure(t *testing.T) {
	logger, _ := createTestLogger(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			logger.SetLevel(Level(i % 16))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			logger.Infof("i=%d", i)
		}
	}()
	wg.Wait()
}

// TestEmitFormatsArgs verifies printf semantics of the message portion
func TestEmitFormatsArgs(t *testing.T) {
	logger, buf := createTestLogger(t)

	logger.Emit(LevelInfo, "f.c", 1, "%s=%d %.1f", "n", 42, 1.25)

	assert.True(t, strings.HasSuffix(buf.String(), ": n=42 1.2\n"), fmt.Sprintf("got %q", buf.String()))
}
