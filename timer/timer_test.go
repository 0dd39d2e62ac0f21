package timer

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrk/dmkit/log"
)

// captureLog routes the default logger to a buffer for the test's duration
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	require.NoError(t, log.SetSink(log.SinkFile, buf))
	log.SetLevel(log.LevelAll)
	t.Cleanup(func() {
		log.SetLevel(log.Disabled)
		_ = log.SetSink(log.SinkUnspecified, nil)
	})
	return buf
}

func TestNewTimer(t *testing.T) {
	tm := New()

	assert.Equal(t, 0, tm.Valid())
	assert.Equal(t, int64(-1), tm.Remaining())
	assert.Equal(t, int64(-1), tm.Elapsed())
	assert.Equal(t, -1, tm.Expired())
}

func TestInitDestroy(t *testing.T) {
	buf := captureLog(t)

	var tm Timer
	tm.Init()
	assert.Empty(t, buf.String())

	tm.Init()
	assert.Contains(t, buf.String(), "already initialized")
	assert.Contains(t, buf.String(), "[WARN ]")

	buf.Reset()
	tm.Destroy()
	assert.Empty(t, buf.String())

	tm.Destroy()
	assert.Contains(t, buf.String(), "already deinitialized")
}

// TestDestroyInvalidates verifies Destroy clears the valid bit too
func TestDestroyInvalidates(t *testing.T) {
	captureLog(t)

	tm := New()
	tm.Set(1000)
	require.Equal(t, 1, tm.Valid())

	tm.Destroy()
	assert.Equal(t, 0, tm.Valid())
}

func TestSetAndExpiry(t *testing.T) {
	tm := New()
	tm.Set(100)

	assert.Equal(t, 1, tm.Valid())
	assert.Equal(t, 0, tm.Expired())

	time.Sleep(40 * time.Millisecond)

	remaining := tm.Remaining()
	elapsed := tm.Elapsed()
	assert.Greater(t, remaining, int64(0))
	assert.Less(t, remaining, int64(100))
	assert.GreaterOrEqual(t, elapsed, int64(35))
	assert.Equal(t, 0, tm.Expired())

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, 1, tm.Expired())
	assert.Equal(t, int64(0), tm.Remaining())
	assert.GreaterOrEqual(t, tm.Elapsed(), int64(100))
}

// TestMonotonicQueries verifies elapsed never decreases and remaining never grows
func TestMonotonicQueries(t *testing.T) {
	tm := New()
	tm.Set(50)

	lastElapsed := int64(0)
	lastRemaining := int64(50)
	for i := 0; i < 20; i++ {
		elapsed := tm.Elapsed()
		remaining := tm.Remaining()

		assert.GreaterOrEqual(t, elapsed, lastElapsed)
		assert.LessOrEqual(t, remaining, lastRemaining)
		lastElapsed, lastRemaining = elapsed, remaining

		time.Sleep(5 * time.Millisecond)
	}

	// Expiry equivalence: expired exactly when nothing remains
	assert.Equal(t, 1, tm.Expired())
	assert.Equal(t, int64(0), tm.Remaining())
}

func TestSetZero(t *testing.T) {
	tm := New()
	tm.Set(0)

	assert.Equal(t, 1, tm.Valid())
	assert.Equal(t, 1, tm.Expired())
	assert.Equal(t, int64(0), tm.Remaining())
}

func TestSetNegative(t *testing.T) {
	buf := captureLog(t)

	tm := New()
	tm.Set(1000)
	require.Equal(t, 1, tm.Valid())

	tm.Set(-1)

	assert.Contains(t, buf.String(), "negative time interval: -1")
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.Equal(t, 0, tm.Valid())
	assert.Equal(t, -1, tm.Expired())
	assert.Equal(t, int64(-1), tm.Remaining())
}

func TestInvalidateIdempotent(t *testing.T) {
	tm := New()
	tm.Set(1000)

	tm.Invalidate()
	assert.Equal(t, 0, tm.Valid())
	assert.Equal(t, -1, tm.Expired())

	tm.Invalidate()
	assert.Equal(t, 0, tm.Valid())

	// A new Set re-arms the timer
	tm.Set(1000)
	assert.Equal(t, 1, tm.Valid())
	assert.Equal(t, 0, tm.Expired())
}

// TestNanosecondCarry verifies deadline normalization for sub-second intervals
func TestNanosecondCarry(t *testing.T) {
	tm := New()

	// Run enough arms that some start close to a second boundary
	for i := 0; i < 100; i++ {
		tm.Set(999)
		assert.LessOrEqual(t, tm.Remaining(), int64(999))
		assert.GreaterOrEqual(t, tm.deadline.Nsec, int64(0))
		assert.Less(t, tm.deadline.Nsec, int64(1_000_000_000))
	}
}

func TestLockedUninitialized(t *testing.T) {
	buf := captureLog(t)

	var tm Timer

	tm.SetLocked(100)
	assert.Contains(t, buf.String(), "Timer.SetLocked(): timer isn't initialized! Can't lock!")

	assert.Equal(t, int64(-1), tm.RemainingLocked())
	assert.Equal(t, int64(-1), tm.ElapsedLocked())
	assert.Equal(t, -1, tm.ExpiredLocked())
	assert.Equal(t, -1, tm.ValidLocked())
	tm.InvalidateLocked()

	// The unlocked status query stays defined on an uninitialized timer
	assert.Equal(t, 0, tm.Valid())
}

func TestLockedMirrorsUnlocked(t *testing.T) {
	tm := New()
	tm.SetLocked(100)

	assert.Equal(t, 1, tm.ValidLocked())
	assert.Equal(t, 0, tm.ExpiredLocked())
	assert.Greater(t, tm.RemainingLocked(), int64(0))
	assert.GreaterOrEqual(t, tm.ElapsedLocked(), int64(0))

	tm.InvalidateLocked()
	assert.Equal(t, 0, tm.ValidLocked())
	assert.Equal(t, -1, tm.ExpiredLocked())
}

// TestLockedConcurrent arms and polls one timer from competing goroutines
func TestLockedConcurrent(t *testing.T) {
	tm := New()
	tm.SetLocked(1000)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				tm.SetLocked(1000)
			}
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				v := tm.ExpiredLocked()
				assert.True(t, v == 0 || v == 1, "ExpiredLocked returned %d", v)
			}
		}
	}()

	time.Sleep(200 * time.Millisecond)
	close(stop)
	wg.Wait()
}

// TestLockedConcurrentInvalidate adds an invalidating goroutine to the mix
func TestLockedConcurrentInvalidate(t *testing.T) {
	tm := New()
	tm.SetLocked(1000)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				tm.SetLocked(500)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				tm.InvalidateLocked()
			}
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				v := tm.ExpiredLocked()
				assert.True(t, v >= -1 && v <= 1, "ExpiredLocked returned %d", v)
			}
		}
	}()

	time.Sleep(200 * time.Millisecond)
	close(stop)
	wg.Wait()
}
