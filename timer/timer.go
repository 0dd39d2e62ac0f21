// Package timer marks a deadline in the future and answers whether the
// deadline has expired. Intervals are measured on the monotonic clock.
//
// There are two sets of methods, thread-safe and thread-unsafe. They behave
// almost identically and differ mostly in that methods with a Locked suffix
// guard access to the Timer with its mutex. Mixing the two disciplines on
// one timer is unsafe.
//
// Usage across goroutines:
//
//	tm := timer.New()
//
//	// goroutine A
//	tm.SetLocked(5000) // expire after 5 seconds
//
//	// goroutine B
//	tm.InvalidateLocked()
//
//	// goroutine C
//	switch tm.ExpiredLocked() {
//	case -1: // was invalidated
//	case 1: // actually expired
//	case 0: // still pending
//	}
package timer

import (
	"sync"
	"sync/atomic"

	"github.com/wbrk/dmkit/log"
	"github.com/wbrk/dmkit/measure"
)

const (
	statusValid       int32 = 1 << 0
	statusInitialized int32 = 1 << 1
)

const (
	nanosecondsInSecond      = 1_000_000_000
	nanosecondsInMillisecond = 1_000_000
	millisecondsInSecond     = 1000
)

// Timer is a deadline on the monotonic clock. Treat it as an opaque type.
// The zero value is uninitialized; initialize with Init, or use New which
// returns a ready timer in the invalid state. The status bits are accessed
// atomically so that status-only reads stay defined even next to locked
// writers.
type Timer struct {
	status   atomic.Int32
	mu       sync.Mutex
	start    measure.Time
	deadline measure.Time
}

// New returns an initialized timer in the invalid state. It plays the role
// of a static initializer: queries return -1 until the first Set.
func New() *Timer {
	t := &Timer{}
	t.status.Store(statusInitialized)
	return t
}

// Init initializes a zero-value timer and sets it to the invalid state.
// Initializing an already-initialized timer logs a warning and changes
// nothing. Initialization may be omitted entirely when only the unlocked
// methods are used.
func (t *Timer) Init() {
	if t.initialized() {
		log.Warnf("Timer.Init(): timer is already initialized")
		return
	}
	t.status.Store(statusInitialized)
}

// Destroy deinitializes the timer and sets it to the invalid state.
// Destroying a timer that was never initialized, or was destroyed already,
// logs a warning and changes nothing.
func (t *Timer) Destroy() {
	if !t.initialized() {
		log.Warnf("Timer.Destroy(): timer is already deinitialized")
		return
	}
	t.status.Store(0)
}

// Set arms the timer to expire msec milliseconds from now and marks it
// valid. A negative msec logs an error, marks the timer invalid and leaves
// the timestamps untouched.
func (t *Timer) Set(msec int64) {
	if msec < 0 {
		t.validUnset()
		log.Errorf("Timer.Set(): negative time interval: %d", msec)
		return
	}

	// Deriving the deadline from the captured start eliminates a second
	// clock read.
	t.start = measure.Now()
	d := t.start
	d.Sec += msec / millisecondsInSecond
	d.Nsec += (msec % millisecondsInSecond) * nanosecondsInMillisecond
	if d.Nsec >= nanosecondsInSecond {
		d.Nsec -= nanosecondsInSecond
		d.Sec++
	}
	t.deadline = d

	t.validSet()
}

// Remaining returns -1 if the timer is invalid, 0 if it has expired, and
// the remaining time in whole milliseconds otherwise. Expiry is decided at
// nanosecond precision.
func (t *Timer) Remaining() int64 {
	if !t.valid() {
		return -1
	}

	now := measure.Now()
	if now.Compare(t.deadline) >= 0 { // timer expired
		return 0
	}
	return measure.Diff(now, t.deadline).Milliseconds()
}

// Elapsed returns -1 if the timer is invalid, and the time since the last
// Set in whole milliseconds otherwise.
func (t *Timer) Elapsed() int64 {
	if !t.valid() {
		return -1
	}
	return measure.Diff(t.start, measure.Now()).Milliseconds()
}

// Expired returns -1 if the timer is invalid, 1 if the deadline has been
// reached, and 0 otherwise.
func (t *Timer) Expired() int {
	if !t.valid() {
		return -1
	}
	if measure.Now().Compare(t.deadline) >= 0 {
		return 1
	}
	return 0
}

// Valid returns 1 if the timer is in the valid state and 0 otherwise.
func (t *Timer) Valid() int {
	if t.valid() {
		return 1
	}
	return 0
}

// Invalidate sets the timer to the invalid state. Idempotent.
func (t *Timer) Invalidate() {
	t.validUnset()
}

// Locked variants. Each behaves as its unlocked counterpart with one
// exception: on an uninitialized timer it logs an error and, where a value
// is returned, returns -1.

// SetLocked is Set under the timer mutex.
func (t *Timer) SetLocked(msec int64) {
	if !t.lockable("SetLocked") {
		return
	}
	t.mu.Lock()
	t.Set(msec)
	t.mu.Unlock()
}

// RemainingLocked is Remaining under the timer mutex.
func (t *Timer) RemainingLocked() int64 {
	if !t.lockable("RemainingLocked") {
		return -1
	}
	t.mu.Lock()
	result := t.Remaining()
	t.mu.Unlock()
	return result
}

// ElapsedLocked is Elapsed under the timer mutex.
func (t *Timer) ElapsedLocked() int64 {
	if !t.lockable("ElapsedLocked") {
		return -1
	}
	t.mu.Lock()
	result := t.Elapsed()
	t.mu.Unlock()
	return result
}

// ExpiredLocked is Expired under the timer mutex.
func (t *Timer) ExpiredLocked() int {
	if !t.lockable("ExpiredLocked") {
		return -1
	}
	t.mu.Lock()
	result := t.Expired()
	t.mu.Unlock()
	return result
}

// ValidLocked is Valid under the timer mutex.
func (t *Timer) ValidLocked() int {
	if !t.lockable("ValidLocked") {
		return -1
	}
	t.mu.Lock()
	result := t.Valid()
	t.mu.Unlock()
	return result
}

// InvalidateLocked is Invalidate under the timer mutex.
func (t *Timer) InvalidateLocked() {
	if !t.lockable("InvalidateLocked") {
		return
	}
	t.mu.Lock()
	t.Invalidate()
	t.mu.Unlock()
}

func (t *Timer) lockable(op string) bool {
	if !t.initialized() {
		log.Errorf("Timer.%s(): timer isn't initialized! Can't lock!", op)
		return false
	}
	return true
}

func (t *Timer) validSet() {
	t.status.Or(statusValid)
}

func (t *Timer) validUnset() {
	t.status.And(^statusValid)
}

func (t *Timer) valid() bool {
	return t.status.Load()&statusValid != 0
}

func (t *Timer) initialized() bool {
	return t.status.Load()&statusInitialized != 0
}
