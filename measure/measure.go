// Package measure provides nested elapsed-time measurement over the
// monotonic clock.
//
// FUNCTIONS IN THIS PACKAGE ARE NOT THREAD-SAFE UNLESS STATED EXPLICITLY.
// The starting points live in one process-wide stack; callers either keep
// measurement on a single goroutine or serialize externally. Diff is pure
// and may be called concurrently.
//
// Start, Get and Print use a stack of readings so measurements nest:
// successive Start calls store to different slots and each Get or Print
// reports the time passed since its matching Start. Handy for measuring a
// function together with its callees:
//
//	measure.Start()
//	someRoutine()
//	measure.Print("someRoutine()") // "someRoutine() took 0.090000000 seconds"
package measure

import (
	"fmt"

	"github.com/wbrk/dmkit/log"
)

// Measurements deeper than this are dropped.
const stackSize = 16

var (
	starts [stackSize]Time
	depth  int
)

// Start stores the current time as a new starting point. The stack holds at
// most 16 starting points; further calls print a diagnostic to stdout and
// store nothing.
func Start() {
	if depth >= stackSize {
		fmt.Println("DM: measure_start(): can't store time: too much calls!")
		return
	}
	starts[depth] = Now()
	depth++
}

// Get returns the time passed since the most recent starting point and pops
// it. On an empty stack the depth stays clamped at zero and the difference
// is taken against the bottom slot.
func Get() Time {
	now := Now()
	depth--
	if depth < 0 {
		depth = 0
	}
	return Diff(starts[depth], now)
}

// Print reports the time passed since the most recent starting point, which
// it pops like Get. The message goes to the log at debug level when the
// logger has a level mask and a sink configured, to stdout otherwise.
func Print(comment string) {
	d := Get()

	if logAvailable() {
		log.Debugf("%s took %s seconds", comment, d)
	} else {
		fmt.Printf("DM: %s took %s seconds\n", comment, d)
	}
}

func logAvailable() bool {
	sink, _ := log.GetSink()
	return log.GetLevel() != log.Disabled && sink != log.SinkUnspecified
}
