//go:build !linux

package measure

import "time"

// The runtime carries a monotonic reading in every time.Time, so elapsed
// time since process start serves as the clock on targets without a direct
// CLOCK_MONOTONIC binding.
var base = time.Now()

// Now returns the monotonic time since process start.
func Now() Time {
	d := time.Since(base)
	return Time{
		Sec:  int64(d / time.Second),
		Nsec: int64(d % time.Second),
	}
}
