package measure

import "fmt"

const nanosecondsInSecond = 1_000_000_000
const nanosecondsInMillisecond = 1_000_000
const millisecondsInSecond = 1000

// Time is a monotonic-clock reading split into whole seconds and a
// nanosecond remainder, mirroring the kernel timespec. The same type holds
// differences produced by Diff.
type Time struct {
	Sec  int64
	Nsec int64
}

// Diff returns end minus start, borrowing one second when the nanosecond
// remainder goes negative. start must not be later than end or the result
// is undefined. Pure, safe for concurrent use.
func Diff(start, end Time) Time {
	d := Time{
		Sec:  end.Sec - start.Sec,
		Nsec: end.Nsec - start.Nsec,
	}
	if d.Nsec < 0 {
		d.Nsec += nanosecondsInSecond
		d.Sec--
	}
	return d
}

// Compare orders two readings at nanosecond precision: -1 if t is earlier
// than u, 0 if equal, 1 if later.
func (t Time) Compare(u Time) int {
	if t.Sec == u.Sec {
		switch {
		case t.Nsec == u.Nsec:
			return 0
		case t.Nsec > u.Nsec:
			return 1
		default:
			return -1
		}
	}
	if t.Sec > u.Sec {
		return 1
	}
	return -1
}

// Milliseconds converts a difference to whole milliseconds, rounding
// toward zero.
func (t Time) Milliseconds() int64 {
	return t.Sec*millisecondsInSecond + t.Nsec/nanosecondsInMillisecond
}

// String renders a difference as seconds with full nanosecond precision,
// e.g. "1.092398000".
func (t Time) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nsec)
}
