package app

import "time"

// Clock supplies epoch-millisecond timestamps for createdAt/timestamp
// fields. Implemented by SystemClock (production) and
// testutil.DeterministicClock (tests).
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// NowMillis returns the current time in epoch milliseconds.
func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
