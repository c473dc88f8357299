package timex

import "time"

var start = time.Now()

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// UptimeMs returns monotonic milliseconds since program start. Drivers that
// gate behavior on time-since-power-on should prefer this over NowMs, which
// jumps with wall-clock adjustments.
func UptimeMs() int64 { return time.Since(start).Milliseconds() }
