package max7456

import (
	"time"

	"osdcode-go/x/timex"
)

// Clock supplies the driver's notion of time. Millis is milliseconds since
// power-on; Sleep blocks the caller. Tests inject a virtual clock.
type Clock interface {
	Millis() int64
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Millis() int64         { return timex.UptimeMs() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }
