//go:build rp2040

// cmd/osd-boardtest/main.go
package main

import (
	"machine"
	"time"

	"osdcode-go/drivers/max7456"
)

// ---------- Configuration ----------

const (
	spiFrequency  = 10_000_000
	flushInterval = 50 * time.Millisecond

	// Print a status line every N flush cycles.
	statusEvery = 20
)

var csPin = machine.GP17

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("osd-boardtest: boot")

	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{Frequency: spiFrequency, Mode: 0}); err != nil {
		println("osd-boardtest: spi configure failed:", err.Error())
		return
	}
	csPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	csPin.High()

	bus := max7456.NewSPIBus(spi, func(level bool) { csPin.Set(level) })
	osd := max7456.New(bus, max7456.Config{})
	if err := osd.Init(); err != nil {
		println("osd-boardtest: init failed:", err.Error())
		return
	}
	defer osd.Close()

	osd.Clear()
	osd.Write(8, 1, "OSD BOARD TEST", 0)
	osd.Write(8, 3, "BLINK", max7456.AttrBlink)
	osd.Write(8, 5, "INVERT", max7456.AttrInvert)

	cycle := 0
	for {
		if err := osd.Flush(); err != nil {
			println("osd-boardtest: flush:", err.Error())
		}
		cycle++
		if cycle%statusEvery == 0 {
			std := "NTSC"
			if osd.Standard() == max7456.StandardPAL {
				std = "PAL"
			}
			println("osd-boardtest: ready:", osd.Ready(), "standard:", std, "rows:", osd.Rows())
		}
		time.Sleep(flushInterval)
	}
}
