package max7456

// VideoStandard identifies the analog input format the controller is
// configured against.
type VideoStandard uint8

const (
	StandardNTSC VideoStandard = iota
	StandardPAL
)

// DetectPolicy selects how NTSC input is recognised from the status register.
type DetectPolicy uint8

const (
	// DetectAltNTSC treats "signal present, PAL bit clear" as NTSC even when
	// the NTSC bit is also clear. Some chip revisions read the lower status
	// bits as zero with a live NTSC input; this policy covers them and is
	// harmless on conforming parts.
	DetectAltNTSC DetectPolicy = iota
	// DetectStrict requires the NTSC status bit to be set.
	DetectStrict
)

const (
	signalCheckIntervalMs = 1000
	signalDebounceMs      = 100
	warmupMs              = 1500
)

func (d *Device) vinIsNTSC(stat byte) bool {
	if stat&statLOS != 0 {
		return false
	}
	if d.detect == DetectStrict {
		return stat&statNTSC != 0
	}
	return stat&statPAL == 0
}

// checkSignal verifies the controller still holds the expected mode and that
// the configured standard matches the input, reconfiguring when it does not.
// It holds the bus lock for its entire duration.
func (d *Device) checkSignal() error {
	d.bus.Lock()
	defer d.bus.Unlock()

	check, err := d.bus.ReadRegister(regVM0 | regReadFlag)
	if err != nil {
		return err
	}

	// A stall or unexpected reset is corrected at once, no debounce.
	if check != d.mode {
		return d.reinit()
	}

	now := d.clock.Millis()
	if now-d.lastSignalCheck <= signalCheckIntervalMs {
		return nil
	}
	d.lastSignalCheck = now

	sense, err := d.bus.ReadRegister(regStat)
	if err != nil {
		return err
	}
	if sense&statLOS != 0 {
		// Format bits are not trusted without a signal.
		d.detectSince = 0
		return nil
	}

	mismatch := (vinIsPAL(sense) && modeIsNTSC(d.mode)) ||
		(d.vinIsNTSC(sense) && modeIsPAL(d.mode))
	if !mismatch {
		d.detectSince = 0
		return nil
	}
	if d.detectSince == 0 {
		// Wait for the input to stabilise.
		d.detectSince = now
		return nil
	}
	if now-d.detectSince > signalDebounceMs {
		return d.reinit()
	}
	return nil
}

// reinit reconfigures the controller for the detected input standard and
// forces a full redraw. The caller holds the bus lock.
func (d *Device) reinit() error {
	// The video source needs time to come up; configuring against a
	// half-started camera locks in the wrong standard.
	if d.clock.Millis() < warmupMs {
		return nil
	}

	sense, err := d.bus.ReadRegister(regStat)
	if err != nil {
		return err
	}
	if vinIsPAL(sense) {
		d.standard = StandardPAL
		d.mode = vm0ModePAL | vm0EnableOSD
		d.screenSize = screenCellsPAL
		d.rows = RowsPAL
	} else {
		d.standard = StandardNTSC
		d.mode = vm0ModeNTSC | vm0EnableOSD
		d.screenSize = screenCellsNTSC
		d.rows = RowsNTSC
	}

	// Same character black/white level on every row, sized for the larger
	// standard.
	for row := 0; row < RowsPAL; row++ {
		if err := d.bus.WriteRegister(regRB0+byte(row), rowBrightness); err != nil {
			return err
		}
	}
	if err := d.bus.WriteRegister(regVM0, d.mode); err != nil {
		return err
	}
	if err := d.bus.WriteRegister(regVM1, blinkDuty5050|blinkTime3|backgroundBrightness28); err != nil {
		return err
	}
	if err := d.bus.WriteRegister(regDMM, dmmClearDisplay); err != nil {
		return err
	}

	// Poison the shadow planes so the next transfer redraws everything.
	for i := range d.buf.shadowFrame {
		d.buf.shadowFrame[i] = forceRedraw
	}
	for i := range d.buf.shadowAttr {
		d.buf.shadowAttr[i] = forceRedraw
	}

	d.ready = true
	return nil
}
