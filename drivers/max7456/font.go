package max7456

import "time"

// Glyph table geometry: 256 glyphs, 54 NVM shadow-RAM bytes each.
const (
	glyphCount  = 256
	glyphStride = 54

	nvmPollInterval = 15 * time.Millisecond
	nvmMaxPolls     = 10000
)

// DefaultFontAsset is the glyph table blob name looked up when Config leaves
// FontAsset empty.
const DefaultFontAsset = "osd_font.bin"

// AssetSource resolves named binary blobs (see the assets package for
// ready-made implementations).
type AssetSource interface {
	FindAsset(name string) ([]byte, error)
}

// UpdateFont programs the full glyph table into the controller's non-volatile
// character memory, one glyph per bulk transfer, waiting out the NVM busy flag
// between glyphs. The display is disabled while programming; the next Flush
// notices the cleared mode register and reconfigures.
//
// Failure on any glyph aborts the rest; glyphs already committed stay
// committed. The operation shares the bus lock discipline with frame
// transfers, so it must not run concurrently with Flush.
func (d *Device) UpdateFont() error {
	if d.buf.payload == nil {
		return ErrNotInitialized
	}
	if d.assets == nil {
		return ErrFontAsset
	}
	font, err := d.assets.FindAsset(d.fontAsset)
	if err != nil {
		return ErrFontAsset
	}
	if len(font) != glyphCount*glyphStride {
		return ErrFontAsset
	}

	for chr := 0; chr < glyphCount; chr++ {
		glyph := font[chr*glyphStride : (chr+1)*glyphStride]

		d.resetPayload()
		d.addCommand(regVM0, 0) // OSD off while writing character memory
		d.addCommand(regCMAH, byte(chr))
		for x := 0; x < glyphStride; x++ {
			d.addCommand(regCMAL, byte(x))
			d.addCommand(regCMDI, glyph[x])
		}
		d.addCommand(regCMM, cmmWriteNVM)
		if err := d.flushPayload(); err != nil {
			return err
		}

		if err := d.waitNVM(); err != nil {
			return err
		}
	}
	return nil
}

// waitNVM polls the status register until the NVM busy bit clears, bounded by
// nvmMaxPolls attempts.
func (d *Device) waitNVM() error {
	for retry := 0; retry < nvmMaxPolls; retry++ {
		d.clock.Sleep(nvmPollInterval)
		d.bus.Lock()
		status, err := d.bus.ReadRegister(regStat)
		d.bus.Unlock()
		if err != nil {
			return err
		}
		if status&statNVRBusy == 0 {
			return nil
		}
	}
	return ErrFontTimeout
}
