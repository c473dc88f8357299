package max7456

// transferFrame sends live cells that differ from the shadow planes, at most
// cellBudget per call. Cells beyond the budget stay dirty in the shadow and go
// out on later calls, which bounds bus time per cycle.
func (d *Device) transferFrame() error {
	if !d.ready {
		return nil
	}

	updated := 0
	lastAttr := byte(forceRedraw) // no display mode selected yet this cycle
	d.resetPayload()

	for pos := 0; pos < d.screenSize; pos++ {
		if d.buf.frame[pos] == d.buf.shadowFrame[pos] && d.buf.attr[pos] == d.buf.shadowAttr[pos] {
			continue
		}
		updated++
		if updated > d.cellBudget {
			break
		}
		d.buf.shadowFrame[pos] = d.buf.frame[pos]
		d.buf.shadowAttr[pos] = d.buf.attr[pos]

		// Re-select the display mode only when the rendering bits change;
		// runs of same-attribute cells share one DMM write.
		attr := d.buf.attr[pos] & attrMask
		if attr != lastAttr {
			d.addCommand(regDMM, attr)
			lastAttr = attr
		}
		d.addCommand(regDMAH, byte(pos>>8))
		d.addCommand(regDMAL, byte(pos))
		d.addCommand(regDMDI, d.buf.frame[pos])
	}

	return d.flushPayload()
}
