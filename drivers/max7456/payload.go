package max7456

// resetPayload rewinds the command encoder.
func (d *Device) resetPayload() { d.payloadLen = 0 }

// addCommand queues one (register, value) pair. Pairs beyond the payload
// capacity are dropped; the payload is sized so no normal cycle reaches that
// bound.
func (d *Device) addCommand(reg, val byte) {
	if d.payloadLen < len(d.buf.payload)-1 {
		d.buf.payload[d.payloadLen] = reg
		d.buf.payload[d.payloadLen+1] = val
		d.payloadLen += 2
	}
}

// flushPayload sends the accumulated pairs as one bulk transfer under the bus
// lock. An empty payload performs no bus activity.
func (d *Device) flushPayload() error {
	if d.payloadLen == 0 {
		return nil
	}
	d.bus.Lock()
	defer d.bus.Unlock()
	return d.bus.Transfer(d.buf.payload[:d.payloadLen])
}
