package max7456

import (
	"testing"
	"time"
)

// Compile-time check.
var _ Bus = (*fakeBus)(nil)

// command is one decoded (register, value) pair from a bulk payload.
type command struct{ reg, val byte }

// fakeBus is a scripted MAX7456-like register file. It enforces the lock
// discipline: every register access and transfer must happen with the lock
// held, and the lock must be balanced when the test ends.
type fakeBus struct {
	t *testing.T

	regs map[byte]byte
	// stat is returned for status reads unless statFn is set.
	stat   byte
	statFn func() byte
	// resetValue is what VM0 reads back after a soft reset command.
	resetValue byte

	writes    []command
	transfers [][]byte

	readErr  error
	writeErr error
	txErr    error

	locked int
}

func newFakeBus(t *testing.T) *fakeBus {
	return &fakeBus{t: t, regs: make(map[byte]byte)}
}

func (b *fakeBus) Lock() { b.locked++ }

func (b *fakeBus) Unlock() {
	if b.locked == 0 {
		b.t.Fatalf("bus unlocked while not held")
	}
	b.locked--
}

func (b *fakeBus) requireLocked(op string) {
	if b.locked == 0 {
		b.t.Fatalf("%s without holding the bus lock", op)
	}
}

func (b *fakeBus) status() byte {
	if b.statFn != nil {
		return b.statFn()
	}
	return b.stat
}

func (b *fakeBus) ReadRegister(reg byte) (byte, error) {
	b.requireLocked("ReadRegister")
	if b.readErr != nil {
		return 0, b.readErr
	}
	if reg == regStat {
		return b.status(), nil
	}
	return b.regs[reg&^byte(regReadFlag)], nil
}

func (b *fakeBus) apply(reg, val byte) {
	if reg == regVM0 && val == vm0SoftReset {
		b.regs[regVM0] = b.resetValue
		return
	}
	b.regs[reg] = val
}

func (b *fakeBus) WriteRegister(reg, val byte) error {
	b.requireLocked("WriteRegister")
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes = append(b.writes, command{reg, val})
	b.apply(reg, val)
	return nil
}

func (b *fakeBus) Transfer(buf []byte) error {
	b.requireLocked("Transfer")
	if b.txErr != nil {
		return b.txErr
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	b.transfers = append(b.transfers, cp)
	for _, c := range decode(b.t, cp) {
		b.apply(c.reg, c.val)
	}
	return nil
}

// registerWrites counts direct writes to one register.
func (b *fakeBus) registerWrites(reg byte) int {
	n := 0
	for _, w := range b.writes {
		if w.reg == reg {
			n++
		}
	}
	return n
}

func decode(t *testing.T, buf []byte) []command {
	t.Helper()
	if len(buf)%2 != 0 {
		t.Fatalf("odd payload length %d", len(buf))
	}
	cmds := make([]command, 0, len(buf)/2)
	for i := 0; i < len(buf); i += 2 {
		cmds = append(cmds, command{buf[i], buf[i+1]})
	}
	return cmds
}

// countReg counts pairs addressing one register across payloads.
func countReg(t *testing.T, payloads [][]byte, reg byte) int {
	t.Helper()
	n := 0
	for _, p := range payloads {
		for _, c := range decode(t, p) {
			if c.reg == reg {
				n++
			}
		}
	}
	return n
}

// fakeClock is a virtual millisecond clock; Sleep advances it.
type fakeClock struct{ ms int64 }

func (c *fakeClock) Millis() int64 { return c.ms }

func (c *fakeClock) Sleep(d time.Duration) { c.ms += d.Milliseconds() }

func (c *fakeClock) advance(ms int64) { c.ms += ms }

// newTestDevice builds a device on a fake bus with a PAL input, the clock
// already past the warmup guard.
func newTestDevice(t *testing.T, cfg Config) (*Device, *fakeBus, *fakeClock) {
	t.Helper()
	bus := newFakeBus(t)
	bus.stat = statPAL
	clock := &fakeClock{ms: 2000}
	cfg.Clock = clock
	d := New(bus, cfg)
	t.Cleanup(func() {
		if bus.locked != 0 {
			t.Errorf("bus lock still held at test end (depth %d)", bus.locked)
		}
		d.Close()
	})
	return d, bus, clock
}

// mustInit runs Init and fails the test on error.
func mustInit(t *testing.T, d *Device) {
	t.Helper()
	if err := d.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
}

// converge flushes until a cycle transfers nothing, returning the number of
// cycles that did transfer.
func converge(t *testing.T, d *Device, bus *fakeBus) int {
	t.Helper()
	busy := 0
	for i := 0; i < 100; i++ {
		before := len(bus.transfers)
		if err := d.Flush(); err != nil {
			t.Fatalf("flush during convergence: %v", err)
		}
		if len(bus.transfers) == before {
			return busy
		}
		busy++
	}
	t.Fatalf("no convergence after 100 cycles")
	return 0
}
