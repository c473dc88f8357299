package max7456

import (
	"sync"

	"tinygo.org/x/drivers"
)

// Bus is the transaction gateway the driver talks through. Register and
// Transfer calls are not self-locking: any sequence that must appear atomic to
// other bus users is bracketed by Lock/Unlock by the caller, and the lock is
// released on every exit path.
//
// ReadRegister expects the address to already carry the chip's read flag where
// the register map requires one (regStat includes it; VM0 readback is
// regVM0|regReadFlag).
type Bus interface {
	ReadRegister(reg byte) (byte, error)
	WriteRegister(reg, val byte) error
	// Transfer sends an accumulated command payload as one bulk write.
	Transfer(buf []byte) error
	Lock()
	Unlock()
}

// PinOutput drives a logic level on an output pin.
type PinOutput func(level bool)

// SPIBus implements Bus over an SPI port with a dedicated active-low chip
// select. It is the only place the hardware dependency enters; the driver core
// consumes only the Bus interface.
type SPIBus struct {
	spi drivers.SPI
	cs  PinOutput
	mu  sync.Mutex

	w [2]byte
	r [2]byte
}

var _ Bus = (*SPIBus)(nil)

// NewSPIBus wraps a configured SPI port. cs must be initialised as an output
// and idle high before the first call.
func NewSPIBus(spi drivers.SPI, cs PinOutput) *SPIBus {
	return &SPIBus{spi: spi, cs: cs}
}

func (b *SPIBus) Lock()   { b.mu.Lock() }
func (b *SPIBus) Unlock() { b.mu.Unlock() }

func (b *SPIBus) ReadRegister(reg byte) (byte, error) {
	b.w[0], b.w[1] = reg, 0
	b.cs(false)
	err := b.spi.Tx(b.w[:], b.r[:])
	b.cs(true)
	if err != nil {
		return 0, err
	}
	return b.r[1], nil
}

func (b *SPIBus) WriteRegister(reg, val byte) error {
	b.w[0], b.w[1] = reg, val
	b.cs(false)
	err := b.spi.Tx(b.w[:], nil)
	b.cs(true)
	return err
}

func (b *SPIBus) Transfer(buf []byte) error {
	b.cs(false)
	err := b.spi.Tx(buf, nil)
	b.cs(true)
	return err
}
