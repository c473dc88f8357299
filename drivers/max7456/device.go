package max7456

import (
	"errors"
	"time"

	"osdcode-go/x/mempool"
)

// Errors returned by the driver.
var (
	ErrAllocation     = errors.New("max7456: buffer allocation failed")
	ErrResetFailed    = errors.New("max7456: reset readback mismatch")
	ErrNotInitialized = errors.New("max7456: not initialized")
	ErrFontAsset      = errors.New("max7456: font asset missing or wrong size")
	ErrFontTimeout    = errors.New("max7456: font programming timeout")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Pool supplies the command payload (DMA kind) and the cell planes (fast
	// kind). Defaults to the unbounded heap pool.
	Pool mempool.Pool
	// Clock supplies milliseconds since power-on and timed waits. Defaults to
	// a process-uptime clock.
	Clock Clock
	// Assets resolves the font table for UpdateFont. Optional; UpdateFont
	// fails while unset.
	Assets AssetSource
	// FontAsset names the glyph table blob. Default "osd_font.bin".
	FontAsset string
	// CellBudget caps cells transmitted per Flush. Default 64.
	CellBudget int
	// Detect selects the NTSC detection policy. The zero value keeps the
	// alt-NTSC fallback.
	Detect DetectPolicy
}

// Device drives one MAX7456 on a shared serial bus. It expects a single
// periodic caller; none of its methods are safe for concurrent use.
type Device struct {
	bus    Bus
	clock  Clock
	pool   mempool.Pool
	assets AssetSource

	fontAsset  string
	cellBudget int
	detect     DetectPolicy

	buf        bufferSet
	payloadLen int

	mode            byte // expected VM0 value, cached for stall detection
	standard        VideoStandard
	screenSize      int
	rows            int
	lastSignalCheck int64
	detectSince     int64 // debounce start, 0 = not running
	ready           bool
	fontUpdate      bool
}

// New constructs a Device around an externally owned bus gateway. The gateway
// must outlive the device. No hardware is touched until Init.
func New(bus Bus, cfg Config) *Device {
	if cfg.Pool == nil {
		cfg.Pool = mempool.Heap{}
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.FontAsset == "" {
		cfg.FontAsset = DefaultFontAsset
	}
	if cfg.CellBudget <= 0 {
		cfg.CellBudget = defaultCellBudget
	}
	return &Device{
		bus:        bus,
		clock:      cfg.Clock,
		pool:       cfg.Pool,
		assets:     cfg.Assets,
		fontAsset:  cfg.FontAsset,
		cellBudget: cfg.CellBudget,
		detect:     cfg.Detect,
		// Assume PAL until the first reconfiguration reads the input.
		mode:       vm0ModePAL | vm0EnableOSD,
		standard:   StandardPAL,
		screenSize: screenCellsPAL,
		rows:       RowsPAL,
	}
}

// Init allocates the working buffers and soft-resets the controller. On any
// failure nothing stays allocated, so Init may be retried; Close is safe
// either way.
func (d *Device) Init() error {
	d.buf.release(d.pool) // re-Init starts from a clean slate
	if err := d.buf.alloc(d.pool, payloadBytes(d.cellBudget)); err != nil {
		return ErrAllocation
	}

	d.bus.Lock()
	err := d.bus.WriteRegister(regVM0, vm0SoftReset)
	if err == nil {
		d.clock.Sleep(time.Millisecond)
		var status byte
		status, err = d.bus.ReadRegister(regVM0 | regReadFlag)
		if err == nil && status != 0 {
			err = ErrResetFailed
		}
	}
	d.bus.Unlock()

	if err != nil {
		d.buf.release(d.pool)
		return err
	}
	return nil
}

// Close returns every buffer to the pool. Idempotent; safe after a failed
// Init.
func (d *Device) Close() {
	d.buf.release(d.pool)
	d.ready = false
}

// Clear blanks the live buffer. The shadow planes are left alone so the next
// Flush emits the blanking as an ordinary diff.
func (d *Device) Clear() {
	for i := range d.buf.frame {
		d.buf.frame[i] = ' '
		d.buf.attr[i] = 0
	}
}

// Write places text starting at (col, row) in the live buffer, clipping at
// the right edge. Out-of-range positions are ignored.
func (d *Device) Write(col, row int, text string, attr byte) {
	if d.buf.frame == nil || row < 0 || row >= RowsPAL || col < 0 {
		return
	}
	for i := 0; i < len(text) && col < Columns; i++ {
		d.buf.frame[row*Columns+col] = text[i]
		d.buf.attr[row*Columns+col] = attr
		col++
	}
}

// Flush runs one display cycle: a pending font update if one was requested,
// the signal/reconfiguration check, then the frame diff transfer. A font
// update failure is reported but does not stop the cycle; the request is
// cleared either way and the caller decides whether to re-request.
func (d *Device) Flush() error {
	if d.buf.frame == nil {
		return ErrNotInitialized
	}
	var fontErr error
	if d.fontUpdate {
		fontErr = d.UpdateFont()
		d.fontUpdate = false
	}
	if err := d.checkSignal(); err != nil {
		return err
	}
	if err := d.transferFrame(); err != nil {
		return err
	}
	return fontErr
}

// RequestFontUpdate arms a one-shot font reprogram on the next Flush.
func (d *Device) RequestFontUpdate() { d.fontUpdate = true }

// Ready reports whether the controller has been configured against a detected
// input standard; frame transfers are no-ops until then.
func (d *Device) Ready() bool { return d.ready }

// Standard returns the configured video standard.
func (d *Device) Standard() VideoStandard { return d.standard }

// ScreenSize returns the visible cell count for the configured standard.
func (d *Device) ScreenSize() int { return d.screenSize }

// Rows returns the visible row count for the configured standard.
func (d *Device) Rows() int { return d.rows }
