// Package max7456 provides constants for register addresses and bitfields used
// in the operation of the MAX7456 single-channel monochrome OSD generator.
package max7456

const (
	// OR into a register address to read it back over SPI.
	regReadFlag = 0x80

	// --- Register sub-addresses ---

	regVM0   = 0x00 // video mode 0 (standard select, enable, reset)
	regVM1   = 0x01 // video mode 1 (blink duty/time, background brightness)
	regHOS   = 0x02 // horizontal offset
	regVOS   = 0x03 // vertical offset
	regDMM   = 0x04 // display memory mode (attributes, clear, autoincrement)
	regDMAH  = 0x05 // display memory address high
	regDMAL  = 0x06 // display memory address low
	regDMDI  = 0x07 // display memory data in
	regCMM   = 0x08 // character memory mode (NVM commit)
	regCMAH  = 0x09 // character memory address high (glyph index)
	regCMAL  = 0x0a // character memory address low (byte offset)
	regCMDI  = 0x0b // character memory data in
	regOSDM  = 0x0c // OSD mux / rise-fall
	regRB0   = 0x10 // row 0 brightness; rows 1..15 follow at +1 each
	regOSDBL = 0x6c // OSD black level
	regStat  = 0xA0 // status (read-only; address includes the read flag)
)

// VM0 bits.
const (
	vm0BufferDisable = 0x01
	vm0SoftReset     = 0x02
	vm0VSyncNext     = 0x04
	vm0EnableOSD     = 0x08
	vm0ModePAL       = 0x40
	vm0ModeNTSC      = 0x00
	vm0ModeMask      = 0x40
)

func modeIsPAL(vm0 byte) bool  { return vm0&vm0ModeMask == vm0ModePAL }
func modeIsNTSC(vm0 byte) bool { return vm0&vm0ModeMask == vm0ModeNTSC }

// VM1 bits: blink duty cycle (on:off), blink period, background brightness.
const (
	blinkDuty5050 = 0x00
	blinkDuty3366 = 0x01
	blinkDuty2575 = 0x02
	blinkDuty7525 = 0x03

	blinkTime0 = 0x00
	blinkTime1 = 0x04
	blinkTime2 = 0x08
	blinkTime3 = 0x0C

	backgroundBrightness28 = 0x04 << 4
)

// Status register bits.
const (
	statPAL     = 0x01
	statNTSC    = 0x02
	statLOS     = 0x04
	statNVRBusy = 0x20
)

func vinIsPAL(stat byte) bool { return stat&statLOS == 0 && stat&statPAL != 0 }

// CMM commands.
const cmmWriteNVM = 0xA0

// DMM bits. AttrBlink and AttrInvert are the caller-facing cell attribute
// bits; they are the exact on-wire DMM values, so a cell attribute can be
// masked straight into the mode register.
const (
	AttrBlink  = 1 << 4
	AttrInvert = 1 << 3

	attrMask = AttrBlink | AttrInvert

	dmmClearDisplay  = 1 << 2
	dmmAutoIncrement = 1 << 0
)

// Character black/white level written to every row brightness register.
const (
	whiteBrightness = 0x01
	blackBrightness = 0x00
	rowBrightness   = blackBrightness<<2 | whiteBrightness
)

// Geometry. NTSC screens use a prefix of the PAL-sized planes.
const (
	Columns         = 30
	RowsNTSC        = 13
	RowsPAL         = 16
	screenCellsPAL  = Columns * RowsPAL  // 480
	screenCellsNTSC = Columns * RowsNTSC // 390
)

// Default cap on cells transmitted per transfer cycle.
const defaultCellBudget = 64

// forceRedraw is the shadow-plane sentinel written to both shadow planes on
// reconfiguration. A live (char, attr) pair can never equal (0xFF, 0xFF)
// because attribute values use only attrMask bits; if the attribute encoding
// ever widens to eight bits this sentinel must be revisited.
const forceRedraw = 0xFF
