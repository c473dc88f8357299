package max7456

import "osdcode-go/x/mempool"

// bufferSet owns the five working buffers: the bulk command payload
// (DMA-capable) and the four cell planes (fast memory). The planes are sized
// for PAL; NTSC uses a prefix.
type bufferSet struct {
	payload     []byte
	frame       []byte
	shadowFrame []byte
	attr        []byte
	shadowAttr  []byte
}

// payloadBytes sizes the command payload for the larger of a full transfer
// cycle (4 pairs per cell plus slack) and a single glyph program.
func payloadBytes(cellBudget int) int {
	n := (cellBudget + 1) * 8
	if glyph := 2 * (2*glyphStride + 3); n < glyph {
		n = glyph
	}
	return n
}

// alloc obtains every buffer or none: on the first failure, buffers obtained
// so far are returned to the pool before the error is reported.
func (b *bufferSet) alloc(pool mempool.Pool, payloadSize int) error {
	plan := []struct {
		dst  *[]byte
		size int
		kind mempool.Kind
	}{
		{&b.payload, payloadSize, mempool.KindDMA},
		{&b.frame, screenCellsPAL, mempool.KindFast},
		{&b.shadowFrame, screenCellsPAL, mempool.KindFast},
		{&b.attr, screenCellsPAL, mempool.KindFast},
		{&b.shadowAttr, screenCellsPAL, mempool.KindFast},
	}
	for _, p := range plan {
		buf, err := pool.Alloc(p.size, p.kind)
		if err != nil {
			b.release(pool)
			return err
		}
		*p.dst = buf
	}
	return nil
}

// release frees every held buffer exactly once. Idempotent; safe after a
// partial alloc.
func (b *bufferSet) release(pool mempool.Pool) {
	free := func(dst *[]byte, kind mempool.Kind) {
		if *dst != nil {
			pool.Free(*dst, kind)
			*dst = nil
		}
	}
	free(&b.payload, mempool.KindDMA)
	free(&b.frame, mempool.KindFast)
	free(&b.shadowFrame, mempool.KindFast)
	free(&b.attr, mempool.KindFast)
	free(&b.shadowAttr, mempool.KindFast)
}
