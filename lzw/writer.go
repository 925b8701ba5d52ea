// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "io"

// EncodeOptions configures a Writer. The zero value is not the historical
// default: use DefaultEncodeOptions, or pass nil to NewWriter, to get
// MaxBits 16 and block mode enabled.
type EncodeOptions struct {
	MaxBits   int  // Code-width ceiling, 9..16.
	BlockMode bool // Allow the encoder to emit CLEAR and reset the dictionary.
}

// DefaultEncodeOptions returns the historical compress(1) defaults: 16-bit
// codes, block mode enabled.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{MaxBits: maxBitsCeiling, BlockMode: true}
}

// Writer is a streaming LZW encoder producing the historical .Z bitstream
// (spec.md §4.3). Write accepts arbitrary byte slices; Close flushes the
// final code and the trailing partial byte.
type Writer struct {
	InputOffset  int64 // Total bytes accepted by Write
	OutputOffset int64 // Total bytes written to the underlying io.Writer

	w   io.Writer
	err error

	maxBits   uint
	blockMode bool
	firstCode uint32

	dict  dictionary
	ratio adaptiveRatio

	started bool   // Has at least one input byte been seen?
	wCode   uint32 // Current matched prefix code (fcode.e.ent)

	nBits        uint
	nextFreeCode uint32
	extCode      uint32 // Code count at which the next widen/freeze is due
	stillGrowing bool   // Dictionary still accepting new entries

	boff    int // Last widen/CLEAR alignment point, in bits
	outbits int // Current write cursor, in bits
	outbuf  []byte
}

// NewWriter creates a Writer that streams the .Z encoding of subsequent
// Write calls to w. A nil opts is equivalent to DefaultEncodeOptions.
func NewWriter(w io.Writer, opts *EncodeOptions) (*Writer, error) {
	if opts == nil {
		opts = DefaultEncodeOptions()
	}
	if opts.MaxBits < minBits || opts.MaxBits > maxBitsCeiling {
		return nil, ErrUnsupported
	}
	zw := new(Writer)
	zw.reset(w, uint(opts.MaxBits), opts.BlockMode)
	return zw, nil
}

// Reset discards the Writer's state and starts encoding to w as if newly
// constructed with the same options.
func (zw *Writer) Reset(w io.Writer, opts *EncodeOptions) error {
	if opts == nil {
		opts = DefaultEncodeOptions()
	}
	if opts.MaxBits < minBits || opts.MaxBits > maxBitsCeiling {
		return ErrUnsupported
	}
	zw.reset(w, uint(opts.MaxBits), opts.BlockMode)
	return nil
}

func (zw *Writer) reset(w io.Writer, maxBits uint, blockMode bool) {
	zw.w = w
	zw.err = nil
	zw.maxBits = maxBits
	zw.blockMode = blockMode
	if blockMode {
		zw.firstCode = firstBlock
	} else {
		zw.firstCode = firstNoBlock
	}
	zw.dict.init(maxBits)
	zw.ratio.init()

	zw.started = false
	zw.wCode = 0
	zw.nBits = initBits
	zw.nextFreeCode = zw.firstCode
	zw.extCode = (uint32(1) << zw.nBits) + 1
	zw.stillGrowing = true

	zw.InputOffset, zw.OutputOffset = 0, 0

	const bufLen = obufSize*2 + 64
	if cap(zw.outbuf) >= bufLen {
		zw.outbuf = zw.outbuf[:bufLen]
		for i := range zw.outbuf {
			zw.outbuf[i] = 0
		}
	} else {
		zw.outbuf = make([]byte, bufLen)
	}
	zw.outbuf[0] = magic0
	zw.outbuf[1] = magic1
	hdr := byte(maxBits) & bitMaskBits
	if blockMode {
		hdr |= blockModeBit
	}
	zw.outbuf[2] = hdr
	zw.boff = 3 << 3
	zw.outbits = 3 << 3
}

// emit deposits code at the current write cursor and advances it.
func (zw *Writer) emit(code uint32) {
	putCode(zw.outbuf, zw.outbits, code, zw.nBits)
	zw.outbits += int(zw.nBits)
}

// realign advances outbits to the next n_bits-sized code boundary measured
// from boff, and records that boundary in boff. Used whenever n_bits is
// about to change (widen or CLEAR) so the decoder's identical formula stays
// synchronized (spec.md §4.3 "Boundary alignment").
func (zw *Writer) realign() {
	n := int(zw.nBits) << 3
	mod := (zw.outbits - zw.boff - 1 + n) % n
	zw.outbits = (zw.outbits - 1) + (n - mod)
	zw.boff = zw.outbits
}

// maybeWiden grows n_bits when the dictionary has reached the code count
// that requires it, or freezes the dictionary once MaxBits is reached.
func (zw *Writer) maybeWiden() {
	if zw.nextFreeCode < zw.extCode {
		return
	}
	if zw.nBits < zw.maxBits {
		zw.realign()
		zw.nBits++
		if zw.nBits < zw.maxBits {
			zw.extCode = (uint32(1) << zw.nBits) + 1
		} else {
			zw.extCode = uint32(1) << zw.nBits
		}
		return
	}
	zw.stillGrowing = false
	zw.extCode = ^uint32(0)
}

// maybeReset runs the adaptive-ratio checkpoint once the dictionary has
// frozen, emitting CLEAR and resetting the dictionary if the ratio has
// degraded since the last checkpoint.
func (zw *Writer) maybeReset() {
	if zw.stillGrowing || !zw.blockMode {
		return
	}
	if !zw.ratio.due(zw.InputOffset) {
		return
	}
	bytesOut := zw.OutputOffset + int64(zw.outbits>>3)
	if zw.ratio.evaluate(zw.InputOffset, bytesOut) {
		return
	}
	zw.emit(clearCode)
	zw.realign()
	zw.nBits = initBits
	zw.extCode = (uint32(1) << zw.nBits) + 1
	zw.nextFreeCode = zw.firstCode
	zw.stillGrowing = true
	zw.dict.clear()
}

// maybeFlush writes a full obufSize page to the sink once outbits has
// filled one, shifting the unwritten residual down to the buffer start.
func (zw *Writer) maybeFlush() error {
	if zw.outbits < obufSize<<3 {
		return nil
	}
	if _, err := zw.w.Write(zw.outbuf[:obufSize]); err != nil {
		zw.err = err
		return err
	}
	zw.OutputOffset += obufSize
	zw.outbits -= obufSize << 3

	n := int(zw.nBits) << 3
	mod := ((obufSize << 3) - zw.boff) % n
	zw.boff = -mod

	residual := (zw.outbits >> 3) + 1
	copy(zw.outbuf, zw.outbuf[obufSize:obufSize+residual])
	for i := residual; i < len(zw.outbuf); i++ {
		zw.outbuf[i] = 0
	}
	return nil
}

// Write implements the main encode loop of spec.md §4.3: the first byte of
// the stream seeds the initial prefix; every subsequent byte either extends
// the current dictionary match or, on a miss, emits the prefix, inserts a
// new dictionary entry, and restarts the match at the unmatched byte.
func (zw *Writer) Write(p []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	for _, b := range p {
		if !zw.started {
			zw.wCode = uint32(b)
			zw.started = true
			zw.InputOffset++
			continue
		}
		zw.InputOffset++

		if zw.wCode < zw.firstCode {
			zw.maybeWiden()
			zw.maybeReset()
			if err := zw.maybeFlush(); err != nil {
				return 0, err
			}
		}

		code, slot, found := zw.dict.lookup(zw.wCode, b)
		if found {
			zw.wCode = code
			continue
		}

		zw.emit(zw.wCode)
		if zw.stillGrowing {
			zw.dict.insertAt(slot, zw.nextFreeCode, zw.wCode, b)
			zw.nextFreeCode++
		}
		zw.wCode = uint32(b)
	}
	return len(p), nil
}

// Close flushes the final matched code and the trailing partial byte. It
// is safe to call Close without ever having called Write (the empty-input
// case: only the header is emitted).
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}
	if zw.started {
		// A widen that fell due on the last input byte must still happen
		// before the final code, since the Reader widens before reading it.
		if zw.wCode < zw.firstCode {
			zw.maybeWiden()
		}
		zw.emit(zw.wCode)
	}
	tail := (zw.outbits + 7) >> 3
	if _, err := zw.w.Write(zw.outbuf[:tail]); err != nil {
		zw.err = err
		return err
	}
	zw.OutputOffset += int64(tail)
	zw.err = errClosed
	return nil
}

// Encode streams src through a Writer into dst and reports the byte
// counters on success.
func Encode(dst io.Writer, src io.Reader, opts *EncodeOptions) (bytesIn, bytesOut int64, err error) {
	zw, err := NewWriter(dst, opts)
	if err != nil {
		return 0, 0, err
	}
	if _, err := io.Copy(zw, src); err != nil {
		return zw.InputOffset, zw.OutputOffset, err
	}
	if err := zw.Close(); err != nil {
		return zw.InputOffset, zw.OutputOffset, err
	}
	return zw.InputOffset, zw.OutputOffset, nil
}
