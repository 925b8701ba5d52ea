// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "io"

// Reader is a streaming LZW decoder consuming the historical .Z bitstream
// (spec.md §4.4). It rebuilds the dictionary in lockstep with the Writer
// that produced the stream, without ever reading a transmitted table.
type Reader struct {
	InputOffset  int64 // Total bytes consumed from the underlying io.Reader
	OutputOffset int64 // Total bytes returned by Read

	r   io.Reader
	err error

	maxBits    uint
	maxMaxCode uint32 // 1 << maxBits
	blockMode  bool
	firstCode  uint32

	rev   reverseTable
	stack []byte // scratch for walk(); sized 1<<maxBits + 1 (KwKwK needs one extra slot)

	nBits        uint
	maxCode      uint32
	bitMask      uint32
	nextFreeCode uint32
	oldCode      uint32
	haveOld      bool
	finChar      byte

	inbuf       []byte
	insize      int
	posbits     int
	inbits      int  // valid bit count in inbuf, per the current refill's formula
	forceRefill bool // set after a widen or CLEAR, which always resync on a fresh buffer
	lastRead    int  // return value of the most recent physical Read, carried across
	                 // refill calls that skip reading because the buffer is still full

	pending    []byte // bytes decoded but not yet returned by Read
	pendingPos int
}

// NewReader creates a Reader that decodes the .Z stream read from r. It
// reads and validates the three-byte header immediately, the way
// bzip2.NewReader and flate.NewReader read their stream headers eagerly
// rather than on first Read.
func NewReader(r io.Reader) (*Reader, error) {
	zr := new(Reader)
	zr.r = r
	const bufLen = ibufSize + 64
	zr.inbuf = make([]byte, bufLen)
	if err := zr.readHeader(); err != nil {
		zr.err = err
		return nil, err
	}
	return zr, nil
}

// readHeader fills inbuf with at least 3 bytes and validates the magic and
// MaxBits fields, mirroring decompress()'s header-reading loop in
// compress.c: it keeps reading until at least 3 bytes are available or the
// source is exhausted.
func (zr *Reader) readHeader() error {
	for zr.insize < 3 {
		n, err := zr.r.Read(zr.inbuf[zr.insize:])
		zr.insize += n
		zr.InputOffset += int64(n)
		zr.lastRead = n
		if n == 0 {
			if err != nil && err != io.EOF {
				return err
			}
			break
		}
	}
	if zr.insize < 3 || zr.inbuf[0] != magic0 || zr.inbuf[1] != magic1 {
		return ErrNotCompressed
	}

	zr.maxBits = uint(zr.inbuf[2] & bitMaskBits)
	zr.blockMode = zr.inbuf[2]&blockModeBit != 0
	if zr.maxBits < minBits || zr.maxBits > maxBitsCeiling {
		return ErrUnsupported
	}
	zr.maxMaxCode = uint32(1) << zr.maxBits

	if zr.blockMode {
		zr.firstCode = firstBlock
	} else {
		zr.firstCode = firstNoBlock
	}

	zr.nBits = initBits
	zr.maxCode = uint32(maxCode(zr.nBits))
	zr.bitMask = uint32(maxCode(zr.nBits))
	zr.nextFreeCode = zr.firstCode
	zr.oldCode = 0
	zr.haveOld = false
	zr.finChar = 0
	zr.posbits = 3 << 3

	zr.rev.init(zr.maxBits)
	zr.stack = make([]byte, (1<<zr.maxBits)+1)
	return nil
}

// refill shifts unread bits down to the start of inbuf and reads up to
// ibufSize more bytes from the source, recomputing inbits per
// compress.c's resetbuf block.
func (zr *Reader) refill() error {
	o := zr.posbits >> 3
	e := 0
	if o <= zr.insize {
		e = zr.insize - o
	}
	copy(zr.inbuf, zr.inbuf[o:o+e])
	zr.insize = e
	zr.posbits = 0

	if zr.insize < len(zr.inbuf)-ibufSize {
		n, err := zr.r.Read(zr.inbuf[zr.insize : zr.insize+ibufSize])
		if n == 0 && err != nil && err != io.EOF {
			zr.err = err
			return err
		}
		zr.insize += n
		zr.InputOffset += int64(n)
		zr.lastRead = n
	}

	if zr.lastRead > 0 {
		zr.inbits = (zr.insize - zr.insize%int(zr.nBits)) << 3
	} else {
		zr.inbits = (zr.insize << 3) - int(zr.nBits) + 1
	}
	return nil
}

// widen grows n_bits by one (or freezes maxCode at maxMaxCode once n_bits
// reaches maxBits), realigning posbits the same way the Writer does on its
// side of the same transition. Per compress.c, a widen always forces a
// fresh refill before the next code is read.
func (zr *Reader) widen() {
	n := int(zr.nBits) << 3
	mod := (zr.posbits - 1 + n) % n
	zr.posbits = (zr.posbits - 1) + (n - mod)

	zr.nBits++
	if zr.nBits == zr.maxBits {
		zr.maxCode = zr.maxMaxCode
	} else {
		zr.maxCode = uint32(maxCode(zr.nBits))
	}
	zr.bitMask = uint32(maxCode(zr.nBits))
	zr.forceRefill = true
}

// clear resets the dictionary and code width on a CLEAR code, mirroring
// compress.c's handling inline in the inner decode loop.
func (zr *Reader) clear() {
	zr.rev.resetLiterals()
	zr.nextFreeCode = zr.firstCode - 1

	n := int(zr.nBits) << 3
	mod := (zr.posbits - 1 + n) % n
	zr.posbits = (zr.posbits - 1) + (n - mod)

	zr.nBits = initBits
	zr.maxCode = uint32(maxCode(zr.nBits))
	zr.bitMask = uint32(maxCode(zr.nBits))
	zr.forceRefill = true
}

// nextCode returns the next raw code from the bitstream, refilling and
// widening as needed. It returns io.EOF once the source is exhausted with
// no further whole codes available.
func (zr *Reader) nextCode() (uint32, error) {
	for {
		if zr.forceRefill || zr.inbits <= zr.posbits {
			if err := zr.refill(); err != nil {
				return 0, err
			}
			zr.forceRefill = false
			if zr.inbits <= zr.posbits {
				return 0, io.EOF
			}
		}
		if zr.nextFreeCode > zr.maxCode {
			zr.widen()
			continue
		}
		code := getCode(zr.inbuf, zr.posbits, zr.bitMask)
		zr.posbits += int(zr.nBits)
		return code, nil
	}
}

// decodeOne advances the decoder by exactly one code, returning the bytes
// it produces in forward order. The returned slice aliases zr.stack and is
// only valid until the next call to decodeOne.
func (zr *Reader) decodeOne() ([]byte, error) {
	var code uint32
	for {
		c, err := zr.nextCode()
		if err != nil {
			return nil, err
		}
		if zr.haveOld && zr.blockMode && c == clearCode {
			zr.clear()
			continue
		}
		code = c
		break
	}

	if !zr.haveOld {
		if code >= 256 {
			return nil, ErrCorrupt
		}
		zr.oldCode = code
		zr.finChar = byte(code)
		zr.haveOld = true
		zr.stack[len(zr.stack)-1] = byte(code)
		return zr.stack[len(zr.stack)-1:], nil
	}

	incode := code
	var out []byte
	if code >= zr.nextFreeCode {
		if code > zr.nextFreeCode {
			return nil, ErrCorrupt
		}
		body, first := zr.rev.walk(zr.oldCode, zr.stack[:len(zr.stack)-1])
		zr.stack[len(zr.stack)-1] = zr.finChar
		out = zr.stack[len(zr.stack)-1-len(body) : len(zr.stack)]
		zr.finChar = first
	} else {
		body, first := zr.rev.walk(code, zr.stack)
		out = body
		zr.finChar = first
	}

	if zr.nextFreeCode < zr.maxMaxCode {
		zr.rev.install(zr.nextFreeCode, zr.oldCode, zr.finChar)
		zr.nextFreeCode++
	}
	zr.oldCode = incode
	return out, nil
}

// Read implements io.Reader, pumping decodeOne until buf is filled or the
// stream ends. It follows bzip2.Reader.Read's shape: spin on an internal
// produce step until bytes are ready or err is set.
func (zr *Reader) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		if zr.pendingPos < len(zr.pending) {
			c := copy(buf[n:], zr.pending[zr.pendingPos:])
			n += c
			zr.pendingPos += c
			continue
		}
		if zr.err != nil {
			break
		}
		out, err := zr.decodeOne()
		if err != nil {
			zr.err = err
			continue
		}
		zr.pending = out
		zr.pendingPos = 0
	}
	zr.OutputOffset += int64(n)
	if n > 0 {
		return n, nil
	}
	return 0, zr.err
}

// Close renders the Reader unusable for further Read calls. It does not
// close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == nil || zr.err == io.EOF || zr.err == errClosed {
		zr.pending = nil
		zr.err = errClosed
		return nil
	}
	return zr.err
}

// Decode streams the .Z-encoded src into dst and reports the byte counters
// on success.
func Decode(dst io.Writer, src io.Reader) (bytesIn, bytesOut int64, err error) {
	zr, err := NewReader(src)
	if err != nil {
		return 0, 0, err
	}
	n, err := io.Copy(dst, zr)
	if err != nil {
		return zr.InputOffset, n, err
	}
	return zr.InputOffset, n, nil
}
