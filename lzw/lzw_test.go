// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"io"
	"testing"

	"github.com/lzw95/lzw95/internal/testutil"
)

// largeRandom is 64KiB of deterministic pseudo-random data, large enough to
// force the encoder through every widen step up to MaxBits 16. It does not
// fill the 16-bit dictionary, so no adaptive-ratio checkpoint is evaluated.
func largeRandom() []byte {
	return testutil.NewRand(1).Bytes(1 << 16)
}

func encodeBytes(t *testing.T, data []byte, opts *EncodeOptions) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, _, err := Encode(&buf, bytes.NewReader(data), opts); err != nil {
		t.Fatalf("Encode() = %v, want nil", err)
	}
	return buf.Bytes()
}

func decodeBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, _, err := Decode(&buf, bytes.NewReader(data)); err != nil {
		t.Fatalf("Decode() = %v, want nil", err)
	}
	return buf.Bytes()
}

func roundTrip(t *testing.T, name string, data []byte, opts *EncodeOptions) {
	t.Run(name, func(t *testing.T) {
		enc := encodeBytes(t, data, opts)
		got := decodeBytes(t, enc)
		if !bytes.Equal(got, data) {
			t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(data))
		}
	})
}

func TestRoundTrip(t *testing.T) {
	repeatPattern := bytes.Repeat([]byte("AB"), 512)

	zeros := make([]byte, 1<<20)

	for _, maxBits := range []int{9, 10, 12, 16} {
		opts := &EncodeOptions{MaxBits: maxBits, BlockMode: true}
		roundTrip(t, "Empty", nil, opts)
		roundTrip(t, "SingleByte", []byte{0x41}, opts)
		roundTrip(t, "TwoByteAA", []byte{0x41, 0x41}, opts)
		roundTrip(t, "Repetition", repeatPattern, opts)
		roundTrip(t, "KwKwK", []byte("XYXYXYX"), opts)
		roundTrip(t, "Random", testutil.MustDecodeHex(randomHex), opts)

		noBlock := &EncodeOptions{MaxBits: maxBits, BlockMode: false}
		roundTrip(t, "NoBlockMode", repeatPattern, noBlock)
	}

	roundTrip(t, "AllZeros1MiB", zeros, DefaultEncodeOptions())
	roundTrip(t, "LargeRandom64KiB", largeRandom(), DefaultEncodeOptions())
}

// randomHex is 135 bytes (0x00 through 0x86) of non-repeating data, enough to exercise a run of
// distinct literal-to-dynamic-code transitions without any accidental
// dictionary hits.
const randomHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f" +
	"202122232425262728292a2b2c2d2e2f303132333435363738393a3b3c3d3e3f" +
	"404142434445464748494a4b4c4d4e4f505152535455565758595a5b5c5d5e5f" +
	"606162636465666768696a6b6c6d6e6f707172737475767778797a7b7c7d7e7f" +
	"80818283848586"

func TestEmptyInputExactBytes(t *testing.T) {
	got := encodeBytes(t, nil, DefaultEncodeOptions())
	want := []byte{magic0, magic1, maxBitsCeiling | blockModeBit}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode(nil) = %x, want %x", got, want)
	}
}

func TestSingleByteExactBytes(t *testing.T) {
	got := encodeBytes(t, []byte{0x41}, DefaultEncodeOptions())
	want := []byte{0x1f, 0x9d, 0x90, 0x41, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode([0x41]) = %x, want %x", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 37)
	opts := DefaultEncodeOptions()
	a := encodeBytes(t, data, opts)
	b := encodeBytes(t, data, opts)
	if !bytes.Equal(a, b) {
		t.Errorf("Encode is not deterministic across runs on identical input")
	}
}

func TestHeaderFields(t *testing.T) {
	for _, maxBits := range []int{9, 12, 16} {
		for _, blockMode := range []bool{true, false} {
			opts := &EncodeOptions{MaxBits: maxBits, BlockMode: blockMode}
			out := encodeBytes(t, []byte("x"), opts)
			if out[0] != magic0 || out[1] != magic1 {
				t.Fatalf("bad magic: %x %x", out[0], out[1])
			}
			if int(out[2]&bitMaskBits) != maxBits {
				t.Errorf("header MaxBits = %d, want %d", out[2]&bitMaskBits, maxBits)
			}
			gotBlock := out[2]&blockModeBit != 0
			if gotBlock != blockMode {
				t.Errorf("header block-mode bit = %v, want %v", gotBlock, blockMode)
			}
		}
	}
}

func TestCorruptHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0x00, 0x00, 0x00}))
	if err != ErrNotCompressed {
		t.Errorf("NewReader() = %v, want %v", err, ErrNotCompressed)
	}
}

func TestUnsupportedMaxBits(t *testing.T) {
	if _, err := NewWriter(new(bytes.Buffer), &EncodeOptions{MaxBits: 8, BlockMode: true}); err != ErrUnsupported {
		t.Errorf("NewWriter(MaxBits=8) = %v, want %v", err, ErrUnsupported)
	}
	if _, err := NewWriter(new(bytes.Buffer), &EncodeOptions{MaxBits: 17, BlockMode: true}); err != ErrUnsupported {
		t.Errorf("NewWriter(MaxBits=17) = %v, want %v", err, ErrUnsupported)
	}

	hdr := []byte{magic0, magic1, 17 | blockModeBit}
	if _, err := NewReader(bytes.NewReader(hdr)); err != ErrUnsupported {
		t.Errorf("NewReader(MaxBits=17) = %v, want %v", err, ErrUnsupported)
	}
}

// TestKwKwKCorrupt hand-builds a 3-code block-mode stream: two literals
// ('X', 'Y'), which installs dynamic code 257 for the pair, followed by a
// fabricated third code of 259 -- one past the next_free_code of 258 that a
// real encoder would have produced at that point. Per spec.md §8 property 8,
// a code strictly greater than next_free_code must fail as ErrCorrupt
// without producing further output.
func TestKwKwKCorrupt(t *testing.T) {
	buf := make([]byte, 3+8)
	buf[0], buf[1] = magic0, magic1
	buf[2] = maxBitsCeiling | blockModeBit

	off := 3 << 3
	putCode(buf, off, uint32('X'), initBits)
	off += initBits
	putCode(buf, off, uint32('Y'), initBits)
	off += initBits
	putCode(buf, off, 259, initBits) // next_free_code would be 258 here
	off += initBits

	n := (off + 7) >> 3
	zr, err := NewReader(bytes.NewReader(buf[:n]))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	_, err = io.Copy(&out, zr)
	if err != ErrCorrupt {
		t.Errorf("Copy() err = %v, want %v", err, ErrCorrupt)
	}
	if out.String() != "XY" {
		t.Errorf("output before corruption = %q, want %q", out.String(), "XY")
	}
}

func TestTruncatedStreamNoPanic(t *testing.T) {
	data := bytes.Repeat([]byte("hello, world! "), 4096)
	full := encodeBytes(t, data, DefaultEncodeOptions())

	for _, n := range []int{0, 1, 2, 3, 4, 5, 10, 100, len(full) / 2, len(full) - 1} {
		if n > len(full) {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("decoding truncated input (n=%d) panicked: %v", n, r)
				}
			}()
			var out bytes.Buffer
			zr, err := NewReader(bytes.NewReader(full[:n]))
			if err != nil {
				return
			}
			io.Copy(&out, zr)
			if !bytes.Equal(out.Bytes(), data[:len(out.Bytes())]) {
				t.Errorf("truncated decode (n=%d) produced a mismatching prefix", n)
			}
		}()
	}
}

func TestWriterCloseIdempotent(t *testing.T) {
	var buf bytes.Buffer
	zw, err := NewWriter(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("first Close() = %v, want nil", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil", err)
	}
	if _, err := zw.Write([]byte("x")); err == nil {
		t.Errorf("Write() after Close() = nil, want an error")
	}
}

func TestReaderCloseThenRead(t *testing.T) {
	enc := encodeBytes(t, []byte("hello"), DefaultEncodeOptions())
	zr, err := NewReader(bytes.NewReader(enc))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if _, err := io.Copy(&out, zr); err != nil {
		t.Fatal(err)
	}
	if err := zr.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if err := zr.Close(); err != nil {
		t.Fatalf("second Close() = %v, want nil", err)
	}
	if _, err := zr.Read(make([]byte, 1)); err == nil {
		t.Errorf("Read() after Close() = nil, want an error")
	}
}

// Note: unlike bzip2 (which has an explicit end-of-stream footer), the .Z
// format has no terminator. A Reader has no way to know a stream's logical
// end short of running out of whole codes, so data appended after a valid
// stream gets folded into the bit-stream and almost always surfaces as
// ErrCorrupt rather than being cleanly ignored. This is an inherent property
// of the wire format (real compress(1) streams cannot be safely
// concatenated either), not a decoder defect, so it is not asserted here.
