// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

const (
	magic0 = 0x1f // First byte of a .Z stream
	magic1 = 0x9d // Second byte of a .Z stream

	bitMaskBits  = 0x1f // Low 5 bits of the third header byte hold MaxBits
	blockModeBit = 0x80 // High bit of the third header byte marks block mode

	initBits = 9 // Starting code width

	clearCode    = 256 // Block-mode dictionary reset marker
	firstBlock   = 257 // First dynamic code in block mode
	firstNoBlock = 256 // First dynamic code in non-block mode

	maxBitsCeiling = 16 // Implementation ceiling on MaxBits
	minBits        = 9  // Lowest MaxBits this package will encode or decode

	checkGap = 10000 // Input bytes between adaptive-ratio checkpoints

	ibufSize = 1 << 13 // Input refill chunk size
	obufSize = 1 << 13 // Output flush chunk size
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }

var (
	// ErrCorrupt reports that a decoded code violated the format's
	// dictionary-growth invariant (the "KwKwK" check).
	ErrCorrupt error = Error("stream is corrupted")

	// ErrUnsupported reports that the stream header declares a MaxBits
	// value beyond what this implementation can decode.
	ErrUnsupported error = Error("stream uses an unsupported number of code bits")

	// ErrNotCompressed reports that the input does not begin with the
	// .Z magic header.
	ErrNotCompressed error = Error("not in compressed format")

	// errClosed is the Writer's and Reader's sticky post-Close error.
	errClosed error = Error("stream is closed")
)

// maxCode returns the largest code representable in n bits: (1<<n)-1.
func maxCode(n uint) int { return (1 << n) - 1 }
