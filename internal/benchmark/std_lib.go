// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_std_lib

package benchmark

import "io"
import "compress/lzw"

func init() {
	registerEncoder(FormatLZW, "std",
		// The standard library's LZW has no MaxBits knob, so lvl is unused.
		func(w io.Writer, lvl int) io.WriteCloser {
			return lzw.NewWriter(w, lzw.LSB, 8)
		})
	registerDecoder(FormatLZW, "std",
		func(r io.Reader) io.ReadCloser {
			return lzw.NewReader(r, lzw.LSB, 8)
		})
}
