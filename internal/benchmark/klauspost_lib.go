// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_klauspost_lib

package benchmark

import (
	"io"

	"github.com/klauspost/compress/flate"
)

// klauspost/compress's flate is registered as a cross-algorithm baseline:
// it shares nothing with LZW's dictionary coding, but running it over the
// same corpus puts the historical .Z format's ratio and throughput in
// context against a modern general-purpose compressor. The level argument
// doubles as flate's compression level; a value outside flate's valid range
// is replaced by flate.DefaultCompression.
func init() {
	registerEncoder(FormatLZW, "klauspost",
		func(w io.Writer, lvl int) io.WriteCloser {
			if lvl < flate.NoCompression || lvl > flate.BestCompression {
				lvl = flate.DefaultCompression
			}
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	registerDecoder(FormatLZW, "klauspost",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})
}
