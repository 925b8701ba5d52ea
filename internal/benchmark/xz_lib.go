// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_xz_lib

package benchmark

import (
	"io"
	"io/ioutil"

	"github.com/ulikunitz/xz"
)

// ulikunitz/xz is registered as a second cross-algorithm baseline alongside
// klauspost/compress's flate, giving the benchmark a second, much
// higher-ratio reference point. xz has no integer level knob comparable to
// LZW's MaxBits, so lvl is unused here too.
func init() {
	registerEncoder(FormatLZW, "xz",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	registerDecoder(FormatLZW, "xz",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return ioutil.NopCloser(errReader{err})
			}
			return ioutil.NopCloser(zr)
		})
}
