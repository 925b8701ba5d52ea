// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build !no_ds_lib

package benchmark

import (
	"io"
	"io/ioutil"

	"github.com/lzw95/lzw95/lzw"
)

func init() {
	registerEncoder(FormatLZW, "ds",
		func(w io.Writer, lvl int) io.WriteCloser {
			opts := lzw.DefaultEncodeOptions()
			if lvl > 0 {
				opts.MaxBits = lvl
			}
			zw, err := lzw.NewWriter(w, opts)
			if err != nil {
				panic(err)
			}
			return zw
		})
	registerDecoder(FormatLZW, "ds",
		func(r io.Reader) io.ReadCloser {
			zr, err := lzw.NewReader(r)
			if err != nil {
				return ioutil.NopCloser(errReader{err})
			}
			return zr
		})
}

// errReader is an io.Reader that always returns err, used to surface a
// NewReader failure through the Decoder interface instead of panicking.
type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
