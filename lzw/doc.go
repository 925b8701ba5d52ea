// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements the historical .Z compressed data format produced
// by UNIX compress(1): adaptive Lempel-Ziv-Welch coding with block-mode
// dictionary resets, as described in Welch's 1984 paper and implemented by
// the ncompress/gzip family of programs ever since. It is not related to
// the Go standard library's compress/lzw, which implements the GIF/TIFF/PDF
// variant with a fixed starting literal width and no block mode.
//
// References:
//	T. Welch, "A Technique for High-Performance Data Compression" (1984)
//	https://en.wikipedia.org/wiki/Compress
//	https://github.com/vapier/ncompress
package lzw
