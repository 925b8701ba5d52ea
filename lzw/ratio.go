// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// adaptiveRatio tracks the encoder's best-observed compression ratio and the
// next input-byte checkpoint at which to re-evaluate it. The heuristic
// lives in its own small type because spec.md treats it as an encoder
// concern distinct from the main code-emission loop: evaluate() reports a
// ratio that degraded since the last checkpoint (on which Writer.maybeReset
// emits CLEAR), otherwise it just remembers the high-water mark.
type adaptiveRatio struct {
	best       int64
	checkpoint int64
}

// init sets the first checkpoint, gapped checkGap bytes out.
func (r *adaptiveRatio) init() {
	r.best = 0
	r.checkpoint = checkGap
}

// due reports whether bytesIn has reached the next checkpoint.
func (r *adaptiveRatio) due(bytesIn int64) bool {
	return bytesIn >= r.checkpoint
}

// evaluate computes the current ratio (fixed-point, 8 fractional bits) from
// bytesIn and bytesOut, using the shifted-rescale path once bytesIn reaches
// 1<<23 to avoid overflowing the left-shift. It advances the checkpoint
// unconditionally and reports whether the ratio improved or held (in which
// case the caller keeps the dictionary) versus degraded (in which case the
// caller must CLEAR).
func (r *adaptiveRatio) evaluate(bytesIn, bytesOut int64) (improved bool) {
	r.checkpoint = bytesIn + checkGap

	var rat int64
	if bytesIn > 0x007fffff {
		rat = bytesOut >> 8
		if rat == 0 {
			rat = 0x7fffffff
		} else {
			rat = bytesIn / rat
		}
	} else {
		rat = (bytesIn << 8) / bytesOut
	}

	if rat >= r.best {
		r.best = rat
		return true
	}
	r.best = 0
	return false
}
