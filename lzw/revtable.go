// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// reverseTable is the decoder's mirror of dictionary: two arrays indexed by
// code giving the prefix code and the appended suffix byte. Codes 0..255
// are permanently literal (prefix unused, suffix = code); dynamic codes grow
// from firstBlock or firstNoBlock as the decoder reads the stream.
type reverseTable struct {
	prefix []uint32
	suffix []byte
}

// init allocates the table for 2^maxBits codes and resets the literal
// entries.
func (t *reverseTable) init(maxBits uint) {
	n := 1 << maxBits
	if cap(t.prefix) >= n {
		t.prefix = t.prefix[:n]
		t.suffix = t.suffix[:n]
	} else {
		t.prefix = make([]uint32, n)
		t.suffix = make([]byte, n)
	}
	t.resetLiterals()
}

// resetLiterals (re)initializes the 256 literal-byte entries and clears the
// rest of the table. The historical source only clears the first 256
// entries on CLEAR, relying on higher entries never being read before being
// rewritten; this implementation clears the whole allocated range instead,
// per spec.md §9's suggestion, at negligible cost.
func (t *reverseTable) resetLiterals() {
	for i := range t.prefix {
		t.prefix[i] = 0
	}
	for c := 0; c < 256 && c < len(t.suffix); c++ {
		t.suffix[c] = byte(c)
	}
	for i := 256; i < len(t.suffix); i++ {
		t.suffix[i] = 0
	}
}

// walk reconstructs the string for code into stack (which must have
// capacity for up to 1<<MaxBits bytes), writing bytes in reverse order
// starting at the end of stack. It returns the slice of stack actually
// used (in forward order) and the first byte of the reconstructed string
// (the new finchar).
//
// If code names an entry not yet installed (the KwKwK case, code ==
// nextFreeCode), the caller must first push finchar and substitute oldcode
// for code; walk itself only handles the ordinary table-walk.
func (t *reverseTable) walk(code uint32, stack []byte) (out []byte, first byte) {
	i := len(stack)
	for code >= 256 {
		i--
		stack[i] = t.suffix[code]
		code = t.prefix[code]
	}
	i--
	stack[i] = t.suffix[code]
	first = t.suffix[code]
	return stack[i:], first
}

// install records prefix/suffix for the next dynamic code, mirroring the
// encoder's dictionary insert. The caller is responsible for checking that
// code is within bounds (< maxmaxcode) before calling.
func (t *reverseTable) install(code, prefixCode uint32, suffixByte byte) {
	t.prefix[code] = prefixCode
	t.suffix[code] = suffixByte
}
