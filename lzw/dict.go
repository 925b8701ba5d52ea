// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// hashSizes gives the historical HSIZE table, indexed by MaxBits, chosen so
// that the compact hash variant's load factor never needs to exceed ~95% at
// 2^MaxBits entries.
var hashSizes = map[uint]int{
	16: 69001,
	15: 35023,
	14: 18013,
	13: 9001,
	12: 5003,
	11: 5003,
	10: 5003,
	9:  5003,
}

// emptySig is the sentinel signature marking an unoccupied slot. A packed
// (prefix, byte) signature never reaches this value because prefix is
// always less than 1<<16, so every signature is less than 1<<24.
const emptySig = ^uint32(0)

// dictionary is the encoder's hash table mapping (prefix, byte) -> code,
// using open addressing with the compact double-hash probe sequence from
// the historical implementation (spec.md §4.2, §9 "canonical compatibility
// choice"). Storage is two parallel slices indexed by hash slot: sig holds a
// packed (prefix, byte) key used purely for equality testing, code holds
// the assigned dynamic code.
type dictionary struct {
	maxBits uint
	size    int
	sig     []uint32
	code    []uint32
}

// init sizes d for the given maxBits and clears it.
func (d *dictionary) init(maxBits uint) {
	d.maxBits = maxBits
	d.size = hashSizes[maxBits]
	if cap(d.sig) >= d.size {
		d.sig = d.sig[:d.size]
		d.code = d.code[:d.size]
	} else {
		d.sig = make([]uint32, d.size)
		d.code = make([]uint32, d.size)
	}
	d.clear()
}

// clear marks every slot empty.
func (d *dictionary) clear() {
	for i := range d.sig {
		d.sig[i] = emptySig
	}
}

// signature packs (prefix, byte) into the equality key stored at a slot.
// Equality on the signature is equivalent to equality on the pair, since
// byte < 256 and prefix < 1<<16 occupy disjoint bit ranges.
func signature(prefix uint32, b byte) uint32 {
	return uint32(b) | prefix<<8
}

// primaryHash mixes (prefix, byte) into the initial probe slot.
func (d *dictionary) primaryHash(prefix uint32, b byte) int {
	hp := int(uint32(b)<<(d.maxBits-8) ^ prefix)
	hp %= d.size
	if hp < 0 {
		hp += d.size
	}
	return hp
}

// lookup locates the slot for (prefix, b). If a matching signature is
// present, it returns the code stored there and found=true. Otherwise it
// returns the first empty slot at which an insert would place this key.
func (d *dictionary) lookup(prefix uint32, b byte) (code uint32, slot int, found bool) {
	sig := signature(prefix, b)
	hp := d.primaryHash(prefix, b)
	if d.sig[hp] == sig {
		return d.code[hp], hp, true
	}
	if d.sig[hp] == emptySig {
		return 0, hp, false
	}

	// Secondary hash displacement (after G. Knott): repeatedly step back by
	// a fixed stride derived from the primary slot until a match or an
	// empty slot is found. Every slot is visited before the sequence
	// repeats, since disp and size are coprime for disp = size-hp-1 unless
	// disp is 0, in which case any nonzero stride revisits every slot too.
	disp := d.size - hp - 1
	if disp == 0 {
		disp = 1
	}
	for {
		hp -= disp
		if hp < 0 {
			hp += d.size
		}
		if d.sig[hp] == sig {
			return d.code[hp], hp, true
		}
		if d.sig[hp] == emptySig {
			return 0, hp, false
		}
	}
}

// insertAt records (prefix, b) <-> code at the previously-returned empty
// slot.
func (d *dictionary) insertAt(slot int, code uint32, prefix uint32, b byte) {
	d.sig[slot] = signature(prefix, b)
	d.code[slot] = code
}
