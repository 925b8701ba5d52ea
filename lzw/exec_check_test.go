// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"errors"
	"flag"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/lzw95/lzw95/internal/testutil"
)

var zcheck = flag.Bool("zcheck", false, "verify test vectors against a system compress/uncompress binary")

// sysCompress shells out to compress(1) (or ncompress, whichever is found
// first) the way pyExec in bzip2_test.go shells out to Python's bz2 module:
// this format has no Go-ecosystem reference implementation to differentially
// test against, but it has a much older one already installed on most
// Unix-like systems.
func sysCompress(bits int, input []byte) ([]byte, error) {
	return sysExec(compressPath(), []string{"-b", strconv.Itoa(bits), "-c"}, input)
}

func sysDecompress(input []byte) ([]byte, error) {
	return sysExec(uncompressPath(), []string{"-c"}, input)
}

func sysExec(path string, args []string, input []byte) ([]byte, error) {
	var bo, be bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &bo
	cmd.Stderr = &be
	err := cmd.Run()
	if ss := strings.Split(strings.TrimSpace(be.String()), "\n"); err != nil && len(ss) > 0 && ss[0] != "" {
		return nil, errors.New(ss[len(ss)-1])
	}
	return bo.Bytes(), err
}

func compressPath() string {
	for _, name := range []string{"compress", "ncompress"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func uncompressPath() string {
	for _, name := range []string{"uncompress", "ncompress"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// TestSystemDecompressesOurOutput checks that a system compress(1) (or
// ncompress) binary can decode what this package encodes, catching any
// deviation from the real .Z wire format that round-tripping against
// ourselves alone could never reveal. Skipped unless -zcheck is set and a
// suitable binary is on $PATH.
func TestSystemDecompressesOurOutput(t *testing.T) {
	if !*zcheck {
		t.Skip("skipping; pass -zcheck to verify against a system compress binary")
	}
	if uncompressPath() == "" {
		t.Skip("no uncompress/ncompress binary found on $PATH")
	}

	for _, data := range [][]byte{
		nil,
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte("ABABAB"), 1000),
		testutil.MustDecodeHex(randomHex),
	} {
		enc := encodeBytes(t, data, DefaultEncodeOptions())
		got, err := sysDecompress(enc)
		if err != nil {
			t.Errorf("sysDecompress() error = %v", err)
			continue
		}
		if !bytes.Equal(got, data) {
			t.Errorf("sysDecompress() = %d bytes, want %d bytes", len(got), len(data))
		}
	}
}

// TestOurDecoderReadsSystemOutput is the inverse check: a stream produced by
// a real compress(1) binary must decode cleanly through this package's
// Reader. Skipped unless -zcheck is set and a suitable binary is on $PATH.
func TestOurDecoderReadsSystemOutput(t *testing.T) {
	if !*zcheck {
		t.Skip("skipping; pass -zcheck to verify against a system compress binary")
	}
	if compressPath() == "" {
		t.Skip("no compress/ncompress binary found on $PATH")
	}

	for _, data := range [][]byte{
		nil,
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte("ABABAB"), 1000),
		testutil.MustDecodeHex(randomHex),
	} {
		enc, err := sysCompress(16, data)
		if err != nil {
			t.Errorf("sysCompress() error = %v", err)
			continue
		}
		got := decodeBytes(t, enc)
		if !bytes.Equal(got, data) {
			t.Errorf("decodeBytes(sysCompress(...)) = %d bytes, want %d bytes", len(got), len(data))
		}
	}
}
