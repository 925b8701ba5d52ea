// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

/*
lzw95 compresses and decompresses files using the historical .Z format
produced by UNIX compress(1).

Usage:

	lzw95 [flags] [file ...]

With no file operands, lzw95 reads from stdin and writes to stdout. With one
or more file operands, each file is compressed (or decompressed, with -d) in
place: the input file is replaced by an output file with a ".Z" suffix added
(compression) or removed (decompression), and the original is removed once
the output file has been written successfully.

Flags:

	-b bits
	    Code-width ceiling, 9 to 16 (default 16). Ignored when decompressing.
	-c
	    Write output to stdout and leave input files untouched.
	-d
	    Decompress instead of compress.
	-n
	    Disable block-mode adaptive dictionary resets. Ignored when decompressing.
	-v
	    Print the compression ratio for each file to stderr.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lzw95/lzw95/lzw"
)

const suffix = ".Z"

var (
	flagBits    = flag.Int("b", 16, "code-width ceiling, 9 to 16")
	flagStdout  = flag.Bool("c", false, "write output to stdout")
	flagDecomp  = flag.Bool("d", false, "decompress")
	flagNoBlock = flag.Bool("n", false, "disable block-mode adaptive resets")
	flagVerbose = flag.Bool("v", false, "print compression ratios to stderr")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	opts := lzw.DefaultEncodeOptions()
	opts.MaxBits = *flagBits
	opts.BlockMode = !*flagNoBlock

	args := flag.Args()
	if len(args) == 0 {
		if err := run(os.Stdin, os.Stdout, "stdin", opts); err != nil {
			fmt.Fprintf(os.Stderr, "lzw95: %v\n", err)
			os.Exit(1)
		}
		return
	}

	exitCode := 0
	for _, name := range args {
		if err := runFile(name, opts); err != nil {
			fmt.Fprintf(os.Stderr, "lzw95: %s: %v\n", name, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: lzw95 [flags] [file ...]\n\n")
	flag.PrintDefaults()
}

// runFile compresses or decompresses name, choosing the output path by the
// presence or absence of the .Z suffix the way compress(1) does, and writes
// to stdout instead when -c is set.
func runFile(name string, opts *lzw.EncodeOptions) error {
	in, err := os.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	outName, err := outputName(name)
	if err != nil {
		return err
	}

	if *flagStdout {
		return run(in, os.Stdout, name, opts)
	}

	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	if err := run(in, out, name, opts); err != nil {
		out.Close()
		os.Remove(outName)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(outName)
		return err
	}
	return os.Remove(name)
}

func outputName(name string) (string, error) {
	if *flagDecomp {
		if !strings.HasSuffix(name, suffix) {
			return "", fmt.Errorf("%s: no %s suffix", name, suffix)
		}
		return strings.TrimSuffix(name, suffix), nil
	}
	return name + suffix, nil
}

func run(r io.Reader, w io.Writer, name string, opts *lzw.EncodeOptions) error {
	if *flagDecomp {
		bytesIn, bytesOut, err := lzw.Decode(w, r)
		if err != nil {
			return err
		}
		report(name, bytesOut, bytesIn)
		return nil
	}
	bytesIn, bytesOut, err := lzw.Encode(w, r, opts)
	if err != nil {
		return err
	}
	report(name, bytesIn, bytesOut)
	return nil
}

func report(name string, rawSize, compSize int64) {
	if !*flagVerbose {
		return
	}
	ratio := 0.0
	if compSize > 0 {
		ratio = 100 * (1 - float64(compSize)/float64(rawSize))
	}
	fmt.Fprintf(os.Stderr, "%s: Compression: %.2f%% -- replaced with %d bytes\n", name, ratio, compSize)
}
