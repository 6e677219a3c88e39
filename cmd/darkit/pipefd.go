/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/stream/pipe"
)

// Pipe argument-list tags. Each argument is one tagged record: the tag
// byte, a BigInt-coded length, then that many bytes; tagEnd closes the
// list.
const (
	tagArg byte = 'a'
	tagEnd byte = 'e'
)

// argsFromPipe scans argv for --pipe-fd N and, when present, replaces
// the command line with the tagged argument list the parent wrote into
// that pipe. The second return is false when no --pipe-fd was given.
func argsFromPipe(argv []string) ([]string, bool) {
	fd := -1
	for i, a := range argv {
		if a == "--pipe-fd" && i+1 < len(argv) {
			if v, err := strconv.Atoi(argv[i+1]); err == nil {
				fd = v
			}
		}
	}
	if fd < 0 {
		return nil, false
	}

	src := pipe.FromFile(os.NewFile(uintptr(fd), "argument pipe"))
	defer func() { _ = src.Terminate() }()

	args, err := readTaggedArgs(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "darkit: bad argument pipe:", err)
		os.Exit(1)
	}
	return args, true
}

func readTaggedArgs(src *pipe.Stream) ([]string, error) {
	var out []string
	for {
		var tag [1]byte
		if e := readPipeFull(src, tag[:]); e != nil {
			return nil, e
		}
		switch tag[0] {
		case tagEnd:
			return out, nil
		case tagArg:
		default:
			return nil, fmt.Errorf("unknown record tag %q", tag[0])
		}

		n, e := bigint.ReadBounded(pipeReader{src})
		if e != nil {
			return nil, e
		}
		if n > 1<<20 {
			return nil, fmt.Errorf("argument of %d bytes refused", n)
		}
		buf := make([]byte, n)
		if e := readPipeFull(src, buf); e != nil {
			return nil, e
		}
		out = append(out, string(buf))
	}
}

func readPipeFull(src *pipe.Stream, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, e := src.Read(buf[total:])
		total += n
		if e != nil {
			return e
		}
		if n == 0 {
			return fmt.Errorf("argument pipe closed early")
		}
	}
	return nil
}

type pipeReader struct{ s *pipe.Stream }

func (p pipeReader) Read(b []byte) (int, error) {
	n, e := p.s.Read(b)
	if e != nil {
		return n, e
	}
	return n, nil
}
