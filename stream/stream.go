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

// Package stream defines the generic seekable byte-stream contract shared
// by every concrete backend in the pipeline (local files, pipes, slices,
// codecs, ciphers), along with its CRC and termination semantics.
package stream

import (
	"github.com/nabbar/darkit/errkind"
)

// Direction names the sense of a skippable probe.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
)

// CRCWidth names a supported running-CRC width.
type CRCWidth int

const (
	CRC32 CRCWidth = 32
	CRC64 CRCWidth = 64
)

// Stream is the contract every concrete backend implements. Once
// Terminate has been called, every other method must fail with a fatal
// (library-misuse) error.
type Stream interface {
	// Read fills buf and returns the number of bytes actually read. Fewer
	// bytes than len(buf) is only legal at end-of-stream or for backends
	// whose partial reads are semantically valid (e.g. pipes); callers
	// at the slice/codec layer are responsible for looping.
	Read(buf []byte) (int, errkind.Error)

	// Write writes all of buf or fails; it never returns a short write to
	// a public caller.
	Write(buf []byte) errkind.Error

	Skip(pos uint64) errkind.Error
	SkipRelative(delta int64) errkind.Error
	SkipToEOF() errkind.Error
	GetPosition() (uint64, errkind.Error)
	Skippable(dir Direction, amount uint64) bool

	Truncate(pos uint64) errkind.Error
	Truncatable(pos uint64) bool

	ReadAhead(amount uint64) errkind.Error
	SyncWrite() errkind.Error
	FlushRead() errkind.Error

	// ResetCRC arms a running CRC of the given width; GetCRC returns and
	// disarms it.
	ResetCRC(width CRCWidth)
	GetCRC() (uint64, bool)

	Terminate() errkind.Error
}

// CopyTo forwards every byte read from src to dst, computing a running CRC
// over the forwarded stream when src has one armed. It loops Read/Write
// until src reports end-of-stream.
func CopyTo(dst, src Stream) (uint64, errkind.Error) {
	buf := make([]byte, 64*1024)
	var total uint64

	for {
		n, e := src.Read(buf)
		if n > 0 {
			if e2 := dst.Write(buf[:n]); e2 != nil {
				return total, e2.Push("stream", "copy_to write")
			}
			total += uint64(n)
		}
		if e != nil {
			if e.Is(errkind.KindEndOfFile) {
				return total, nil
			}
			return total, e.Push("stream", "copy_to read")
		}
		if n == 0 {
			return total, nil
		}
	}
}
