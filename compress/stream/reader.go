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

package stream

import (
	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

// Reader reverses Writer: it reads BigInt-framed blocks from an underlying
// stream.Stream, decompressing compressed frames and passing raw frames
// through untouched, and presents the result as a single clear byte
// stream.
//
// Skip implies a reset: compressed frames have no random-access index, so
// seeking backward reopens the underlying stream from its start and reads
// forward; seeking ahead simply reads and discards. This is the "whole
// stream is the nearest restart point" case the single-shot block codecs
// in this pack fall into; it is always correct, only not maximally fast.
type Reader struct {
	stream.Lifecycle
	reopen func() (stream.Stream, errkind.Error)
	under  stream.Stream
	codec  compress.Codec

	cur    []byte
	curOff int
	pos    uint64
	crc    stream.CRC
}

// NewReader returns a Reader decompressing frames read from under with
// codec. reopen, when non-nil, lets Skip seek backward by recreating the
// underlying stream from byte 0; without it, backward Skip fails.
func NewReader(under stream.Stream, codec compress.Codec, reopen func() (stream.Stream, errkind.Error)) *Reader {
	return &Reader{under: under, codec: codec, reopen: reopen}
}

func (r *Reader) nextFrame() errkind.Error {
	f, e := compress.ReadFrame(r.under)
	if e != nil {
		return e
	}

	if f.Kind == compress.FrameRaw {
		r.cur = f.Payload
		r.curOff = 0
		return nil
	}

	out := make([]byte, f.ClearLen)
	n, de := r.codec.Decompress(f.Payload, out)
	if de != nil {
		return de.Push(source, "decompress block")
	}
	r.cur = out[:n]
	r.curOff = 0
	return nil
}

// Read fills buf from the current decompressed block, pulling further
// frames as needed.
func (r *Reader) Read(buf []byte) (int, errkind.Error) {
	if e := r.CheckAlive(source); e != nil {
		return 0, e
	}

	total := 0
	for total < len(buf) {
		if r.curOff >= len(r.cur) {
			if e := r.nextFrame(); e != nil {
				if e.Is(errkind.KindEndOfFile) {
					if total > 0 {
						return total, nil
					}
					return total, e
				}
				return total, e
			}
		}
		n := copy(buf[total:], r.cur[r.curOff:])
		r.crc.Write(buf[total : total+n])
		total += n
		r.curOff += n
		r.pos += uint64(n)
	}
	return total, nil
}

// Write always fails: a Reader is read-only.
func (r *Reader) Write([]byte) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "write on a read-only compressor stream")
}

// Skip seeks to the absolute logical (clear) position pos.
func (r *Reader) Skip(pos uint64) errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}

	if pos < r.pos {
		if r.reopen == nil {
			return errkind.New(errkind.KindLibraryMisuse, source, "backward seek requires a reopen function")
		}
		fresh, e := r.reopen()
		if e != nil {
			return e
		}
		r.under = fresh
		r.cur = nil
		r.curOff = 0
		r.pos = 0
	}

	discard := make([]byte, 64*1024)
	for r.pos < pos {
		want := pos - r.pos
		if want > uint64(len(discard)) {
			want = uint64(len(discard))
		}
		n, e := r.Read(discard[:want])
		if n == 0 || (e != nil && e.Is(errkind.KindEndOfFile)) {
			break
		}
		if e != nil {
			return e
		}
	}
	return nil
}

// SkipRelative seeks by delta relative to the current position.
func (r *Reader) SkipRelative(delta int64) errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	next := int64(r.pos) + delta
	if next < 0 {
		return errkind.New(errkind.KindRange, source, "relative skip before start of stream")
	}
	return r.Skip(uint64(next))
}

// SkipToEOF reads to exhaustion, which for framed compressed data is the
// only way to learn the logical clear-stream length.
func (r *Reader) SkipToEOF() errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	discard := make([]byte, 64*1024)
	for {
		_, e := r.Read(discard)
		if e != nil {
			if e.Is(errkind.KindEndOfFile) {
				return nil
			}
			return e
		}
	}
}

// Skippable reports true in both directions: forward skip simply reads
// and discards, backward skip reopens when a reopen function was given.
func (r *Reader) Skippable(dir stream.Direction, _ uint64) bool {
	if dir == stream.DirectionBackward {
		return r.reopen != nil
	}
	return true
}

func (r *Reader) Truncate(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "compressor reader does not support truncate")
}

func (r *Reader) Truncatable(uint64) bool {
	return false
}

func (r *Reader) ReadAhead(uint64) errkind.Error {
	return nil
}

func (r *Reader) SyncWrite() errkind.Error {
	return nil
}

func (r *Reader) FlushRead() errkind.Error {
	return nil
}

func (r *Reader) ResetCRC(width stream.CRCWidth) {
	r.crc.Reset(width)
}

func (r *Reader) GetCRC() (uint64, bool) {
	return r.crc.Get()
}

func (r *Reader) GetPosition() (uint64, errkind.Error) {
	if e := r.CheckAlive(source); e != nil {
		return 0, e
	}
	return r.pos, nil
}

func (r *Reader) Terminate() errkind.Error {
	if r.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	r.MarkTerminated()
	return r.under.Terminate()
}

var _ stream.Stream = (*Reader)(nil)
