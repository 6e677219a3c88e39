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

// Writer chunks clear data into BlockSize-sized blocks, compresses each
// through a compress.Codec, and frames the result onto an underlying
// stream.Stream. SuspendCompression switches to writing blocks verbatim,
// e.g. to embed already-compressed payloads without recompressing them.
type Writer struct {
	stream.Lifecycle
	under     stream.Stream
	codec     compress.Codec
	blockSize int
	buf       []byte
	suspended bool
	pos       uint64
	crc       stream.CRC
}

// NewWriter returns a Writer compressing with codec in blockSize-sized
// chunks onto under. blockSize <= 0 selects DefaultBlockSize.
func NewWriter(under stream.Stream, codec compress.Codec, blockSize int) *Writer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Writer{
		under:     under,
		codec:     codec,
		blockSize: blockSize,
		buf:       make([]byte, 0, blockSize),
	}
}

// BlockSize reports the clear-data chunk size frames are cut at.
func (w *Writer) BlockSize() int { return w.blockSize }

// Write buffers buf, flushing a compressed (or, while suspended, raw)
// frame each time BlockSize clear bytes have accumulated.
func (w *Writer) Write(buf []byte) errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	for len(buf) > 0 {
		room := w.blockSize - len(w.buf)
		n := len(buf)
		if n > room {
			n = room
		}
		w.crc.Write(buf[:n])
		w.buf = append(w.buf, buf[:n]...)
		buf = buf[n:]
		w.pos += uint64(n)

		if len(w.buf) == w.blockSize {
			if e := w.flush(); e != nil {
				return e
			}
		}
	}
	return nil
}

// Read always fails: a Writer is write-only.
func (w *Writer) Read([]byte) (int, errkind.Error) {
	return 0, errkind.New(errkind.KindLibraryMisuse, source, "read on a write-only compressor stream")
}

// flush emits whatever is in buf as one frame and clears it.
func (w *Writer) flush() errkind.Error {
	if len(w.buf) == 0 {
		return nil
	}
	defer func() { w.buf = w.buf[:0] }()

	if w.suspended {
		return compress.WriteFrame(w.under, compress.Frame{Kind: compress.FrameRaw, ClearLen: uint64(len(w.buf)), Payload: w.buf})
	}

	out := make([]byte, w.codec.MinOutputBufferFor(uint64(len(w.buf))))
	n, e := w.codec.Compress(w.buf, out)
	if e != nil {
		return e.Push(source, "compress block")
	}
	return compress.WriteFrame(w.under, compress.Frame{Kind: compress.FrameCompressed, ClearLen: uint64(len(w.buf)), CompLen: uint64(n), Payload: out[:n]})
}

// Flush forces out any buffered clear data as one frame, e.g. before other
// frames are appended directly to the underlying stream.
func (w *Writer) Flush() errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	return w.flush()
}

// SuspendCompression flushes any pending block and switches to writing
// subsequent blocks verbatim.
func (w *Writer) SuspendCompression() errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	if e := w.flush(); e != nil {
		return e
	}
	w.suspended = true
	return nil
}

// ResumeCompression flushes any pending raw block and resumes codec
// compression for subsequent blocks.
func (w *Writer) ResumeCompression() errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	if e := w.flush(); e != nil {
		return e
	}
	w.suspended = false
	return nil
}

func (w *Writer) GetPosition() (uint64, errkind.Error) {
	if e := w.CheckAlive(source); e != nil {
		return 0, e
	}
	return w.pos, nil
}

func (w *Writer) Terminate() errkind.Error {
	if w.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	w.MarkTerminated()
	if e := w.flush(); e != nil {
		return e
	}
	return w.under.Terminate()
}

// Skip, SkipRelative and SkipToEOF always fail: a Writer only ever appends
// sequentially; use Flush to force out a partial block ahead of embedding
// a verbatim payload instead of seeking.
func (w *Writer) Skip(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "compressor writer is sequential-only")
}

func (w *Writer) SkipRelative(int64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "compressor writer is sequential-only")
}

func (w *Writer) SkipToEOF() errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "compressor writer is sequential-only")
}

func (w *Writer) Skippable(stream.Direction, uint64) bool {
	return false
}

func (w *Writer) Truncate(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "compressor writer does not support truncate")
}

func (w *Writer) Truncatable(uint64) bool {
	return false
}

func (w *Writer) ReadAhead(uint64) errkind.Error {
	return nil
}

func (w *Writer) SyncWrite() errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	return w.under.SyncWrite()
}

func (w *Writer) FlushRead() errkind.Error {
	return nil
}

func (w *Writer) ResetCRC(width stream.CRCWidth) {
	w.crc.Reset(width)
}

func (w *Writer) GetCRC() (uint64, bool) {
	return w.crc.Get()
}

var _ stream.Stream = (*Writer)(nil)
