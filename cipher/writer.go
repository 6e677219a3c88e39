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

package cipher

import (
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

// Writer encrypts a sequential clear byte stream into under, one
// Bclear-sized plaintext block at a time, padding each block with an
// elastic buffer before CBC-encrypting it under a per-block ESSIV IV.
type Writer struct {
	stream.Lifecycle
	under      stream.Stream
	ks         *KeySchedule
	bclear     int
	paddedLen  int
	wbuf       []byte
	blockIndex uint64
	pos        uint64
	crc        stream.CRC
}

// NewWriter returns a Writer that encrypts clear data in clearBlockSize
// chunks onto under.
func NewWriter(under stream.Stream, ks *KeySchedule, clearBlockSize int) *Writer {
	return &Writer{
		under:     under,
		ks:        ks,
		bclear:    clearBlockSize,
		paddedLen: paddedLenFor(clearBlockSize, ks.BlockSize()),
		wbuf:      make([]byte, 0, clearBlockSize),
	}
}

func (w *Writer) flushBlock(clear []byte) errkind.Error {
	padded := elasticPad(clear, w.paddedLen)
	enc := w.ks.encrypter(w.blockIndex)
	ciphertext := make([]byte, w.paddedLen)
	enc.CryptBlocks(ciphertext, padded)
	w.blockIndex++
	return w.under.Write(ciphertext)
}

// Write buffers buf into Bclear-sized plaintext blocks, encrypting and
// forwarding each full block as it fills.
func (w *Writer) Write(buf []byte) errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	for len(buf) > 0 {
		room := w.bclear - len(w.wbuf)
		n := len(buf)
		if n > room {
			n = room
		}
		w.crc.Write(buf[:n])
		w.wbuf = append(w.wbuf, buf[:n]...)
		buf = buf[n:]
		w.pos += uint64(n)

		if len(w.wbuf) == w.bclear {
			if e := w.flushBlock(w.wbuf); e != nil {
				return e
			}
			w.wbuf = w.wbuf[:0]
		}
	}
	return nil
}

// Read always fails: a Writer is write-only.
func (w *Writer) Read([]byte) (int, errkind.Error) {
	return 0, errkind.New(errkind.KindLibraryMisuse, source, "read on a write-only cipher stream")
}

func (w *Writer) GetPosition() (uint64, errkind.Error) {
	if e := w.CheckAlive(source); e != nil {
		return 0, e
	}
	return w.pos, nil
}

// Skip, SkipRelative and SkipToEOF always fail: a cipher Writer only ever
// appends sequentially, deriving each block's IV from its sequence index.
func (w *Writer) Skip(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "cipher writer is sequential-only")
}

func (w *Writer) SkipRelative(int64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "cipher writer is sequential-only")
}

func (w *Writer) SkipToEOF() errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "cipher writer is sequential-only")
}

func (w *Writer) Skippable(stream.Direction, uint64) bool {
	return false
}

func (w *Writer) Truncate(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "cipher writer does not support truncate")
}

func (w *Writer) Truncatable(uint64) bool {
	return false
}

func (w *Writer) ReadAhead(uint64) errkind.Error {
	return nil
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

func (w *Writer) SyncWrite() errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	return w.under.SyncWrite()
}

// Terminate flushes any partial final block (shorter than Bclear, which
// the elastic buffer records faithfully) and terminates under.
func (w *Writer) Terminate() errkind.Error {
	if w.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	w.MarkTerminated()

	if len(w.wbuf) > 0 {
		if e := w.flushBlock(w.wbuf); e != nil {
			return e
		}
	}
	return w.under.Terminate()
}

var _ stream.Stream = (*Writer)(nil)
