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

// Reader decrypts a block-encrypted stream produced by Writer, supporting
// true random access: because the IV for block n depends only on n, any
// block can be decrypted independently of the ones around it.
type Reader struct {
	stream.Lifecycle
	under     stream.Stream
	ks        *KeySchedule
	bclear    int
	paddedLen int

	curIndex uint64
	curLoad  bool
	curClear []byte

	pos uint64
	crc stream.CRC
}

// NewReader returns a Reader decrypting clearBlockSize-sized plaintext
// blocks from under.
func NewReader(under stream.Stream, ks *KeySchedule, clearBlockSize int) *Reader {
	return &Reader{
		under:     under,
		ks:        ks,
		bclear:    clearBlockSize,
		paddedLen: paddedLenFor(clearBlockSize, ks.BlockSize()),
	}
}

// loadBlock decrypts block index idx into curClear, positioning under at
// its start first. Returns io-style end-of-file via errkind.KindEndOfFile
// when idx has no corresponding data.
func (r *Reader) loadBlock(idx uint64) errkind.Error {
	if e := r.under.Skip(idx * uint64(r.paddedLen)); e != nil {
		return e
	}

	ciphertext := make([]byte, r.paddedLen)
	total := 0
	for total < len(ciphertext) {
		n, e := r.under.Read(ciphertext[total:])
		total += n
		if e != nil {
			if e.Is(errkind.KindEndOfFile) {
				break
			}
			return e
		}
		if n == 0 {
			break
		}
	}
	if total == 0 {
		return errkind.New(errkind.KindEndOfFile, source, "no such block")
	}
	if total != len(ciphertext) {
		return errkind.New(errkind.KindData, source, "short read: truncated cipher block")
	}

	dec := r.ks.decrypter(idx)
	padded := make([]byte, r.paddedLen)
	dec.CryptBlocks(padded, ciphertext)

	clear, e := elasticUnpad(padded)
	if e != nil {
		return e
	}

	r.curIndex = idx
	r.curLoad = true
	r.curClear = clear
	return nil
}

func (r *Reader) ensureBlock(idx uint64) errkind.Error {
	if r.curLoad && r.curIndex == idx {
		return nil
	}
	return r.loadBlock(idx)
}

// Read decrypts as many blocks as needed to fill buf, stopping at the
// first block boundary where no further data exists.
func (r *Reader) Read(buf []byte) (int, errkind.Error) {
	if e := r.CheckAlive(source); e != nil {
		return 0, e
	}

	total := 0
	for total < len(buf) {
		idx := r.pos / uint64(r.bclear)
		within := int(r.pos % uint64(r.bclear))

		if e := r.ensureBlock(idx); e != nil {
			if e.Is(errkind.KindEndOfFile) {
				if total > 0 {
					return total, nil
				}
				return total, e
			}
			return total, e
		}

		if within >= len(r.curClear) {
			// position sits exactly at this (short) block's end: EOF.
			if total > 0 {
				return total, nil
			}
			return total, errkind.New(errkind.KindEndOfFile, source, "end of file")
		}

		n := copy(buf[total:], r.curClear[within:])
		r.crc.Write(buf[total : total+n])
		total += n
		r.pos += uint64(n)
	}
	return total, nil
}

// Write always fails: a Reader is read-only.
func (r *Reader) Write([]byte) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "write on a read-only cipher stream")
}

// Skip seeks to the absolute logical (clear) position pos.
func (r *Reader) Skip(pos uint64) errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	r.pos = pos
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

// SkipToEOF scans to the last block to determine the logical clear-stream
// length, then seeks there.
func (r *Reader) SkipToEOF() errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	if e := r.under.SkipToEOF(); e != nil {
		return e
	}
	underLen, e := r.under.GetPosition()
	if e != nil {
		return e
	}
	if underLen == 0 {
		r.pos = 0
		return nil
	}
	totalBlocks := underLen / uint64(r.paddedLen)
	if totalBlocks == 0 {
		r.pos = 0
		return nil
	}
	if e := r.loadBlock(totalBlocks - 1); e != nil {
		return e
	}
	r.pos = (totalBlocks-1)*uint64(r.bclear) + uint64(len(r.curClear))
	return nil
}

func (r *Reader) GetPosition() (uint64, errkind.Error) {
	if e := r.CheckAlive(source); e != nil {
		return 0, e
	}
	return r.pos, nil
}

// Skippable reports true in both directions: any block can be decrypted
// independently once its ciphertext is located.
func (r *Reader) Skippable(_ stream.Direction, _ uint64) bool {
	return true
}

func (r *Reader) Truncate(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "cipher reader does not support truncate")
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

func (r *Reader) Terminate() errkind.Error {
	if r.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	r.MarkTerminated()
	return r.under.Terminate()
}

var _ stream.Stream = (*Reader)(nil)
