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

package slice

import (
	"os"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
	"github.com/nabbar/darkit/stream/local"
)

// Reader is the read-mode logical stream over a slice set. It implements
// the full stream.Stream contract so it can sit under a cipher.Reader or
// compress/stream.Reader; being read-only it rejects Write and truncate
// with a library-misuse error.
type Reader struct {
	stream.Lifecycle
	cfg Config
	num uint64
	cur *local.Stream
	pos uint64
	crc stream.CRC
}

func NewReader(cfg Config) *Reader {
	return &Reader{cfg: cfg}
}

func (r *Reader) ensureOpen(num uint64, within uint64) errkind.Error {
	if r.cur != nil && r.num == num {
		return nil
	}
	if r.cur != nil {
		_ = r.cur.Terminate()
	}

	path := r.cfg.path(num)
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		if !r.cfg.Pause || r.cfg.UI == nil || !r.cfg.UI.PauseForSlice(num, path) {
			return errkind.New(errkind.KindUserAbort, source, "missing slice: "+path)
		}
	}

	ls, e := local.Open(path, local.OpenOptions{})
	if e != nil {
		return e
	}
	if e := ls.Skip(within); e != nil {
		return e
	}

	r.cur = ls
	r.num = num
	return nil
}

// Read loops across slice boundaries until buf is filled or the last
// slice is exhausted.
func (r *Reader) Read(buf []byte) (int, errkind.Error) {
	if e := r.CheckAlive(source); e != nil {
		return 0, e
	}

	num, within := r.cfg.sliceAndOffset(r.pos)
	if e := r.ensureOpen(num, within); e != nil {
		return 0, e
	}

	total := 0
	for total < len(buf) {
		n, e := r.cur.Read(buf[total:])
		r.crc.Write(buf[total : total+n])
		total += n
		r.pos += uint64(n)

		if e != nil {
			if e.Is(errkind.KindEndOfFile) {
				nextNum, nextWithin := r.cfg.sliceAndOffset(r.pos)
				if nextNum == num {
					if total > 0 {
						return total, nil
					}
					return total, e
				}
				if oe := r.ensureOpen(nextNum, nextWithin); oe != nil {
					if total > 0 {
						return total, nil
					}
					return total, oe
				}
				num = nextNum
				continue
			}
			return total, e
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// Skip seeks to the absolute logical position pos, opening whichever
// slice contains it.
func (r *Reader) Skip(pos uint64) errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	num, within := r.cfg.sliceAndOffset(pos)
	if e := r.ensureOpen(num, within); e != nil {
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

// SkipToEOF scans forward to the last existing slice file and seeks to
// its end, so a subsequent GetPosition reports the logical archive size.
func (r *Reader) SkipToEOF() errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	n := uint64(1)
	for {
		if _, err := os.Stat(r.cfg.path(n + 1)); err != nil {
			break
		}
		n++
	}
	info, err := os.Stat(r.cfg.path(n))
	if err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	if e := r.ensureOpen(n, uint64(info.Size())); e != nil {
		return e
	}
	r.pos = r.cfg.startOffset(n) + uint64(info.Size())
	return nil
}

// Skippable reports true in both directions: any logical position can be
// reached by opening the slice file that contains it.
func (r *Reader) Skippable(_ stream.Direction, _ uint64) bool {
	return true
}

// Write always fails: a Reader is read-only.
func (r *Reader) Write([]byte) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "write on a read-only slice stream")
}

func (r *Reader) Truncate(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "slice reader does not support truncate")
}

func (r *Reader) Truncatable(uint64) bool {
	return false
}

func (r *Reader) ReadAhead(amount uint64) errkind.Error {
	if e := r.CheckAlive(source); e != nil {
		return e
	}
	if r.cur != nil {
		return r.cur.ReadAhead(amount)
	}
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
	if r.cur != nil {
		return r.cur.Terminate()
	}
	return nil
}

var _ stream.Stream = (*Reader)(nil)
