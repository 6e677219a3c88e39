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

// Package slice presents a single logical seekable stream over a sequence
// of fixed-size numbered files, splitting writes exactly at slice
// boundaries and stitching reads back together transparently.
package slice

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/overwrite"
	"github.com/nabbar/darkit/stream"
	"github.com/nabbar/darkit/stream/hashsink"
	"github.com/nabbar/darkit/stream/local"
)

const source = "slice"

// Prompter is consulted when a read/seek needs a slice that is not
// present on disk, e.g. the next volume of a removable-media archive.
type Prompter interface {
	// PauseForSlice asks the user to make slice n of path available.
	// Returning false means abort.
	PauseForSlice(n uint64, path string) bool
}

// Config parameterizes a slice set.
type Config struct {
	Dir          string
	Base         string // slice basename, without the slice number or extension
	Ext          string // file extension, without the leading dot
	S0           uint64 // first-slice size
	S            uint64 // every subsequent slice size
	Pause        bool
	Hash         hashsink.Algorithm
	FinalTrailer []byte
	Policy       overwrite.Policy
	UI           Prompter
}

func (c Config) path(n uint64) string {
	return filepath.Join(c.Dir, fmt.Sprintf("%s.%d.%s", c.Base, n, c.Ext))
}

func (c Config) hashPath(n uint64) string {
	return filepath.Join(c.Dir, fmt.Sprintf("%s.%d.%s.%s", c.Base, n, c.Ext, c.Hash.String()))
}

// CandidateRegexp returns the expression a filename must match to be
// considered a slice of this set: base, a 1-based decimal number with no
// leading zero, and the extension.
func (c Config) CandidateRegexp() *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(c.Base) + `\.[1-9][0-9]*\.` + regexp.QuoteMeta(c.Ext) + `$`)
}

// IsCandidate reports whether name looks like a slice file of this set.
func (c Config) IsCandidate(name string) bool {
	return c.CandidateRegexp().MatchString(name)
}

func (c Config) capacity(n uint64) uint64 {
	if n == 1 {
		return c.S0
	}
	return c.S
}

// startOffset returns the logical position of the first byte of slice n.
func (c Config) startOffset(n uint64) uint64 {
	if n <= 1 {
		return 0
	}
	return c.S0 + (n-2)*c.S
}

// sliceAndOffset maps a logical position to (slice number, within-slice
// offset).
func (c Config) sliceAndOffset(pos uint64) (uint64, uint64) {
	if pos < c.S0 {
		return 1, pos
	}
	if c.S == 0 {
		return 1, pos
	}
	rest := pos - c.S0
	n := 2 + rest/c.S
	off := rest % c.S
	return n, off
}

type openStream interface {
	Write(buf []byte) errkind.Error
	SyncWrite() errkind.Error
	Terminate() errkind.Error
}

// Writer is the write-mode logical stream over a slice set. It implements
// the full stream.Stream contract so it can sit under a cipher.Writer or
// compress/stream.Writer in the stacked pipeline, even though — being
// write-only and sequential — it rejects Read and every seek/truncate
// operation with a library-misuse error.
type Writer struct {
	stream.Lifecycle
	cfg        Config
	num        uint64
	cur        openStream
	writtenCur uint64
	pos        uint64
	crc        stream.CRC
}

func NewWriter(cfg Config) *Writer {
	return &Writer{cfg: cfg, num: 0}
}

func (w *Writer) openNext() errkind.Error {
	if w.cur != nil {
		if e := w.cur.Terminate(); e != nil {
			return e
		}
	}
	w.num++
	w.writtenCur = 0

	path := w.cfg.path(w.num)
	if _, err := os.Stat(path); err == nil {
		if w.cfg.Policy != nil {
			d, derr := w.cfg.Policy.Resolve(path)
			if derr != nil {
				return errkind.Wrap(errkind.KindUserAbort, source, derr)
			}
			if d == overwrite.DecisionDeny {
				return errkind.New(errkind.KindUserAbort, source, "refused to overwrite "+path)
			}
		}
	}

	ls, e := local.Open(path, local.OpenOptions{Write: true, Create: true, Truncate: true, Perm: 0o640})
	if e != nil {
		return e
	}

	if w.cfg.Hash == hashsink.AlgorithmNone {
		w.cur = ls
	} else {
		sink, e := hashsink.New(ls, w.cfg.Hash, w.cfg.hashPath(w.num), path)
		if e != nil {
			return e
		}
		w.cur = sink
	}
	return nil
}

// Write splits buf across slice boundaries as needed.
func (w *Writer) Write(buf []byte) errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	if w.num == 0 {
		if e := w.openNext(); e != nil {
			return e
		}
	}

	for len(buf) > 0 {
		cap := w.cfg.capacity(w.num)
		room := cap - w.writtenCur
		if room == 0 {
			if e := w.openNext(); e != nil {
				return e
			}
			continue
		}

		n := uint64(len(buf))
		if n > room {
			n = room
		}

		if e := w.cur.Write(buf[:n]); e != nil {
			return e
		}
		w.crc.Write(buf[:n])
		w.writtenCur += n
		w.pos += n
		buf = buf[n:]
	}
	return nil
}

// Read always fails: a Writer is write-only.
func (w *Writer) Read([]byte) (int, errkind.Error) {
	return 0, errkind.New(errkind.KindLibraryMisuse, source, "read on a write-only slice stream")
}

func (w *Writer) GetPosition() (uint64, errkind.Error) {
	if e := w.CheckAlive(source); e != nil {
		return 0, e
	}
	return w.pos, nil
}

// Skip, SkipRelative and SkipToEOF always fail: a slice Writer only ever
// appends sequentially onto the current slice.
func (w *Writer) Skip(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "slice writer is sequential-only")
}

func (w *Writer) SkipRelative(int64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "slice writer is sequential-only")
}

func (w *Writer) SkipToEOF() errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "slice writer is sequential-only")
}

func (w *Writer) Skippable(stream.Direction, uint64) bool {
	return false
}

func (w *Writer) Truncate(uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "slice writer does not support truncate")
}

func (w *Writer) Truncatable(uint64) bool {
	return false
}

func (w *Writer) ReadAhead(uint64) errkind.Error {
	return nil
}

// SyncWrite forces a data sync on the currently open slice file.
func (w *Writer) SyncWrite() errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	if w.cur == nil {
		return nil
	}
	return w.cur.SyncWrite()
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

func (w *Writer) Terminate() errkind.Error {
	if w.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	w.MarkTerminated()

	if w.cur != nil {
		if len(w.cfg.FinalTrailer) > 0 {
			if e := w.cur.Write(w.cfg.FinalTrailer); e != nil {
				return e
			}
		}
		return w.cur.Terminate()
	}
	return nil
}

var _ stream.Stream = (*Writer)(nil)
