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

package pipe

import (
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

// dropBufferSize bounds the buffer used to emulate an absolute forward
// Skip as a loop of partial read-and-drop calls.
const dropBufferSize = 64 * 1024

// Seekable adds a monotone position counter to a bare pipe Stream so that
// GetPosition and an absolute Skip behave for callers above (slice,
// codec) that assume a seekable contract.
type Seekable struct {
	*Stream
	pos uint64
	buf [dropBufferSize]byte
}

func NewSeekable(s *Stream) *Seekable {
	return &Seekable{Stream: s}
}

func (w *Seekable) GetPosition() (uint64, errkind.Error) {
	if e := w.CheckAlive(source); e != nil {
		return 0, e
	}
	return w.pos, nil
}

// Skip advances to the absolute position pos, which must be >= the
// current position; it is emulated as a loop of read-and-drop calls.
func (w *Seekable) Skip(pos uint64) errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	if pos < w.pos {
		return errkind.New(errkind.KindLibraryMisuse, source, "backward skip on a pipe")
	}
	return w.SkipRelative(int64(pos - w.pos))
}

func (w *Seekable) SkipRelative(delta int64) errkind.Error {
	if e := w.CheckAlive(source); e != nil {
		return e
	}
	if delta < 0 {
		return errkind.New(errkind.KindLibraryMisuse, source, "backward skip on a pipe")
	}
	remaining := delta
	for remaining > 0 {
		chunk := remaining
		if chunk > dropBufferSize {
			chunk = dropBufferSize
		}
		n, e := w.Stream.Read(w.buf[:chunk])
		w.pos += uint64(n)
		remaining -= int64(n)
		if e != nil {
			if e.Is(errkind.KindEndOfFile) {
				return nil
			}
			return e
		}
		if n == 0 {
			break
		}
	}
	return nil
}

func (w *Seekable) Read(buf []byte) (int, errkind.Error) {
	n, e := w.Stream.Read(buf)
	w.pos += uint64(n)
	return n, e
}

func (w *Seekable) Write(buf []byte) errkind.Error {
	e := w.Stream.Write(buf)
	if e == nil {
		w.pos += uint64(len(buf))
	}
	return e
}

var _ stream.Stream = (*Seekable)(nil)
