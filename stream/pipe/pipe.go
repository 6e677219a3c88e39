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

// Package pipe implements the stream.Stream contract over a byte pipe:
// backward skip is illegal, forward skip is emulated by reading and
// discarding, and a seekable wrapper adds a monotone position counter on
// top for layers above that need get_position to behave.
package pipe

import (
	"bufio"
	"io"
	"os"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

const source = "stream/pipe"

// Stream wraps a pipe-like *os.File (a named pipe, an inherited fd, or one
// end of an anonymous pipe pair).
type Stream struct {
	stream.Lifecycle
	crc stream.CRC
	f   *os.File
	r   *bufio.Reader
}

// FromFile wraps an already-open file descriptor (inherited or opened by
// the caller) as a pipe Stream.
func FromFile(f *os.File) *Stream {
	return &Stream{f: f, r: bufio.NewReader(f)}
}

// Open opens the named pipe at path for the given flag (os.O_RDONLY or
// os.O_WRONLY).
func Open(path string, flag int) (*Stream, errkind.Error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, errkind.Wrap(errkind.KindHardware, source, err)
	}
	return FromFile(f), nil
}

// Anonymous creates an anonymous pipe pair; ReadEnd returns the read side
// for callers that need a separate accessor.
type Anonymous struct {
	readEnd  *Stream
	writeEnd *Stream
}

func NewAnonymous() (*Anonymous, errkind.Error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errkind.Wrap(errkind.KindHardware, source, err)
	}
	return &Anonymous{readEnd: FromFile(r), writeEnd: FromFile(w)}, nil
}

func (a *Anonymous) ReadEnd() *Stream  { return a.readEnd }
func (a *Anonymous) WriteEnd() *Stream { return a.writeEnd }

func (s *Stream) Read(buf []byte) (int, errkind.Error) {
	if e := s.CheckAlive(source); e != nil {
		return 0, e
	}
	n, err := s.r.Read(buf)
	if n > 0 {
		s.crc.Write(buf[:n])
	}
	if err != nil {
		if err == io.EOF {
			return n, errkind.New(errkind.KindEndOfFile, source, "end of pipe")
		}
		return n, errkind.Wrap(errkind.KindHardware, source, err)
	}
	return n, nil
}

func (s *Stream) Write(buf []byte) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	n, err := s.f.Write(buf)
	if n > 0 {
		s.crc.Write(buf[:n])
	}
	if err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	if n != len(buf) {
		return errkind.New(errkind.KindHardware, source, "short write on pipe")
	}
	return nil
}

// Skip is only legal forward (pos must be reachable by discarding bytes
// already produced upstream; the pipe has no notion of absolute position,
// so this delegates to SkipRelative with a caller-tracked baseline is not
// possible here — Skip on a bare pipe always fails).
func (s *Stream) Skip(pos uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "absolute skip unsupported on a pipe; use the seekable wrapper")
}

// SkipRelative discards delta bytes forward; a negative delta fails since
// backward skip is illegal on a pipe.
func (s *Stream) SkipRelative(delta int64) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if delta < 0 {
		return errkind.New(errkind.KindLibraryMisuse, source, "backward skip on a pipe")
	}
	_, err := io.CopyN(io.Discard, s.r, delta)
	if err != nil && err != io.EOF {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) SkipToEOF() errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if _, err := io.Copy(io.Discard, s.r); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) GetPosition() (uint64, errkind.Error) {
	return 0, errkind.New(errkind.KindLibraryMisuse, source, "a bare pipe has no position; use the seekable wrapper")
}

func (s *Stream) Skippable(dir stream.Direction, _ uint64) bool {
	return dir == stream.DirectionForward
}

func (s *Stream) Truncate(_ uint64) errkind.Error {
	return errkind.New(errkind.KindLibraryMisuse, source, "a pipe is not truncatable")
}

func (s *Stream) Truncatable(_ uint64) bool { return false }

func (s *Stream) ReadAhead(_ uint64) errkind.Error { return nil }
func (s *Stream) SyncWrite() errkind.Error         { return nil }
func (s *Stream) FlushRead() errkind.Error         { return nil }

func (s *Stream) ResetCRC(width stream.CRCWidth) { s.crc.Reset(width) }
func (s *Stream) GetCRC() (uint64, bool)         { return s.crc.Get() }

func (s *Stream) Terminate() errkind.Error {
	if s.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	s.MarkTerminated()
	if err := s.f.Close(); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

// HasNextToRead peeks one byte without consuming it, reporting whether
// more data is available.
var _ stream.Stream = (*Stream)(nil)

func (s *Stream) HasNextToRead() (bool, errkind.Error) {
	if e := s.CheckAlive(source); e != nil {
		return false, e
	}
	_, err := s.r.Peek(1)
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, errkind.Wrap(errkind.KindHardware, source, err)
	}
	return true, nil
}
