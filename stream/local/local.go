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

// Package local implements the stream.Stream contract over an OS file
// descriptor: seek/fadvise/fsync/ownership operations, with fadvise and
// O_NOATIME backed by golang.org/x/sys/unix and degrading gracefully when
// unsupported on the host platform.
package local

import (
	"io"
	"os"
	"strconv"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

const source = "stream/local"

// Advice names a fadvise hint.
type Advice int

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceRandom
	AdviceNoReuse
	AdviceWillNeed
	AdviceDontNeed
)

// Stream wraps an *os.File as a stream.Stream.
type Stream struct {
	stream.Lifecycle
	crc  stream.CRC
	f    *os.File
	path string
}

// OpenOptions configures Open.
type OpenOptions struct {
	Write        bool
	Create       bool
	Truncate     bool
	Append       bool
	Perm         os.FileMode
	FurtiveRead  bool // best-effort O_NOATIME; degrades silently if unsupported
}

// Open opens path according to opts and returns a Stream.
func Open(path string, opts OpenOptions) (*Stream, errkind.Error) {
	flag := os.O_RDONLY
	if opts.Write {
		flag = os.O_RDWR
	}
	if opts.Create {
		flag |= os.O_CREATE
	}
	if opts.Truncate {
		flag |= os.O_TRUNC
	}
	if opts.Append {
		flag |= os.O_APPEND
	}

	perm := opts.Perm
	if perm == 0 {
		perm = 0o640
	}

	f, err := openWithFurtive(path, flag, perm, opts.FurtiveRead)
	if err != nil {
		return nil, errkind.Wrap(errkind.KindHardware, source, err)
	}

	return &Stream{f: f, path: path}, nil
}

func (s *Stream) Read(buf []byte) (int, errkind.Error) {
	if e := s.CheckAlive(source); e != nil {
		return 0, e
	}
	n, err := s.f.Read(buf)
	if n > 0 {
		s.crc.Write(buf[:n])
	}
	if err != nil {
		if err == io.EOF {
			return n, errkind.New(errkind.KindEndOfFile, source, "end of file")
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
		// partial write: reported as a hardware error; the slice layer
		// passes it up without prompting or retrying.
		return errkind.New(errkind.KindHardware, source, "short write: disk may be full")
	}
	return nil
}

func (s *Stream) Skip(pos uint64) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if _, err := s.f.Seek(int64(pos), io.SeekStart); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) SkipRelative(delta int64) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if _, err := s.f.Seek(delta, io.SeekCurrent); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) SkipToEOF() errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if _, err := s.f.Seek(0, io.SeekEnd); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) GetPosition() (uint64, errkind.Error) {
	if e := s.CheckAlive(source); e != nil {
		return 0, e
	}
	p, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errkind.Wrap(errkind.KindHardware, source, err)
	}
	return uint64(p), nil
}

func (s *Stream) Skippable(_ stream.Direction, _ uint64) bool {
	return true
}

func (s *Stream) Truncate(pos uint64) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if err := s.f.Truncate(int64(pos)); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) Truncatable(_ uint64) bool {
	return true
}

func (s *Stream) ReadAhead(_ uint64) errkind.Error {
	return nil
}

func (s *Stream) SyncWrite() errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if err := s.f.Sync(); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func (s *Stream) FlushRead() errkind.Error {
	return nil
}

func (s *Stream) ResetCRC(width stream.CRCWidth) {
	s.crc.Reset(width)
}

func (s *Stream) GetCRC() (uint64, bool) {
	return s.crc.Get()
}

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

var _ stream.Stream = (*Stream)(nil)

// Fadvise applies an advisory access-pattern hint; unsupported platforms
// degrade to a silent no-op.
func (s *Stream) Fadvise(a Advice) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	return fadvise(s.f, a)
}

// Chown sets ownership from symbolic or numeric-decimal user/group names.
// A name that does not resolve to an account on the host is treated as a
// literal numeric id.
func Chown(path, user, group string) errkind.Error {
	uid, e := resolveUID(user)
	if e != nil {
		return e
	}
	gid, e := resolveGID(group)
	if e != nil {
		return e
	}
	if err := os.Chown(path, uid, gid); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

func resolveUID(name string) (int, errkind.Error) {
	if name == "" {
		return -1, nil
	}
	if u, err := lookupUser(name); err == nil {
		return u, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		return n, nil
	}
	return -1, errkind.New(errkind.KindUserAbort, source, "unresolvable user: "+name)
}

func resolveGID(name string) (int, errkind.Error) {
	if name == "" {
		return -1, nil
	}
	if g, err := lookupGroup(name); err == nil {
		return g, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		return n, nil
	}
	return -1, errkind.New(errkind.KindUserAbort, source, "unresolvable group: "+name)
}
