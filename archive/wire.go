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

package archive

import (
	"io"

	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

// streamWriter and streamReader adapt a stream.Stream to the io.Writer /
// io.Reader shapes the bigint and fsa wire codecs expect.
type streamWriter struct{ s stream.Stream }

func (a streamWriter) Write(p []byte) (int, error) {
	if e := a.s.Write(p); e != nil {
		return 0, e
	}
	return len(p), nil
}

type streamReader struct{ s stream.Stream }

func (a streamReader) Read(p []byte) (int, error) {
	n, e := a.s.Read(p)
	if e != nil {
		if e.Is(errkind.KindEndOfFile) {
			return n, io.EOF
		}
		return n, e
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// readFull fills buf from s, looping across short reads.
func readFull(s stream.Stream, buf []byte) errkind.Error {
	total := 0
	for total < len(buf) {
		n, e := s.Read(buf[total:])
		total += n
		if e != nil {
			if e.Is(errkind.KindEndOfFile) && total == len(buf) {
				return nil
			}
			return e
		}
		if n == 0 {
			return errkind.New(errkind.KindData, source, "short read: truncated archive")
		}
	}
	return nil
}

// writeUint and readUint move a native integer through the BigInt codec.
func writeUint(s stream.Stream, v uint64) errkind.Error {
	return bigint.Write(streamWriter{s}, bigint.FromUint64(v))
}

func readUint(s stream.Stream) (uint64, errkind.Error) {
	return bigint.ReadBounded(streamReader{s})
}

// writeString frames str as a BigInt length followed by its bytes.
func writeString(s stream.Stream, str string) errkind.Error {
	if e := writeUint(s, uint64(len(str))); e != nil {
		return e
	}
	if len(str) == 0 {
		return nil
	}
	return s.Write([]byte(str))
}

func readString(s stream.Stream) (string, errkind.Error) {
	n, e := readUint(s)
	if e != nil {
		return "", e
	}
	if n > 1<<20 {
		return "", errkind.New(errkind.KindData, source, "unreasonable string length in archive")
	}
	buf := make([]byte, n)
	if e := readFull(s, buf); e != nil {
		return "", e
	}
	return string(buf), nil
}

// offsetStream presents the tail of a stream, starting at base, as a
// stream whose position 0 is base. The cipher layer requires its
// ciphertext to start at position 0 of whatever stream it is handed; the
// plain archive header in front of the body would otherwise shift every
// block.
type offsetStream struct {
	under stream.Stream
	base  uint64
}

func newOffsetStream(under stream.Stream, base uint64) *offsetStream {
	return &offsetStream{under: under, base: base}
}

func (o *offsetStream) Read(buf []byte) (int, errkind.Error) { return o.under.Read(buf) }
func (o *offsetStream) Write(buf []byte) errkind.Error       { return o.under.Write(buf) }

func (o *offsetStream) Skip(pos uint64) errkind.Error {
	return o.under.Skip(o.base + pos)
}

func (o *offsetStream) SkipRelative(delta int64) errkind.Error {
	return o.under.SkipRelative(delta)
}

func (o *offsetStream) SkipToEOF() errkind.Error { return o.under.SkipToEOF() }

func (o *offsetStream) GetPosition() (uint64, errkind.Error) {
	p, e := o.under.GetPosition()
	if e != nil {
		return 0, e
	}
	if p < o.base {
		return 0, errkind.New(errkind.KindBug, source, "position before body start")
	}
	return p - o.base, nil
}

func (o *offsetStream) Skippable(dir stream.Direction, amount uint64) bool {
	return o.under.Skippable(dir, amount)
}

func (o *offsetStream) Truncate(pos uint64) errkind.Error {
	return o.under.Truncate(o.base + pos)
}

func (o *offsetStream) Truncatable(pos uint64) bool {
	return o.under.Truncatable(o.base + pos)
}

func (o *offsetStream) ReadAhead(amount uint64) errkind.Error { return o.under.ReadAhead(amount) }
func (o *offsetStream) SyncWrite() errkind.Error              { return o.under.SyncWrite() }
func (o *offsetStream) FlushRead() errkind.Error              { return o.under.FlushRead() }
func (o *offsetStream) ResetCRC(width stream.CRCWidth)        { o.under.ResetCRC(width) }
func (o *offsetStream) GetCRC() (uint64, bool)                { return o.under.GetCRC() }
func (o *offsetStream) Terminate() errkind.Error              { return o.under.Terminate() }

var _ stream.Stream = (*offsetStream)(nil)

// limitStream caps reads at n bytes, signalling end-of-stream after
// that, so a file that grows while being archived cannot push surplus
// bytes into the entry framing.
type limitStream struct {
	stream.Stream
	n uint64
}

func newLimitStream(under stream.Stream, n uint64) *limitStream {
	return &limitStream{Stream: under, n: n}
}

// Remaining reports how many bytes of the region are still unread.
func (l *limitStream) Remaining() uint64 { return l.n }

func (l *limitStream) Read(buf []byte) (int, errkind.Error) {
	if l.n == 0 {
		return 0, errkind.New(errkind.KindEndOfFile, source, "end of limited region")
	}
	if uint64(len(buf)) > l.n {
		buf = buf[:l.n]
	}
	k, e := l.Stream.Read(buf)
	l.n -= uint64(k)
	return k, e
}
