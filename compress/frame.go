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

package compress

import (
	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

// FrameKind distinguishes a codec-compressed block from one carried
// verbatim (compression suspended, or a parallel-compressor pass-through).
type FrameKind byte

const (
	FrameCompressed FrameKind = 'C'
	FrameRaw        FrameKind = 'R'
)

// Frame is one on-wire block unit shared by the single-thread and
// parallel streaming compressors, so their output is byte-for-byte
// interchangeable: a kind tag, the clear length (sizes the decompression
// output buffer), and — for compressed frames — the compressed length,
// followed by that many payload bytes.
type Frame struct {
	Kind     FrameKind
	ClearLen uint64
	CompLen  uint64 // only meaningful when Kind == FrameCompressed
	Payload  []byte
}

// PayloadLen returns the number of payload bytes that follow the frame's
// length field(s) on the wire.
func (f Frame) PayloadLen() uint64 {
	if f.Kind == FrameCompressed {
		return f.CompLen
	}
	return f.ClearLen
}

// streamWriter and streamReader adapt a stream.Stream's errkind-returning
// Read/Write to the stdlib io.Writer/io.Reader shape bigint's codec wants,
// without changing stream.Stream's own contract.
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
		return n, e
	}
	return n, nil
}

// ReadFull reads from s until buf is full or the stream ends.
func ReadFull(s stream.Stream, buf []byte) errkind.Error {
	total := 0
	for total < len(buf) {
		n, e := s.Read(buf[total:])
		total += n
		if e != nil {
			return e
		}
		if n == 0 {
			return errkind.New(errkind.KindEndOfFile, source, "end of stream")
		}
	}
	return nil
}

// WriteFrame writes f's header and payload to dst.
func WriteFrame(dst stream.Stream, f Frame) errkind.Error {
	if e := dst.Write([]byte{byte(f.Kind)}); e != nil {
		return e.Push(source, "write frame kind")
	}
	if e := bigint.Write(streamWriter{dst}, bigint.FromUint64(f.ClearLen)); e != nil {
		return e.Push(source, "write clear length")
	}
	if f.Kind == FrameCompressed {
		if e := bigint.Write(streamWriter{dst}, bigint.FromUint64(f.CompLen)); e != nil {
			return e.Push(source, "write compressed length")
		}
	}
	if len(f.Payload) > 0 {
		if e := dst.Write(f.Payload); e != nil {
			return e.Push(source, "write frame payload")
		}
	}
	return nil
}

// ReadFrameHeader reads the kind tag and length field(s) of the next
// frame from src, without its payload. A KindEndOfFile error means no
// further frame exists.
func ReadFrameHeader(src stream.Stream) (Frame, errkind.Error) {
	var kindBuf [1]byte
	n, e := src.Read(kindBuf[:])
	if e != nil {
		if e.Is(errkind.KindEndOfFile) {
			return Frame{}, e
		}
		return Frame{}, e.Push(source, "read frame kind")
	}
	if n == 0 {
		return Frame{}, errkind.New(errkind.KindEndOfFile, source, "end of stream")
	}

	f := Frame{Kind: FrameKind(kindBuf[0])}
	if f.Kind != FrameCompressed && f.Kind != FrameRaw {
		return Frame{}, errkind.New(errkind.KindData, source, "unknown frame kind")
	}

	clearLen, ce := bigint.ReadBounded(streamReader{src})
	if ce != nil {
		return Frame{}, ce.Push(source, "read clear length")
	}
	f.ClearLen = clearLen

	if f.Kind == FrameCompressed {
		compLen, ce := bigint.ReadBounded(streamReader{src})
		if ce != nil {
			return Frame{}, ce.Push(source, "read compressed length")
		}
		f.CompLen = compLen
	}
	return f, nil
}

// ReadFrame reads a complete frame (header and payload) from src.
func ReadFrame(src stream.Stream) (Frame, errkind.Error) {
	f, e := ReadFrameHeader(src)
	if e != nil {
		return Frame{}, e
	}
	if n := f.PayloadLen(); n > 0 {
		f.Payload = make([]byte, n)
		if e := ReadFull(src, f.Payload); e != nil {
			return Frame{}, e.Push(source, "read frame payload")
		}
	}
	return f, nil
}
