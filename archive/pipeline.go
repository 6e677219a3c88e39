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
	"github.com/sirupsen/logrus"

	"github.com/nabbar/darkit/cancel"
	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/compress/parallel"
	cstream "github.com/nabbar/darkit/compress/stream"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/fsa"
	"github.com/nabbar/darkit/runtime"
	"github.com/nabbar/darkit/slice"
	"github.com/nabbar/darkit/stream"
	"github.com/nabbar/darkit/stream/hashsink"
)

// Options parameterizes one archive the way its header will describe it.
type Options struct {
	Slice         slice.Config
	Cipher        cipher.Algorithm
	Passphrase    string // empty means no encryption layer
	Iterations    int
	Compression   compress.Algorithm
	Level         int
	ClearBlock    int // cipher plaintext block size
	CompressBlock int // streaming-compressor chunk size; 0 picks the default
	Workers       int // >1 compresses large file bodies on a worker pool
	FSAScope      fsa.Scope
}

// OptionsFromConfig derives archive Options from a decoded runtime
// Config, anchoring the slice set at dir/base.ext.
func OptionsFromConfig(c runtime.Config, dir, base, ext string) Options {
	hash := hashsink.AlgorithmNone
	if c.HashSidecars {
		hash = hashsink.AlgorithmSHA1
	}
	sliceSize := c.SliceSize
	if sliceSize == 0 {
		// single-slice archive: one file, effectively unbounded
		sliceSize = 1 << 62
	}
	return Options{
		Slice: slice.Config{
			Dir:  dir,
			Base: base,
			Ext:  ext,
			S0:   sliceSize,
			S:    sliceSize,
			Hash: hash,
		},
		Cipher:      c.Cipher,
		Passphrase:  c.Passphrase,
		Iterations:  c.Iterations,
		Compression: c.Compression,
		Level:       c.Level,
		ClearBlock:  c.ClearBlock,
		Workers:     c.Workers,
	}
}

func (o Options) header() Header {
	iters := o.Iterations
	if iters <= 0 {
		iters = cipher.DefaultIterations
	}
	bclear := o.ClearBlock
	if bclear <= 0 {
		bclear = 1 << 20
	}
	return Header{
		Version:     CurrentVersion,
		Encrypted:   o.Passphrase != "",
		Hashed:      o.Slice.Hash != hashsink.AlgorithmNone,
		Cipher:      o.Cipher,
		Compression: o.Compression,
		Iterations:  uint64(iters),
		ClearBlock:  uint64(bclear),
		FSAScope:    o.FSAScope,
	}
}

// writePipeline is the assembled write-mode stack. Terminating top
// cascades down through every layer to the slice files.
type writePipeline struct {
	top    stream.Stream
	cw     *cstream.Writer
	base   stream.Stream // the stream below the compressor
	codec  compress.Codec
	slices *slice.Writer
}

// openWrite creates the slice set, writes the plain header, and stacks
// cipher and compressor over it per opts.
func openWrite(rt *runtime.Runtime, opts Options) (*writePipeline, Header, errkind.Error) {
	hdr := opts.header()

	sw := slice.NewWriter(opts.Slice)
	if e := hdr.WriteTo(sw); e != nil {
		return nil, hdr, e
	}

	var base stream.Stream = sw
	if hdr.Encrypted {
		ks, e := cipher.NewKeySchedule(opts.Cipher, hdr.Version, opts.Passphrase, int(hdr.Iterations))
		if e != nil {
			return nil, hdr, e
		}
		base = cipher.NewWriter(sw, ks, int(hdr.ClearBlock))
	}

	codec, e := compress.New(opts.Compression, opts.Level)
	if e != nil {
		return nil, hdr, e
	}
	cw := cstream.NewWriter(base, codec, opts.CompressBlock)

	rt.Logger().WithFields(logrus.Fields{
		"cipher":      string(cipherTag(hdr.Cipher, hdr.Encrypted)),
		"compression": hdr.Compression.String(),
	}).Debug("archive pipeline opened")

	return &writePipeline{top: cw, cw: cw, base: base, codec: codec, slices: sw}, hdr, nil
}

func (p *writePipeline) Terminate() errkind.Error {
	return p.top.Terminate()
}

// compressParallel routes a file body through the worker-pool compressor.
// Both compressors emit the same frame sequence for the same input, so
// the archive reads back identically either way; the streaming writer is
// flushed first so no partial frame straddles the hand-off.
func (p *writePipeline) compressParallel(src stream.Stream, workers int, tok cancel.Token) errkind.Error {
	if e := p.cw.Flush(); e != nil {
		return e
	}
	blockSize := p.cw.BlockSize()
	return parallel.Compress(src, p.base, p.codec, blockSize, workers, tok)
}

// readPipeline mirrors writePipeline for read mode.
type readPipeline struct {
	top    stream.Stream
	slices *slice.Reader
	hdr    Header
}

// openRead opens the slice set, parses the plain header, and stacks the
// matching decryption/decompression layers. The passphrase is prompted
// through rt's interaction surface when the header demands one the
// caller did not supply.
func openRead(rt *runtime.Runtime, opts Options) (*readPipeline, errkind.Error) {
	sr := slice.NewReader(opts.Slice)

	hdr, e := ReadHeader(sr)
	if e != nil {
		return nil, e
	}

	hdrLen, e := sr.GetPosition()
	if e != nil {
		return nil, e
	}
	body := newOffsetStream(sr, hdrLen)

	pass := opts.Passphrase
	if hdr.Encrypted && pass == "" {
		pass, e = rt.UI().GetSecureString("archive passphrase: ")
		if e != nil {
			return nil, e.Push(source, "encrypted archive needs a passphrase")
		}
	}

	var ks *cipher.KeySchedule
	if hdr.Encrypted {
		if ks, e = cipher.NewKeySchedule(hdr.Cipher, hdr.Version, pass, int(hdr.Iterations)); e != nil {
			return nil, e
		}
	}

	codec, e := compress.New(hdr.Compression, 0)
	if e != nil {
		return nil, e
	}

	clearStream := func() stream.Stream {
		if ks != nil {
			return cipher.NewReader(body, ks, int(hdr.ClearBlock))
		}
		return body
	}

	reopen := func() (stream.Stream, errkind.Error) {
		if e := body.Skip(0); e != nil {
			return nil, e
		}
		return clearStream(), nil
	}

	top := cstream.NewReader(clearStream(), codec, reopen)

	return &readPipeline{top: top, slices: sr, hdr: hdr}, nil
}

func (p *readPipeline) Terminate() errkind.Error {
	return p.top.Terminate()
}

// discard reads and drops n bytes from the top of the pipeline.
func (p *readPipeline) discard(n uint64) errkind.Error {
	buf := make([]byte, 64*1024)
	for n > 0 {
		want := n
		if want > uint64(len(buf)) {
			want = uint64(len(buf))
		}
		k, e := p.top.Read(buf[:want])
		if k == 0 && e == nil {
			return errkind.New(errkind.KindData, source, "short read: truncated entry data")
		}
		n -= uint64(k)
		if e != nil {
			if e.Is(errkind.KindEndOfFile) && n == 0 {
				return nil
			}
			if e.Is(errkind.KindEndOfFile) {
				return errkind.New(errkind.KindData, source, "short read: truncated entry data")
			}
			return e
		}
	}
	return nil
}
