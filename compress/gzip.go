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
	"bytes"

	"github.com/klauspost/compress/gzip"

	"github.com/nabbar/darkit/errkind"
)

type gzipCodec struct {
	level int
}

func newGzipCodec(level int) Codec {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return gzipCodec{level: level}
}

func (gzipCodec) Algorithm() Algorithm { return AlgorithmGzip }

func (gzipCodec) MaxInputSize() uint64 { return 1 << 32 }

func (gzipCodec) MinOutputBufferFor(inputSize uint64) uint64 {
	return inputSize + inputSize/1000 + 64
}

func (c gzipCodec) Compress(input, output []byte) (int, errkind.Error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return 0, errkind.Wrap(errkind.KindLibraryMisuse, source, err)
	}
	return runCompress(w, &buf, input, output)
}

func (gzipCodec) Decompress(input, output []byte) (int, errkind.Error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return 0, errkind.New(errkind.KindData, source, "corrupted data: "+err.Error())
	}
	defer r.Close()
	return runDecompress(r, input, output)
}

func (c gzipCodec) Clone() Codec { return gzipCodec{level: c.level} }
