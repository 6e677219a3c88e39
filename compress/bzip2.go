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

	"github.com/dsnet/compress/bzip2"

	"github.com/nabbar/darkit/errkind"
)

// bzip2Codec uses dsnet/compress, the only pack dependency offering a
// bzip2 encoder (the standard library's compress/bzip2 is decode-only).
type bzip2Codec struct {
	level int
}

func newBzip2Codec(level int) Codec {
	if level == 0 {
		level = 6
	}
	return bzip2Codec{level: level}
}

func (bzip2Codec) Algorithm() Algorithm { return AlgorithmBzip2 }

func (bzip2Codec) MaxInputSize() uint64 { return 1 << 32 }

func (bzip2Codec) MinOutputBufferFor(inputSize uint64) uint64 {
	return inputSize + inputSize/100 + 600
}

func (c bzip2Codec) Compress(input, output []byte) (int, errkind.Error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: c.level})
	if err != nil {
		return 0, errkind.Wrap(errkind.KindLibraryMisuse, source, err)
	}
	return runCompress(w, &buf, input, output)
}

func (bzip2Codec) Decompress(input, output []byte) (int, errkind.Error) {
	r, err := bzip2.NewReader(bytes.NewReader(input), nil)
	if err != nil {
		return 0, errkind.New(errkind.KindData, source, "corrupted data: "+err.Error())
	}
	defer r.Close()
	return runDecompress(r, input, output)
}

func (c bzip2Codec) Clone() Codec { return bzip2Codec{level: c.level} }
