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

	"github.com/ulikunitz/xz"

	"github.com/nabbar/darkit/errkind"
)

type xzCodec struct{}

func newXZCodec() Codec { return xzCodec{} }

func (xzCodec) Algorithm() Algorithm { return AlgorithmXZ }

func (xzCodec) MaxInputSize() uint64 { return 1 << 32 }

func (xzCodec) MinOutputBufferFor(inputSize uint64) uint64 {
	return inputSize + inputSize/500 + 256
}

func (xzCodec) Compress(input, output []byte) (int, errkind.Error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return 0, errkind.Wrap(errkind.KindLibraryMisuse, source, err)
	}
	return runCompress(w, &buf, input, output)
}

func (xzCodec) Decompress(input, output []byte) (int, errkind.Error) {
	r, err := xz.NewReader(bytes.NewReader(input))
	if err != nil {
		return 0, errkind.New(errkind.KindData, source, "corrupted data: "+err.Error())
	}
	return runDecompress(r, input, output)
}

func (xzCodec) Clone() Codec { return xzCodec{} }
