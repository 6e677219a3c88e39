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
	"github.com/nabbar/darkit/errkind"
)

type noneCodec struct{}

func newNoneCodec() Codec { return noneCodec{} }

func (noneCodec) Algorithm() Algorithm { return AlgorithmNone }

func (noneCodec) MaxInputSize() uint64 { return 1 << 62 }

func (noneCodec) MinOutputBufferFor(inputSize uint64) uint64 { return inputSize }

func (noneCodec) Compress(input, output []byte) (int, errkind.Error) {
	if len(output) < len(input) {
		return 0, errkind.New(errkind.KindMemory, source, "output buffer too small")
	}
	return copy(output, input), nil
}

func (noneCodec) Decompress(input, output []byte) (int, errkind.Error) {
	if len(output) < len(input) {
		return 0, errkind.New(errkind.KindMemory, source, "output buffer too small")
	}
	return copy(output, input), nil
}

func (noneCodec) Clone() Codec { return noneCodec{} }
