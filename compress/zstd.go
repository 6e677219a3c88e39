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

	"github.com/klauspost/compress/zstd"

	"github.com/nabbar/darkit/errkind"
)

type zstdCodec struct {
	level zstd.EncoderLevel
}

// newZstdCodec maps the archive's generic 1..9 level onto the library's
// four speed tiers.
func newZstdCodec(level int) Codec {
	l := zstd.SpeedDefault
	switch {
	case level == 0:
	case level <= 2:
		l = zstd.SpeedFastest
	case level <= 5:
		l = zstd.SpeedDefault
	case level <= 7:
		l = zstd.SpeedBetterCompression
	default:
		l = zstd.SpeedBestCompression
	}
	return zstdCodec{level: l}
}

func (zstdCodec) Algorithm() Algorithm { return AlgorithmZstd }

func (zstdCodec) MaxInputSize() uint64 { return 1 << 34 }

func (zstdCodec) MinOutputBufferFor(inputSize uint64) uint64 {
	return inputSize + inputSize/200 + 128
}

func (c zstdCodec) Compress(input, output []byte) (int, errkind.Error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(c.level))
	if err != nil {
		return 0, errkind.Wrap(errkind.KindLibraryMisuse, source, err)
	}
	return runCompress(w, &buf, input, output)
}

func (zstdCodec) Decompress(input, output []byte) (int, errkind.Error) {
	r, err := zstd.NewReader(bytes.NewReader(input))
	if err != nil {
		return 0, errkind.New(errkind.KindData, source, "corrupted data: "+err.Error())
	}
	defer r.Close()
	return runDecompress(r, input, output)
}

func (c zstdCodec) Clone() Codec { return zstdCodec{level: c.level} }
