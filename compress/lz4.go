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

	"github.com/pierrec/lz4/v4"

	"github.com/nabbar/darkit/errkind"
)

type lz4Codec struct {
	level lz4.CompressionLevel
}

// lz4Levels maps the archive's generic 1..9 level onto the library's
// named level constants.
var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func newLZ4Codec(level int) Codec {
	l := lz4.Fast
	if level > 0 && level < len(lz4Levels) {
		l = lz4Levels[level]
	} else if level >= len(lz4Levels) {
		l = lz4.Level9
	}
	return lz4Codec{level: l}
}

func (lz4Codec) Algorithm() Algorithm { return AlgorithmLZ4 }

func (lz4Codec) MaxInputSize() uint64 { return 1 << 32 }

func (lz4Codec) MinOutputBufferFor(inputSize uint64) uint64 {
	return inputSize + inputSize/255 + 64
}

func (c lz4Codec) Compress(input, output []byte) (int, errkind.Error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
		return 0, errkind.Wrap(errkind.KindLibraryMisuse, source, err)
	}
	return runCompress(w, &buf, input, output)
}

func (lz4Codec) Decompress(input, output []byte) (int, errkind.Error) {
	r := lz4.NewReader(bytes.NewReader(input))
	return runDecompress(r, input, output)
}

func (c lz4Codec) Clone() Codec { return lz4Codec{level: c.level} }
