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
	"io"

	"github.com/nabbar/darkit/errkind"
)

// runCompress drives a streaming io.WriteCloser codec over a single block:
// write all of input, close to flush, then copy into output, reporting a
// memory-kind error if the result does not fit.
func runCompress(w io.WriteCloser, buf *bytes.Buffer, input, output []byte) (int, errkind.Error) {
	if _, err := w.Write(input); err != nil {
		return 0, errkind.Wrap(errkind.KindData, source, err)
	}
	if err := w.Close(); err != nil {
		return 0, errkind.Wrap(errkind.KindData, source, err)
	}
	if buf.Len() > len(output) {
		return 0, errkind.New(errkind.KindMemory, source, "compressed output exceeds destination buffer")
	}
	return copy(output, buf.Bytes()), nil
}

// runDecompress drains a streaming io.Reader codec into output, distinguishing
// a corrupt stream from an output buffer too small to hold the result: the
// latter occurs if the reader still has bytes after output fills.
func runDecompress(r io.Reader, input, output []byte) (int, errkind.Error) {
	var total int
	for total < len(output) {
		n, err := r.Read(output[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, errkind.New(errkind.KindData, source, "corrupted data: "+err.Error())
		}
		if n == 0 {
			break
		}
	}
	if total == len(output) {
		// check for trailing data indicating output was too small
		var probe [1]byte
		if n, _ := r.Read(probe[:]); n > 0 {
			return total, errkind.New(errkind.KindMemory, source, "decompressed output exceeds destination buffer")
		}
	}
	return total, nil
}
