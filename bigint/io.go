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

package bigint

import (
	"io"

	"github.com/nabbar/darkit/errkind"
)

const source = "bigint"

// groupSize is the granularity of the value field: the preamble counts
// the field width in groups of this many bytes.
const groupSize = 4

// widthFor returns the canonical (leadingZeroBytes, marker, valueWidth)
// triple for n informational bytes. The informational width is at least
// one byte (the integer 0 still carries one zero byte) and is rounded up
// to a multiple of groupSize; the preamble encodes the group count g as
// leading*8 + pos with pos in 1..8, the marker byte being 0x80 >> (pos-1).
func widthFor(n int) (leading int, mark byte, width int) {
	if n == 0 {
		n = 1
	}
	groups := (n + groupSize - 1) / groupSize

	q, r := groups/8, groups%8
	if r == 0 {
		leading = q - 1
		mark = 0x01
	} else {
		leading = q
		mark = 0x80 >> uint(r-1)
	}
	width = groups * groupSize
	return
}

// Write encodes i onto w in canonical form: the zero-byte run and marker
// of the preamble, then the value big-endian, left-padded with zero bytes
// up to the group boundary.
func Write(w io.Writer, i Int) errkind.Error {
	var value []byte
	if !i.IsZero() {
		// big-endian magnitude with no leading zero byte
		value = i.v.Bytes()
	}

	leading, mark, width := widthFor(len(value))

	hdr := make([]byte, leading+1)
	hdr[leading] = mark
	if _, err := w.Write(hdr); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}

	buf := make([]byte, width)
	copy(buf[width-len(value):], value)
	if _, err := w.Write(buf); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

// Read decodes one Int from r.
func Read(r io.Reader) (Int, errkind.Error) {
	one := make([]byte, 1)
	leading := 0

	for {
		if _, err := io.ReadFull(r, one); err != nil {
			return Zero(), errkind.Wrap(errkind.KindData, source, err)
		}
		if one[0] != 0 {
			break
		}
		leading++
	}

	pos, ok := bitPosOf(one[0])
	if !ok {
		return Zero(), errkind.New(errkind.KindData, source, "marker byte has no single set bit")
	}

	groups := leading*8 + pos
	width := groups * groupSize

	buf := make([]byte, width)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Zero(), errkind.Wrap(errkind.KindData, source, err)
	}

	return FromBytes(buf), nil
}

// ReadBounded decodes one Int from r and fails with a big-integer error
// if the value does not fit in a uint64.
func ReadBounded(r io.Reader) (uint64, errkind.Error) {
	i, e := Read(r)
	if e != nil {
		return 0, e
	}
	u, ok := i.Uint64()
	if !ok {
		return 0, errkind.New(errkind.KindBigInteger, source, "value exceeds target width")
	}
	return u, nil
}

// bitPosOf returns the 1-based position of the marker's set bit counted
// from the most significant bit (0x80 => 1, down to 0x01 => 8), or false
// when more or fewer than one bit is set.
func bitPosOf(b byte) (int, bool) {
	for pos := 1; pos <= 8; pos++ {
		if b == 0x80>>uint(pos-1) {
			return pos, true
		}
	}
	return 0, false
}
