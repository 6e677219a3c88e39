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
	"io"

	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/errkind"
)

// CurrentVersion is the format version this build writes.
var CurrentVersion = cipher.Version{Major: 11, Fix: 0}

// maxMajor is the highest primary version this build can read.
const maxMajor uint16 = 11

// The version field is written one hex digit per byte: three digit bytes
// of the primary version, plus one fix-nibble byte once the primary
// version reaches 8. Three zero bytes are the reserved "empty/absent"
// marker. Versions below 8 never wrote a fix digit; it reads as zero.

// WriteVersion encodes v onto w.
func WriteVersion(w io.Writer, v cipher.Version) errkind.Error {
	if v.Major > 0xfff {
		return errkind.New(errkind.KindRange, source, "primary version exceeds three hex digits")
	}
	buf := []byte{
		byte(v.Major >> 8 & 0xf),
		byte(v.Major >> 4 & 0xf),
		byte(v.Major & 0xf),
	}
	if v.Major >= 8 {
		buf = append(buf, v.Fix&0xf)
	}
	if _, err := w.Write(buf); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

// ReadVersion decodes a version field from r. The all-zero marker decodes
// as the zero Version; a primary version above this build's maximum is an
// unsupported-feature error.
func ReadVersion(r io.Reader) (cipher.Version, errkind.Error) {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return cipher.Version{}, errkind.Wrap(errkind.KindData, source, err)
	}
	for _, b := range buf {
		if b > 0xf {
			return cipher.Version{}, errkind.New(errkind.KindData, source, "version digit out of range")
		}
	}

	major := uint16(buf[0])<<8 | uint16(buf[1])<<4 | uint16(buf[2])
	if major == 0 {
		return cipher.Version{}, nil
	}

	var fix uint8
	if major >= 8 {
		var fb [1]byte
		if _, err := io.ReadFull(r, fb[:]); err != nil {
			return cipher.Version{}, errkind.Wrap(errkind.KindData, source, err)
		}
		if fb[0] > 0xf {
			return cipher.Version{}, errkind.New(errkind.KindData, source, "fix digit out of range")
		}
		fix = fb[0]
	}

	if major > maxMajor {
		return cipher.Version{}, errkind.New(errkind.KindFeatureUnavailable, source,
			"archive version newer than this build supports")
	}
	return cipher.Version{Major: major, Fix: fix}, nil
}
