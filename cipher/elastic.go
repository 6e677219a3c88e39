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

package cipher

import (
	"encoding/binary"

	"github.com/nabbar/darkit/errkind"
)

// elasticTrailer is the width, in bytes, of the self-describing length
// field every padded block carries in its last bytes.
const elasticTrailer = 8

// paddedLenFor returns the total padded block size for clear blocks of up
// to clearSize bytes under a cipher with the given block size: clearSize
// rounded up to a multiple of blockSize, plus one more cipher block, i.e.
// ceil(clearSize/blockSize + 1) * blockSize.
func paddedLenFor(clearSize, blockSize int) int {
	groups := (clearSize+blockSize-1)/blockSize + 1
	return groups * blockSize
}

// elasticPad copies clear into a zero-filled buffer of paddedLen bytes and
// writes its length, big-endian, into the trailing elasticTrailer bytes.
func elasticPad(clear []byte, paddedLen int) []byte {
	buf := make([]byte, paddedLen)
	copy(buf, clear)
	binary.BigEndian.PutUint64(buf[paddedLen-elasticTrailer:], uint64(len(clear)))
	return buf
}

// elasticUnpad recovers the original clear slice from a decrypted padded
// block, validating that the declared length does not overrun the block.
func elasticUnpad(padded []byte) ([]byte, errkind.Error) {
	if len(padded) < elasticTrailer {
		return nil, errkind.New(errkind.KindData, source, "elastic buffer shorter than its own length field")
	}
	l := binary.BigEndian.Uint64(padded[len(padded)-elasticTrailer:])
	if l > uint64(len(padded)-elasticTrailer) {
		return nil, errkind.New(errkind.KindData, source, "elastic buffer declares a length exceeding the block")
	}
	return padded[:l], nil
}
