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
	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/fsa"
	"github.com/nabbar/darkit/stream"
)

// magic opens every archive body.
var magic = [4]byte{'d', 'k', 'a', 'r'}

// Header flag bits.
const (
	flagEncrypted uint64 = 1 << iota
	flagHashedSlices
)

// FSA scope bitmask bits.
const (
	scopeBitExtX uint64 = 1 << iota
	scopeBitHFSPlus
)

// Header is the plain-text preamble of an archive: everything a reader
// must know before it can build the decryption/decompression stack.
type Header struct {
	Version     cipher.Version
	Encrypted   bool
	Hashed      bool
	Cipher      cipher.Algorithm
	Compression compress.Algorithm
	Iterations  uint64
	ClearBlock  uint64
	FSAScope    fsa.Scope
}

// cipherTag maps the cipher algorithm to its one-letter header tag; 'n'
// marks an unencrypted archive.
func cipherTag(a cipher.Algorithm, encrypted bool) byte {
	if !encrypted {
		return 'n'
	}
	switch a {
	case cipher.AlgorithmBlowfish:
		return 'b'
	case cipher.AlgorithmAES256:
		return 'a'
	case cipher.AlgorithmTwofish256:
		return 't'
	case cipher.AlgorithmSerpent256:
		return 's'
	case cipher.AlgorithmCamellia256:
		return 'c'
	default:
		return '?'
	}
}

func cipherFromTag(tag byte) (cipher.Algorithm, bool, errkind.Error) {
	switch tag {
	case 'n':
		return cipher.AlgorithmAES256, false, nil
	case 'b':
		return cipher.AlgorithmBlowfish, true, nil
	case 'a':
		return cipher.AlgorithmAES256, true, nil
	case 't':
		return cipher.AlgorithmTwofish256, true, nil
	case 's':
		return cipher.AlgorithmSerpent256, true, nil
	case 'c':
		return cipher.AlgorithmCamellia256, true, nil
	default:
		return cipher.AlgorithmAES256, false,
			errkind.New(errkind.KindData, source, "unknown cipher tag in header")
	}
}

func scopeToBits(s fsa.Scope) uint64 {
	var bits uint64
	if s.Has(fsa.FamilyLinuxExtX) {
		bits |= scopeBitExtX
	}
	if s.Has(fsa.FamilyHFSPlus) {
		bits |= scopeBitHFSPlus
	}
	return bits
}

func scopeFromBits(bits uint64) fsa.Scope {
	fams := make([]fsa.Family, 0, 2)
	if bits&scopeBitExtX != 0 {
		fams = append(fams, fsa.FamilyLinuxExtX)
	}
	if bits&scopeBitHFSPlus != 0 {
		fams = append(fams, fsa.FamilyHFSPlus)
	}
	return fsa.NewScope(fams...)
}

// WriteTo writes the header onto s, plain.
func (h Header) WriteTo(s stream.Stream) errkind.Error {
	if e := s.Write(magic[:]); e != nil {
		return e
	}
	if e := WriteVersion(streamWriter{s}, h.Version); e != nil {
		return e
	}

	var flags uint64
	if h.Encrypted {
		flags |= flagEncrypted
	}
	if h.Hashed {
		flags |= flagHashedSlices
	}
	if e := bigint.Write(streamWriter{s}, bigint.FromUint64(flags)); e != nil {
		return e
	}

	if e := s.Write([]byte{cipherTag(h.Cipher, h.Encrypted), h.Compression.Tag(false)}); e != nil {
		return e
	}
	if e := writeUint(s, h.Iterations); e != nil {
		return e
	}
	if e := writeUint(s, h.ClearBlock); e != nil {
		return e
	}
	return writeUint(s, scopeToBits(h.FSAScope))
}

// ReadHeader parses the header off the front of s.
func ReadHeader(s stream.Stream) (Header, errkind.Error) {
	var h Header

	var m [4]byte
	if e := readFull(s, m[:]); e != nil {
		return h, e
	}
	if m != magic {
		return h, errkind.New(errkind.KindData, source, "bad magic: not an archive")
	}

	v, e := ReadVersion(streamReader{s})
	if e != nil {
		return h, e
	}
	h.Version = v

	flags, e := readUint(s)
	if e != nil {
		return h, e
	}

	var tags [2]byte
	if e := readFull(s, tags[:]); e != nil {
		return h, e
	}
	algo, encrypted, e := cipherFromTag(tags[0])
	if e != nil {
		return h, e
	}
	if encrypted != (flags&flagEncrypted != 0) {
		return h, errkind.New(errkind.KindData, source, "cipher tag disagrees with header flags")
	}
	h.Cipher = algo
	h.Encrypted = encrypted
	h.Hashed = flags&flagHashedSlices != 0

	comp, _, e := compress.FromTag(tags[1])
	if e != nil {
		return h, e
	}
	h.Compression = comp

	if h.Iterations, e = readUint(s); e != nil {
		return h, e
	}
	if h.ClearBlock, e = readUint(s); e != nil {
		return h, e
	}

	bits, e := readUint(s)
	if e != nil {
		return h, e
	}
	h.FSAScope = scopeFromBits(bits)

	return h, nil
}
