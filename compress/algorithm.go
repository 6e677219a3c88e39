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

// Package compress implements the stateless block-in/block-out codec
// contract shared by every compression algorithm the archive format
// supports, each backed by a real third-party codec library.
package compress

import (
	"github.com/nabbar/darkit/errkind"
)

const source = "compress"

// Algorithm names a compression family. Tag returns the single-letter
// wire tag: lowercase for stream mode, uppercase for per-block mode.
type Algorithm int

const (
	AlgorithmNone Algorithm = iota
	AlgorithmGzip
	AlgorithmBzip2
	AlgorithmLZO
	AlgorithmXZ
	AlgorithmZstd
	AlgorithmLZ4
	AlgorithmLZO1X_1_15
	AlgorithmLZO1X_1
)

func (a Algorithm) Tag(perBlock bool) byte {
	var lower, upper byte
	switch a {
	case AlgorithmNone:
		lower, upper = 'n', 'N'
	case AlgorithmGzip:
		lower, upper = 'z', 'Z'
	case AlgorithmBzip2:
		lower, upper = 'y', 'Y'
	case AlgorithmLZO:
		lower, upper = 'l', 'L'
	case AlgorithmXZ:
		lower, upper = 'x', 'X'
	case AlgorithmZstd:
		lower, upper = 'd', 'D'
	case AlgorithmLZ4:
		lower, upper = 'q', 'Q'
	case AlgorithmLZO1X_1_15:
		lower, upper = 'j', 'J'
	case AlgorithmLZO1X_1:
		lower, upper = 'k', 'K'
	default:
		lower, upper = '?', '?'
	}
	if perBlock {
		return upper
	}
	return lower
}

// FromTag parses a single-letter wire tag back into its Algorithm and
// whether the tag was the per-block (uppercase) variant.
func FromTag(tag byte) (Algorithm, bool, errkind.Error) {
	for _, a := range []Algorithm{
		AlgorithmNone, AlgorithmGzip, AlgorithmBzip2, AlgorithmLZO,
		AlgorithmXZ, AlgorithmZstd, AlgorithmLZ4,
		AlgorithmLZO1X_1_15, AlgorithmLZO1X_1,
	} {
		if a.Tag(false) == tag {
			return a, false, nil
		}
		if a.Tag(true) == tag {
			return a, true, nil
		}
	}
	return AlgorithmNone, false, errkind.New(errkind.KindData, source,
		"unknown compression tag "+string(rune(tag)))
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmGzip:
		return "gzip"
	case AlgorithmBzip2:
		return "bzip2"
	case AlgorithmLZO:
		return "lzo"
	case AlgorithmXZ:
		return "xz"
	case AlgorithmZstd:
		return "zstd"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmLZO1X_1_15:
		return "lzo1x_1_15"
	case AlgorithmLZO1X_1:
		return "lzo1x_1"
	default:
		return "?"
	}
}

// Codec is the stateless block codec contract. An implementation must be
// safe to use from exactly one goroutine at a time; Clone returns an
// independent instance for concurrent use (the parallel compressor gives
// one clone per worker).
type Codec interface {
	Algorithm() Algorithm
	MaxInputSize() uint64
	MinOutputBufferFor(inputSize uint64) uint64
	Compress(input []byte, output []byte) (int, errkind.Error)
	Decompress(input []byte, output []byte) (int, errkind.Error)
	Clone() Codec
}

// New returns the codec for algo at the given level (library-specific
// range; 0 means the library's default).
func New(algo Algorithm, level int) (Codec, errkind.Error) {
	switch algo {
	case AlgorithmNone:
		return newNoneCodec(), nil
	case AlgorithmGzip:
		return newGzipCodec(level), nil
	case AlgorithmBzip2:
		return newBzip2Codec(level), nil
	case AlgorithmXZ:
		return newXZCodec(), nil
	case AlgorithmZstd:
		return newZstdCodec(level), nil
	case AlgorithmLZ4:
		return newLZ4Codec(level), nil
	case AlgorithmLZO, AlgorithmLZO1X_1_15, AlgorithmLZO1X_1:
		return nil, errkind.New(errkind.KindFeatureUnavailable, source, "no LZO codec available: not present in the dependency pack")
	default:
		return nil, errkind.New(errkind.KindLibraryMisuse, source, "unknown compression algorithm")
	}
}
