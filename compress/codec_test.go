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

package compress_test

import (
	"bytes"
	"testing"

	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/errkind"
)

// noise fills a buffer with a cheap deterministic pseudo-random pattern,
// compressible enough to exercise both codec paths.
func noise(n int) []byte {
	out := make([]byte, n)
	state := uint32(0x2545f491)
	for i := range out {
		state = state*1664525 + 1013904223
		if i%7 < 4 {
			out[i] = byte(i) // runs the codec can squeeze
		} else {
			out[i] = byte(state >> 24)
		}
	}
	return out
}

var wired = []compress.Algorithm{
	compress.AlgorithmNone,
	compress.AlgorithmGzip,
	compress.AlgorithmBzip2,
	compress.AlgorithmXZ,
	compress.AlgorithmZstd,
	compress.AlgorithmLZ4,
}

func TestCodecRoundTrip(t *testing.T) {
	input := noise(1 << 20)

	for _, algo := range wired {
		for _, level := range []int{0, 1, 9} {
			if algo == compress.AlgorithmXZ && level != 0 {
				continue // xz exposes no level knob
			}
			c, e := compress.New(algo, level)
			if e != nil {
				t.Fatalf("%s level %d: %v", algo, level, e)
			}

			comp := make([]byte, c.MinOutputBufferFor(uint64(len(input))))
			n, e := c.Compress(input, comp)
			if e != nil {
				t.Fatalf("%s level %d compress: %v", algo, level, e)
			}

			plain := make([]byte, len(input))
			m, e := c.Decompress(comp[:n], plain)
			if e != nil {
				t.Fatalf("%s level %d decompress: %v", algo, level, e)
			}
			if !bytes.Equal(plain[:m], input) {
				t.Errorf("%s level %d: round trip mismatch", algo, level)
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	input := noise(64 * 1024)

	for _, algo := range wired {
		c, e := compress.New(algo, 0)
		if e != nil {
			t.Fatal(e)
		}
		c2 := c.Clone()

		buf1 := make([]byte, c.MinOutputBufferFor(uint64(len(input))))
		buf2 := make([]byte, c2.MinOutputBufferFor(uint64(len(input))))
		n1, e1 := c.Compress(input, buf1)
		n2, e2 := c2.Compress(input, buf2)
		if e1 != nil || e2 != nil {
			t.Fatalf("%s: %v / %v", algo, e1, e2)
		}
		if !bytes.Equal(buf1[:n1], buf2[:n2]) {
			t.Errorf("%s: clone output differs from original", algo)
		}
	}
}

func TestDecompressCorruptionIsDataKind(t *testing.T) {
	for _, algo := range wired {
		if algo == compress.AlgorithmNone {
			continue
		}
		c, e := compress.New(algo, 0)
		if e != nil {
			t.Fatal(e)
		}

		garbage := noise(512)
		out := make([]byte, 64*1024)
		if _, e := c.Decompress(garbage, out); e == nil || !e.Is(errkind.KindData) {
			t.Errorf("%s: expected data-kind error on garbage input, got %v", algo, e)
		}
	}
}

func TestLZOIsFeatureUnavailable(t *testing.T) {
	for _, algo := range []compress.Algorithm{
		compress.AlgorithmLZO, compress.AlgorithmLZO1X_1_15, compress.AlgorithmLZO1X_1,
	} {
		if _, e := compress.New(algo, 0); e == nil || !e.Is(errkind.KindFeatureUnavailable) {
			t.Errorf("%s: expected feature-unavailable, got %v", algo, e)
		}
	}
}

func TestTagRoundTrip(t *testing.T) {
	all := append([]compress.Algorithm{}, wired...)
	all = append(all, compress.AlgorithmLZO, compress.AlgorithmLZO1X_1_15, compress.AlgorithmLZO1X_1)

	for _, algo := range all {
		for _, perBlock := range []bool{false, true} {
			got, gotPB, e := compress.FromTag(algo.Tag(perBlock))
			if e != nil {
				t.Fatalf("%s: %v", algo, e)
			}
			if got != algo || gotPB != perBlock {
				t.Errorf("tag round trip of %s/%v gave %s/%v", algo, perBlock, got, gotPB)
			}
		}
	}
}
