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

package bigint_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/nabbar/darkit/bigint"
)

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 255, 256, 1<<32 - 1, 1 << 32}

	for _, v := range values {
		var buf bytes.Buffer
		if e := bigint.Write(&buf, bigint.FromUint64(v)); e != nil {
			t.Fatalf("write(%d): %v", v, e)
		}

		got, e := bigint.Read(&buf)
		if e != nil {
			t.Fatalf("read(%d): %v", v, e)
		}

		gu, ok := got.Uint64()
		if !ok || gu != v {
			t.Fatalf("round trip mismatch: want %d got %v (fit=%v)", v, gu, ok)
		}
	}
}

func TestZeroEncoding(t *testing.T) {
	var buf bytes.Buffer
	if e := bigint.Write(&buf, bigint.Zero()); e != nil {
		t.Fatalf("write(0): %v", e)
	}
	// smallest preamble (marker 0x80, one group) and an all-zero group
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0x80, 0, 0, 0, 0}) {
		t.Fatalf("want 80 00 00 00 00, got %x", got)
	}
}

func TestSmallValueEncoding(t *testing.T) {
	var buf bytes.Buffer
	if e := bigint.Write(&buf, bigint.FromUint64(256)); e != nil {
		t.Fatalf("write(256): %v", e)
	}
	// one group, value big-endian left-padded to the group boundary
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0x80, 0, 0, 1, 0}) {
		t.Fatalf("want 80 00 00 01 00, got %x", got)
	}
}

func TestBigValueRoundTrip(t *testing.T) {
	huge := new(big.Int)
	huge.SetString("340282366920938463463374607431768211457", 10) // 2^128 + 1

	var buf bytes.Buffer
	src := bigint.FromBytes(huge.Bytes())
	if e := bigint.Write(&buf, src); e != nil {
		t.Fatalf("write: %v", e)
	}

	got, e := bigint.Read(&buf)
	if e != nil {
		t.Fatalf("read: %v", e)
	}
	if got.Cmp(src) != 0 {
		t.Fatalf("round trip mismatch for huge value")
	}

	// 33 informational bytes: nine groups, so the preamble itself needs a
	// leading zero byte before the marker
	wide := new(big.Int).Lsh(big.NewInt(1), 260)
	buf.Reset()
	src = bigint.FromBytes(wide.Bytes())
	if e := bigint.Write(&buf, src); e != nil {
		t.Fatalf("write wide: %v", e)
	}
	if b := buf.Bytes(); b[0] != 0 || b[1] != 0x80 {
		t.Fatalf("nine-group preamble should be 00 80, got % x", b[:2])
	}
	got, e = bigint.Read(&buf)
	if e != nil {
		t.Fatalf("read wide: %v", e)
	}
	if got.Cmp(src) != 0 {
		t.Fatalf("round trip mismatch for nine-group value")
	}
}

func TestCanonicalEncodingIsUnique(t *testing.T) {
	a := bigint.FromUint64(42)
	var buf1, buf2 bytes.Buffer
	_ = bigint.Write(&buf1, a)
	_ = bigint.Write(&buf2, a)
	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Fatalf("encoding of identical value differs")
	}
}

func TestUnstack(t *testing.T) {
	i := bigint.FromUint64(10)
	got := i.Unstack()
	if got != 10 {
		t.Fatalf("want 10, got %d", got)
	}
	if !i.IsZero() {
		t.Fatalf("expected i to be drained to 0")
	}
}
