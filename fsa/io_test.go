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

package fsa_test

import (
	"bytes"
	"testing"

	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/fsa"
)

func TestWireRoundTrip(t *testing.T) {
	s := fsa.NewSet()
	s.Put(fsa.FamilyLinuxExtX, fsa.NatureImmutable, fsa.BoolValue(true))
	s.Put(fsa.FamilyLinuxExtX, fsa.NatureNoDump, fsa.BoolValue(false))
	s.Put(fsa.FamilyHFSPlus, fsa.NatureCreationDate, fsa.IntValue(bigint.FromUint64(1700000000)))

	var buf bytes.Buffer
	if e := s.WriteWire(&buf); e != nil {
		t.Fatalf("write: %v", e)
	}

	got, e := fsa.ReadWire(&buf)
	if e != nil {
		t.Fatalf("read: %v", e)
	}

	if !s.Equal(got) {
		t.Fatalf("round trip mismatch: want %+v got %+v", s.Entries(), got.Entries())
	}
}

func TestCanonicalOrder(t *testing.T) {
	s := fsa.NewSet()
	s.Put(fsa.FamilyLinuxExtX, fsa.NatureUndeletable, fsa.BoolValue(true))
	s.Put(fsa.FamilyHFSPlus, fsa.NatureAppendOnly, fsa.BoolValue(true))
	s.Put(fsa.FamilyLinuxExtX, fsa.NatureImmutable, fsa.BoolValue(true))

	entries := s.Entries()
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Family > cur.Family {
			t.Fatalf("entries not sorted by family: %v before %v", prev, cur)
		}
		if prev.Family == cur.Family && prev.Nature > cur.Nature {
			t.Fatalf("entries not sorted by nature: %v before %v", prev, cur)
		}
	}
}

func TestAtMostOnePerFamilyNature(t *testing.T) {
	s := fsa.NewSet()
	s.Put(fsa.FamilyLinuxExtX, fsa.NatureImmutable, fsa.BoolValue(true))
	s.Put(fsa.FamilyLinuxExtX, fsa.NatureImmutable, fsa.BoolValue(false))

	if s.Len() != 1 {
		t.Fatalf("want exactly one entry after overwrite, got %d", s.Len())
	}
	v, ok := s.Get(fsa.FamilyLinuxExtX, fsa.NatureImmutable)
	if !ok || v.Bool() != false {
		t.Fatalf("expected overwritten value false, got %+v ok=%v", v, ok)
	}
}
