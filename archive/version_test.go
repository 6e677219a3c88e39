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
	"bytes"
	"testing"

	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/errkind"
)

func TestVersionRoundTrip(t *testing.T) {
	for _, v := range []cipher.Version{
		{Major: 1},
		{Major: 7, Fix: 3}, // fix digit is not written below 8, reads back zero
		{Major: 8, Fix: 1},
		{Major: 11, Fix: 15},
	} {
		var buf bytes.Buffer
		if e := WriteVersion(&buf, v); e != nil {
			t.Fatalf("write %v: %v", v, e)
		}

		wantLen := 4
		if v.Major < 8 {
			wantLen = 3
		}
		if buf.Len() != wantLen {
			t.Errorf("version %v encoded as %d bytes, want %d", v, buf.Len(), wantLen)
		}

		got, e := ReadVersion(&buf)
		if e != nil {
			t.Fatalf("read %v: %v", v, e)
		}
		want := v
		if v.Major < 8 {
			want.Fix = 0
		}
		if got != want {
			t.Errorf("round trip of %v gave %v", v, got)
		}
	}
}

func TestVersionEmptyMarker(t *testing.T) {
	var buf bytes.Buffer
	if e := WriteVersion(&buf, cipher.Version{}); e != nil {
		t.Fatal(e)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0, 0, 0}) {
		t.Fatalf("empty marker is %v, want three zero bytes", buf.Bytes())
	}
	got, e := ReadVersion(&buf)
	if e != nil {
		t.Fatal(e)
	}
	if got != (cipher.Version{}) {
		t.Fatalf("empty marker read back as %v", got)
	}
}

func TestVersionTooNew(t *testing.T) {
	// major 12 exceeds maxMajor
	buf := bytes.NewBuffer([]byte{0, 0, 0xc, 0})
	if _, e := ReadVersion(buf); e == nil || !e.Is(errkind.KindFeatureUnavailable) {
		t.Fatalf("expected feature-unavailable for a too-new version, got %v", e)
	}
}
