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

package pipe_test

import (
	"testing"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream/pipe"
)

func TestAnonymousPipeRoundTrip(t *testing.T) {
	a, e := pipe.NewAnonymous()
	if e != nil {
		t.Fatal(e)
	}

	payload := []byte("through the pipe")
	if e := a.WriteEnd().Write(payload); e != nil {
		t.Fatal(e)
	}
	if e := a.WriteEnd().Terminate(); e != nil {
		t.Fatal(e)
	}

	got := make([]byte, len(payload))
	total := 0
	for total < len(got) {
		n, e := a.ReadEnd().Read(got[total:])
		total += n
		if e != nil {
			t.Fatal(e)
		}
	}
	if string(got) != string(payload) {
		t.Fatalf("read %q, want %q", got, payload)
	}
	if e := a.ReadEnd().Terminate(); e != nil {
		t.Fatal(e)
	}
}

func TestSeekableForwardSkipIsEmulated(t *testing.T) {
	a, e := pipe.NewAnonymous()
	if e != nil {
		t.Fatal(e)
	}

	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	if e := a.WriteEnd().Write(data); e != nil {
		t.Fatal(e)
	}
	if e := a.WriteEnd().Terminate(); e != nil {
		t.Fatal(e)
	}

	s := pipe.NewSeekable(a.ReadEnd())
	if e := s.Skip(200); e != nil {
		t.Fatal(e)
	}
	pos, e := s.GetPosition()
	if e != nil {
		t.Fatal(e)
	}
	if pos != 200 {
		t.Fatalf("position after skip = %d, want 200", pos)
	}

	got := make([]byte, 5)
	n, e := s.Read(got)
	if e != nil {
		t.Fatal(e)
	}
	if string(got[:n]) != string(data[200:200+n]) {
		t.Fatalf("read after skip gave %v", got[:n])
	}
}

func TestSeekableBackwardSkipFails(t *testing.T) {
	a, e := pipe.NewAnonymous()
	if e != nil {
		t.Fatal(e)
	}
	defer func() {
		_ = a.WriteEnd().Terminate()
		_ = a.ReadEnd().Terminate()
	}()

	s := pipe.NewSeekable(a.ReadEnd())
	if e := s.SkipRelative(-1); e == nil || !e.Is(errkind.KindLibraryMisuse) {
		t.Fatalf("backward skip must fail as library misuse, got %v", e)
	}
}
