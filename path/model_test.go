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

package path_test

import (
	"testing"

	"github.com/nabbar/darkit/path"
)

func TestNormalization(t *testing.T) {
	cases := map[string]string{
		"/a/./b/../c": "/a/c",
		"a/b/c":       "a/b/c",
		"":            ".",
		"/":           "/",
		"../a":        "../a",
	}
	for in, want := range cases {
		got := path.New(in).Display()
		if got != want {
			t.Errorf("New(%q).Display() = %q, want %q", in, got, want)
		}
	}
}

func TestAppendAndBasename(t *testing.T) {
	p := path.New("/a/b").Append("c")
	if p.Display() != "/a/b/c" {
		t.Fatalf("got %q", p.Display())
	}
	if p.Basename() != "c" {
		t.Fatalf("got basename %q", p.Basename())
	}
}

func TestIsSubdirOfSymmetricImpliesEqual(t *testing.T) {
	p := path.New("/a/b")
	q := path.New("/a/b")
	if !(p.IsSubdirOf(q, true) && q.IsSubdirOf(p, true)) {
		t.Fatalf("expected mutual subdir")
	}
	if p.Display() != q.Display() {
		t.Fatalf("display mismatch: %q vs %q", p.Display(), q.Display())
	}
}

func TestUndisclosed(t *testing.T) {
	p := path.NewUndisclosed("weird/name..with//slashes")
	if p.Display() != "weird/name..with//slashes" {
		t.Fatalf("undisclosed path was normalized: %q", p.Display())
	}
	e := p.ExplodeUndisclosed()
	if e.Display() == p.Display() {
		t.Fatalf("expected normalization after explode")
	}
}
